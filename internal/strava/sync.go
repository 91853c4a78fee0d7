package strava

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/metrics"
	"github.com/adudhe01/runroom/internal/repository"
)

const (
	// activitiesPerPage is the provider's maximum page size.
	activitiesPerPage = 200

	// maxActivityPages caps the listing walk at 10k activities as a safety
	// limit against runaway pagination.
	maxActivityPages = 50

	// tokenExpiryLeeway is how far in the future a stored access token must
	// still be valid to be reused without refreshing.
	tokenExpiryLeeway = 60 * time.Second

	// skippedSampleLimit bounds the skipped-activity sample in the
	// diagnostic breakdown.
	skippedSampleLimit = 10
)

const (
	skipReasonNoDate    = "missing start date"
	skipReasonPriorYear = "not current year"
)

// SyncService pulls the athlete's activities from the provider and rewrites
// the user's earned-points balance from the current-year distance total.
type SyncService interface {
	Sync(ctx context.Context, userID string) (*domain.SyncResult, error)
}

type syncService struct {
	users  repository.User
	client Client
	now    func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(users repository.User, client Client) SyncService {
	return &syncService{
		users:  users,
		client: client,
		now:    time.Now,
	}
}

func (s *syncService) Sync(ctx context.Context, userID string) (*domain.SyncResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.StravaConnected() {
		return nil, domain.ErrStravaNotConnected
	}

	accessToken, err := s.ensureValidToken(ctx, user)
	if err != nil {
		metrics.StravaSyncs.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, err
	}

	activities := s.fetchAllActivities(ctx, accessToken)
	breakdown := buildBreakdown(activities, s.now().Year())

	kmThisYear := breakdown.kmThisYear

	// Earned points are overwritten from scratch on every sync, never
	// accumulated. A shrinking provider history lowers the balance.
	user.TotalKm = kmThisYear
	user.PointsEarned = int(math.Floor(kmThisYear))

	if err := s.users.Update(ctx, user); err != nil {
		metrics.StravaSyncs.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, fmt.Errorf("failed to persist sync result: %w", err)
	}

	metrics.StravaSyncs.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.KmSynced.Add(kmThisYear)

	log.Info("Strava sync completed",
		"user_id", user.ID,
		"activities_fetched", breakdown.payload.TotalActivitiesFetched,
		"activities_this_year", breakdown.payload.ActivitiesThisYear,
		"km_this_year", breakdown.payload.KmThisYear,
		"points_earned", user.PointsEarned)

	return &domain.SyncResult{
		TotalKm:         user.PointsEarned,
		PointsRemaining: user.PointsRemaining(),
		Debug:           breakdown.payload,
	}, nil
}

// ensureValidToken returns a usable access token, refreshing and persisting
// new credentials when the stored token is expired or about to expire.
func (s *syncService) ensureValidToken(ctx context.Context, user *domain.User) (string, error) {
	if user.StravaTokenExpiresAt != nil &&
		user.StravaTokenExpiresAt.After(s.now().Add(tokenExpiryLeeway)) {
		return user.StravaAccessToken, nil
	}

	if user.StravaRefreshToken == "" {
		return "", domain.ErrNoRefreshToken
	}

	pair, err := s.client.Refresh(ctx, user.StravaRefreshToken)
	if err != nil {
		return "", err
	}

	user.StravaAccessToken = pair.AccessToken
	user.StravaRefreshToken = pair.RefreshToken
	expiresAt := pair.ExpiresAt
	user.StravaTokenExpiresAt = &expiresAt

	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return pair.AccessToken, nil
}

// fetchAllActivities walks the listing pages newest-first until an empty
// page, the page cap, or a page whose oldest activity predates the current
// year. A page fetch error ends the walk with whatever was collected so far.
func (s *syncService) fetchAllActivities(ctx context.Context, accessToken string) []domain.Activity {
	log := logger.FromContext(ctx)
	currentYear := s.now().Year()

	var all []domain.Activity
	for page := 1; page <= maxActivityPages; page++ {
		batch, err := s.client.ListActivities(ctx, accessToken, page, activitiesPerPage)
		if err != nil {
			log.Warn("Activity page fetch failed, using partial results",
				"page", page, "error", err)
			break
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)

		// Pages arrive newest-first. Once a page's oldest entry predates
		// the current year there is nothing newer left to fetch; the
		// aggregation step filters out the prior-year tail.
		oldest := batch[len(batch)-1]
		if oldest.StartDate != nil && oldest.StartDate.Year() < currentYear {
			break
		}

		if page == maxActivityPages {
			log.Warn("Activity page cap reached, stopping pagination",
				"pages", maxActivityPages)
		}
	}

	return all
}

type aggregation struct {
	kmThisYear float64
	payload    domain.SyncBreakdown
}

// buildBreakdown partitions activities by year and assembles the diagnostic
// payload alongside the current-year kilometer total.
func buildBreakdown(activities []domain.Activity, currentYear int) aggregation {
	var (
		kmThisYear float64
		kmAllTime  float64
		summaries  []domain.ActivitySummary
		skipped    []domain.SkippedActivity
	)
	typeStats := make(map[string]domain.TypeStats)

	for _, a := range activities {
		km := a.Distance / 1000
		kmAllTime += km

		stats := typeStats[a.Type]
		stats.Count++
		stats.TotalKm += km

		if a.StartDate == nil {
			skipped = append(skipped, domain.SkippedActivity{
				Name:       a.Name,
				Reason:     skipReasonNoDate,
				DistanceKm: formatKm(km),
				Type:       a.Type,
			})
			typeStats[a.Type] = stats
			continue
		}

		if a.StartDate.Year() != currentYear {
			skipped = append(skipped, domain.SkippedActivity{
				Name:       a.Name,
				Date:       a.StartDate.Format(time.RFC3339),
				Year:       a.StartDate.Year(),
				Reason:     skipReasonPriorYear,
				DistanceKm: formatKm(km),
				Type:       a.Type,
			})
			typeStats[a.Type] = stats
			continue
		}

		kmThisYear += km
		stats.ThisYear += km
		typeStats[a.Type] = stats

		summaries = append(summaries, domain.ActivitySummary{
			ID:         a.ID,
			Name:       a.Name,
			Date:       a.StartDate.Format(time.RFC3339),
			Distance:   a.Distance,
			DistanceKm: formatKm(km),
			Type:       a.Type,
		})
	}

	sample := skipped
	if len(sample) > skippedSampleLimit {
		sample = sample[:skippedSampleLimit]
	}

	return aggregation{
		kmThisYear: kmThisYear,
		payload: domain.SyncBreakdown{
			CurrentYear:            currentYear,
			ActivitiesThisYear:     len(summaries),
			TotalActivitiesFetched: len(activities),
			SkippedActivities:      len(skipped),
			KmThisYear:             formatKm(kmThisYear),
			KmAllTime:              formatKm(kmAllTime),
			ActivityTypeBreakdown:  typeStats,
			Activities:             summaries,
			SkippedSample:          sample,
		},
	}
}

func formatKm(km float64) string {
	return fmt.Sprintf("%.2f", km)
}
