package domain

import "time"

// Activity is a single activity returned by the provider's listing endpoint.
type Activity struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	StartDate *time.Time `json:"start_date"`
	Distance  float64    `json:"distance"` // meters
}

// ActivitySummary is the per-activity line included in the sync diagnostic
// breakdown for current-year activities.
type ActivitySummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	Distance   float64 `json:"distance"`
	DistanceKm string  `json:"distanceKm"`
	Type       string  `json:"type"`
}

// SkippedActivity records why an activity was excluded from the year total.
type SkippedActivity struct {
	Name       string `json:"name"`
	Date       string `json:"date,omitempty"`
	Year       int    `json:"year,omitempty"`
	Reason     string `json:"reason"`
	DistanceKm string `json:"distanceKm,omitempty"`
	Type       string `json:"type"`
}

// TypeStats aggregates distance per activity type.
type TypeStats struct {
	Count    int     `json:"count"`
	TotalKm  float64 `json:"totalKm"`
	ThisYear float64 `json:"thisYear"`
}

// SyncBreakdown is the diagnostic payload attached to a sync result. It is
// meant for caller-side inspection, not for display.
type SyncBreakdown struct {
	CurrentYear            int                  `json:"currentYear"`
	ActivitiesThisYear     int                  `json:"activitiesThisYear"`
	TotalActivitiesFetched int                  `json:"totalActivitiesFetched"`
	SkippedActivities      int                  `json:"skippedActivities"`
	KmThisYear             string               `json:"kmThisYear"`
	KmAllTime              string               `json:"kmAllTime"`
	ActivityTypeBreakdown  map[string]TypeStats `json:"activityTypeBreakdown"`
	Activities             []ActivitySummary    `json:"activities"`
	SkippedSample          []SkippedActivity    `json:"skippedSample"`
}

// SyncResult is the outcome of an activity sync: the floored year-to-date
// kilometer total and the recomputed remaining balance.
type SyncResult struct {
	TotalKm         int           `json:"totalKm"`
	PointsRemaining int           `json:"pointsRemaining"`
	Debug           SyncBreakdown `json:"debug"`
}
