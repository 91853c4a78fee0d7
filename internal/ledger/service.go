package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/metrics"
	"github.com/adudhe01/runroom/internal/repository"
	"github.com/adudhe01/runroom/internal/snapshot"
)

// PurchaseResult is the response payload of a successful purchase.
type PurchaseResult struct {
	PointsRemaining int                    `json:"pointsRemaining"`
	Inventory       []domain.InventorySlot `json:"inventory"`
}

// Service is the points-and-inventory ledger: spend bookkeeping on the user
// document plus the wholesale room layout replace.
type Service interface {
	// Purchase spends points on a catalog item and appends one inventory
	// entry referencing it. Fails with domain.ErrItemNotFound or
	// domain.ErrInsufficientPoints; no state changes on failure. Repeated
	// purchases of the same item are allowed.
	Purchase(ctx context.Context, userID, itemID string) (*PurchaseResult, error)

	// SaveRoomLayout replaces the entire stored placement list with the
	// given list verbatim and returns the formatted, item-joined result.
	// Referenced items are not checked against the user's inventory.
	SaveRoomLayout(ctx context.Context, userID string, layout []domain.RoomPlacement) ([]domain.PlacementDetail, error)
}

type service struct {
	users     repository.User
	catalog   catalog.Service
	formatter snapshot.Builder
}

// NewService creates a new ledger service
func NewService(users repository.User, catalogService catalog.Service, formatter snapshot.Builder) Service {
	return &service{
		users:     users,
		catalog:   catalogService,
		formatter: formatter,
	}
}

// Purchase runs an unlocked read-modify-write on the user document: two
// concurrent purchases can both observe the same starting balance and both
// persist, so jointly-unaffordable purchases may overspend. Last write wins.
func (s *service) Purchase(ctx context.Context, userID, itemID string) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if user.PointsRemaining() < item.Cost {
		return nil, fmt.Errorf("%w: %s costs %d, %d remaining",
			domain.ErrInsufficientPoints, item.SKU, item.Cost, user.PointsRemaining())
	}

	user.PointsSpent += item.Cost
	user.Inventory = append(user.Inventory, domain.InventoryEntry{ItemID: item.ID})

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist purchase: %w", err)
	}

	metrics.ItemsBought.WithLabelValues(item.SKU).Inc()
	metrics.PointsSpent.Add(float64(item.Cost))

	log.Info("Item purchased",
		"user_id", user.ID,
		"item", item.SKU,
		"cost", item.Cost,
		"points_remaining", user.PointsRemaining())

	return &PurchaseResult{
		PointsRemaining: user.PointsRemaining(),
		Inventory:       s.formatter.FormatInventory(ctx, user.Inventory),
	}, nil
}

func (s *service) SaveRoomLayout(ctx context.Context, userID string, layout []domain.RoomPlacement) ([]domain.PlacementDetail, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if layout == nil {
		layout = []domain.RoomPlacement{}
	}
	for i := range layout {
		if layout[i].ID == "" {
			layout[i].ID = uuid.NewString()
		}
	}

	user.RoomLayout = layout
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist room layout: %w", err)
	}

	metrics.RoomLayoutsSaved.Inc()
	log.Info("Room layout saved", "user_id", user.ID, "placements", len(layout))

	return s.formatter.FormatRoomLayout(ctx, user.RoomLayout), nil
}
