package snapshot

import (
	"context"
	"fmt"
	"math"

	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/domain"
)

// Builder composes the read-model returned to the client after
// authentication or an on-demand refresh.
type Builder interface {
	// Build grants the starter kit when applicable, joins inventory and room
	// layout against the catalog, and returns the formatted snapshot.
	Build(ctx context.Context, user *domain.User) (*domain.Snapshot, error)

	// FormatInventory joins owned-item references with their catalog details.
	// Entries whose item no longer resolves are silently dropped.
	FormatInventory(ctx context.Context, entries []domain.InventoryEntry) []domain.InventorySlot

	// FormatRoomLayout joins placements with their catalog details, applying
	// the same drop rule.
	FormatRoomLayout(ctx context.Context, layout []domain.RoomPlacement) []domain.PlacementDetail
}

type builder struct {
	catalog catalog.Service
}

// NewBuilder creates a new snapshot builder
func NewBuilder(catalogService catalog.Service) Builder {
	return &builder{catalog: catalogService}
}

func (b *builder) Build(ctx context.Context, user *domain.User) (*domain.Snapshot, error) {
	// The grant is evaluated on every snapshot build, not just at
	// registration: an emptied inventory would be re-granted.
	if err := b.catalog.GrantStarterKit(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to grant starter kit: %w", err)
	}

	return &domain.Snapshot{
		User: domain.UserProfile{
			ID:             user.ID,
			Email:          user.Email,
			Name:           user.Name,
			ProfilePicture: user.ProfilePicture,
		},
		PointsRemaining: user.PointsRemaining(),
		Inventory:       b.FormatInventory(ctx, user.Inventory),
		RoomLayout:      b.FormatRoomLayout(ctx, user.RoomLayout),
		StravaConnected: user.StravaConnected(),
		TotalKm:         int(math.Floor(user.TotalKm)),
	}, nil
}

func (b *builder) FormatInventory(ctx context.Context, entries []domain.InventoryEntry) []domain.InventorySlot {
	slots := make([]domain.InventorySlot, 0, len(entries))
	for idx, entry := range entries {
		item, err := b.catalog.GetItem(ctx, entry.ItemID)
		if err != nil {
			// Stale reference: the item no longer resolves. Dropped, not reported.
			continue
		}
		slots = append(slots, domain.InventorySlot{
			SlotID: fmt.Sprintf("%s-%d", entry.ItemID, idx),
			ItemID: entry.ItemID,
			Item:   formatItem(item),
		})
	}
	return slots
}

func (b *builder) FormatRoomLayout(ctx context.Context, layout []domain.RoomPlacement) []domain.PlacementDetail {
	placements := make([]domain.PlacementDetail, 0, len(layout))
	for _, placement := range layout {
		item, err := b.catalog.GetItem(ctx, placement.ItemID)
		if err != nil {
			continue
		}
		id := placement.ID
		if id == "" {
			id = fmt.Sprintf("%s-%g-%g", placement.ItemID, placement.X, placement.Y)
		}
		placements = append(placements, domain.PlacementDetail{
			ID:       id,
			ItemID:   placement.ItemID,
			X:        placement.X,
			Y:        placement.Y,
			Z:        placement.Z,
			Rotation: placement.Rotation,
			Scale:    placement.Scale,
			Item:     formatItem(item),
		})
	}
	return placements
}

func formatItem(item *domain.Item) domain.ItemDetail {
	return domain.ItemDetail{
		ID:          item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Cost:        item.Cost,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		Rarity:      item.Rarity,
		Description: item.Description,
	}
}
