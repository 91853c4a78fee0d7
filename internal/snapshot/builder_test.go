package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adudhe01/runroom/internal/domain"
)

// MockCatalog implements catalog.Service for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) EnsureBaseCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockCatalog) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockCatalog) GrantStarterKit(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testItem(id, sku string, cost int) *domain.Item {
	return &domain.Item{ID: id, SKU: sku, Name: sku, Cost: cost}
}

func TestBuild_ComposesSnapshot(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	user := &domain.User{
		ID:           "user-1",
		Name:         "Asha",
		Email:        "asha@example.com",
		TotalKm:      42.7,
		PointsEarned: 42,
		PointsSpent:  10,
		Inventory: []domain.InventoryEntry{
			{ItemID: "item-1"},
			{ItemID: "item-1"}, // duplicate ownership is allowed
		},
		RoomLayout: []domain.RoomPlacement{
			{ID: "p-1", ItemID: "item-1", X: 1, Y: 2, Scale: 1},
		},
		StravaRefreshToken: "refresh-tok",
	}

	mockCatalog.On("GrantStarterKit", ctx, user).Return(nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(testItem("item-1", "poster.midnight-grid", 8), nil)

	snap, err := b.Build(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, "user-1", snap.User.ID)
	assert.Equal(t, 32, snap.PointsRemaining)
	assert.Equal(t, 42, snap.TotalKm, "totalKm is floored")
	assert.True(t, snap.StravaConnected, "refresh token alone counts as connected")
	require.Len(t, snap.Inventory, 2)
	assert.Equal(t, "item-1-0", snap.Inventory[0].SlotID)
	assert.Equal(t, "item-1-1", snap.Inventory[1].SlotID)
	require.Len(t, snap.RoomLayout, 1)
	assert.Equal(t, "p-1", snap.RoomLayout[0].ID)
	assert.Equal(t, "poster.midnight-grid", snap.RoomLayout[0].Item.SKU)
}

func TestBuild_DropsUnresolvableReferences(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	user := &domain.User{
		ID: "user-1",
		Inventory: []domain.InventoryEntry{
			{ItemID: "item-1"},
			{ItemID: "item-gone"},
		},
		RoomLayout: []domain.RoomPlacement{
			{ID: "p-1", ItemID: "item-gone", X: 0, Y: 0},
			{ID: "p-2", ItemID: "item-1", X: 3, Y: 4},
		},
	}

	mockCatalog.On("GrantStarterKit", ctx, user).Return(nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(testItem("item-1", "mat.stride-lab", 9), nil)
	mockCatalog.On("GetItem", ctx, "item-gone").Return(nil, domain.ErrItemNotFound)

	snap, err := b.Build(ctx, user)
	require.NoError(t, err)

	require.Len(t, snap.Inventory, 1, "unresolvable inventory entries are dropped")
	assert.Equal(t, "item-1", snap.Inventory[0].ItemID)
	require.Len(t, snap.RoomLayout, 1, "unresolvable placements are dropped")
	assert.Equal(t, "p-2", snap.RoomLayout[0].ID)
}

func TestBuild_GrantsStarterKit(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	user := &domain.User{ID: "user-1"}

	mockCatalog.On("GrantStarterKit", ctx, user).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		u.Inventory = []domain.InventoryEntry{{ItemID: "item-1"}}
	}).Return(nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(testItem("item-1", "plant.moss-wall", 10), nil)

	snap, err := b.Build(ctx, user)
	require.NoError(t, err)

	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, "plant.moss-wall", snap.Inventory[0].Item.SKU)
}

func TestBuild_StarterKitFailurePropagates(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	user := &domain.User{ID: "user-1"}
	mockCatalog.On("GrantStarterKit", ctx, user).Return(assert.AnError)

	_, err := b.Build(ctx, user)
	assert.Error(t, err)
}

func TestFormatRoomLayout_FallbackPlacementID(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItem", ctx, "item-1").Return(testItem("item-1", "shelf.altitude", 12), nil)

	placements := b.FormatRoomLayout(ctx, []domain.RoomPlacement{
		{ItemID: "item-1", X: 1.5, Y: 2},
	})

	require.Len(t, placements, 1)
	assert.Equal(t, "item-1-1.5-2", placements[0].ID)
}

func TestBuild_EmptyUserHasEmptyCollections(t *testing.T) {
	mockCatalog := &MockCatalog{}
	b := NewBuilder(mockCatalog)
	ctx := context.Background()

	user := &domain.User{ID: "user-1"}
	mockCatalog.On("GrantStarterKit", ctx, user).Return(nil)

	snap, err := b.Build(ctx, user)
	require.NoError(t, err)

	assert.NotNil(t, snap.Inventory)
	assert.NotNil(t, snap.RoomLayout)
	assert.Empty(t, snap.Inventory)
	assert.Empty(t, snap.RoomLayout)
	assert.False(t, snap.StravaConnected)
}
