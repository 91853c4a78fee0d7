package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adudhe01/runroom/internal/domain"
)

// MockUserRepository implements repository.User for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

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

// MockFormatter implements snapshot.Builder for testing
type MockFormatter struct {
	mock.Mock
}

func (m *MockFormatter) Build(ctx context.Context, user *domain.User) (*domain.Snapshot, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockFormatter) FormatInventory(ctx context.Context, entries []domain.InventoryEntry) []domain.InventorySlot {
	args := m.Called(ctx, entries)
	return args.Get(0).([]domain.InventorySlot)
}

func (m *MockFormatter) FormatRoomLayout(ctx context.Context, layout []domain.RoomPlacement) []domain.PlacementDetail {
	args := m.Called(ctx, layout)
	return args.Get(0).([]domain.PlacementDetail)
}

func createTestUser(earned, spent int) *domain.User {
	return &domain.User{
		ID:           "user-1",
		Email:        "runner@example.com",
		PointsEarned: earned,
		PointsSpent:  spent,
	}
}

func createTestItem(id string, cost int) *domain.Item {
	return &domain.Item{ID: id, SKU: "sofa.clubhouse", Name: "Clubhouse Loveseat", Cost: cost}
}

func TestPurchase_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(50, 10)
	item := createTestItem("item-1", 22)

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(item, nil)
	mockUsers.On("Update", ctx, user).Return(nil)
	mockFormatter.On("FormatInventory", ctx, mock.Anything).Return([]domain.InventorySlot{
		{SlotID: "item-1-0", ItemID: "item-1"},
	})

	result, err := svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err)

	assert.Equal(t, 18, result.PointsRemaining, "40 remaining before minus cost 22")
	assert.Equal(t, 32, user.PointsSpent)
	require.Len(t, user.Inventory, 1)
	assert.Equal(t, "item-1", user.Inventory[0].ItemID)
	mockUsers.AssertCalled(t, "Update", ctx, user)
}

func TestPurchase_ItemNotFound(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(50, 0)
	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockCatalog.On("GetItem", ctx, "missing").Return(nil, domain.ErrItemNotFound)

	_, err := svc.Purchase(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, 0, user.PointsSpent, "no state change on failure")
	mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPurchase_InsufficientPoints(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(20, 5) // 15 remaining
	item := createTestItem("item-1", 16)

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(item, nil)

	_, err := svc.Purchase(ctx, "user-1", "item-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 5, user.PointsSpent)
	assert.Empty(t, user.Inventory)
	mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPurchase_ExactBalanceSucceeds(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(16, 0)
	item := createTestItem("item-1", 16)

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(item, nil)
	mockUsers.On("Update", ctx, user).Return(nil)
	mockFormatter.On("FormatInventory", ctx, mock.Anything).Return([]domain.InventorySlot{})

	result, err := svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.PointsRemaining)
}

func TestPurchase_DuplicateOwnershipAllowed(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(100, 0)
	item := createTestItem("item-1", 10)

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockCatalog.On("GetItem", ctx, "item-1").Return(item, nil)
	mockUsers.On("Update", ctx, user).Return(nil)
	mockFormatter.On("FormatInventory", ctx, mock.Anything).Return([]domain.InventorySlot{})

	_, err := svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err)

	assert.Len(t, user.Inventory, 2, "the same SKU can be owned more than once")
	assert.Equal(t, 20, user.PointsSpent)
}

// staleReadRepo hands every reader the same pre-write copy of the user and
// applies updates last-write-wins, mirroring two requests that both read
// before either writes.
type staleReadRepo struct {
	MockUserRepository
	original domain.User
	stored   *domain.User
}

func (r *staleReadRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := r.original
	return &u, nil
}

func (r *staleReadRepo) Update(ctx context.Context, user *domain.User) error {
	r.stored = user
	return nil
}

func TestPurchase_ConcurrentRace_BothSucceed(t *testing.T) {
	// Documents the permissive behavior: two purchases, each individually
	// affordable, jointly exceed the balance, and both succeed.
	repo := &staleReadRepo{original: *createTestUser(100, 0)}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(repo, mockCatalog, mockFormatter)
	ctx := context.Background()

	item := createTestItem("item-1", 60)
	mockCatalog.On("GetItem", ctx, "item-1").Return(item, nil)
	mockFormatter.On("FormatInventory", ctx, mock.Anything).Return([]domain.InventorySlot{})

	first, err := svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err)
	second, err := svc.Purchase(ctx, "user-1", "item-1")
	require.NoError(t, err, "second purchase read the stale balance and is accepted")

	assert.Equal(t, 40, first.PointsRemaining)
	assert.Equal(t, 40, second.PointsRemaining)
	// Last write wins on the document: the stored total reflects one
	// purchase even though two succeeded (joint cost 120 > 100 earned).
	assert.Equal(t, 60, repo.stored.PointsSpent)
}

func TestSaveRoomLayout_ReplacesWholesale(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(10, 0)
	user.RoomLayout = []domain.RoomPlacement{
		{ID: "old-1", ItemID: "item-9", X: 5, Y: 5},
	}

	newLayout := []domain.RoomPlacement{
		{ID: "p-1", ItemID: "item-1", X: 1, Y: 2, Rotation: 90, Scale: 1.5},
		{ItemID: "item-2", X: 3, Y: 4, Scale: 1},
	}

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockUsers.On("Update", ctx, user).Return(nil)
	mockFormatter.On("FormatRoomLayout", ctx, mock.Anything).Return([]domain.PlacementDetail{})

	_, err := svc.SaveRoomLayout(ctx, "user-1", newLayout)
	require.NoError(t, err)

	require.Len(t, user.RoomLayout, 2)
	assert.Equal(t, "p-1", user.RoomLayout[0].ID)
	assert.NotEmpty(t, user.RoomLayout[1].ID, "placements without an ID get one assigned")
	assert.Equal(t, 90.0, user.RoomLayout[0].Rotation)
	assert.Equal(t, 1.5, user.RoomLayout[0].Scale)
}

func TestSaveRoomLayout_EmptyListClearsLayout(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	user := createTestUser(10, 0)
	user.RoomLayout = []domain.RoomPlacement{
		{ID: "old-1", ItemID: "item-9", X: 5, Y: 5},
	}

	mockUsers.On("GetByID", ctx, "user-1").Return(user, nil)
	mockUsers.On("Update", ctx, user).Return(nil)
	mockFormatter.On("FormatRoomLayout", ctx, mock.Anything).Return([]domain.PlacementDetail{})

	result, err := svc.SaveRoomLayout(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.Empty(t, user.RoomLayout)
	assert.Empty(t, result)
}

func TestSaveRoomLayout_UserNotFound(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockCatalog := &MockCatalog{}
	mockFormatter := &MockFormatter{}
	svc := NewService(mockUsers, mockCatalog, mockFormatter)
	ctx := context.Background()

	mockUsers.On("GetByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.SaveRoomLayout(ctx, "ghost", nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
