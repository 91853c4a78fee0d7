package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/ledger"
	"github.com/adudhe01/runroom/internal/strava"
)

// Shared mocks for handler tests.

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

// MockLedger implements ledger.Service for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Purchase(ctx context.Context, userID, itemID string) (*ledger.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PurchaseResult), args.Error(1)
}

func (m *MockLedger) SaveRoomLayout(ctx context.Context, userID string, layout []domain.RoomPlacement) ([]domain.PlacementDetail, error) {
	args := m.Called(ctx, userID, layout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlacementDetail), args.Error(1)
}

// MockSnapshotBuilder implements snapshot.Builder for testing
type MockSnapshotBuilder struct {
	mock.Mock
}

func (m *MockSnapshotBuilder) Build(ctx context.Context, user *domain.User) (*domain.Snapshot, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotBuilder) FormatInventory(ctx context.Context, entries []domain.InventoryEntry) []domain.InventorySlot {
	args := m.Called(ctx, entries)
	return args.Get(0).([]domain.InventorySlot)
}

func (m *MockSnapshotBuilder) FormatRoomLayout(ctx context.Context, layout []domain.RoomPlacement) []domain.PlacementDetail {
	args := m.Called(ctx, layout)
	return args.Get(0).([]domain.PlacementDetail)
}

// MockSyncService implements strava.SyncService for testing
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Sync(ctx context.Context, userID string) (*domain.SyncResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

// MockStravaClient implements strava.Client for testing
type MockStravaClient struct {
	mock.Mock
}

func (m *MockStravaClient) AuthorizeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockStravaClient) ExchangeCode(ctx context.Context, code string) (*strava.TokenPair, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*strava.TokenPair), args.Error(1)
}

func (m *MockStravaClient) Refresh(ctx context.Context, refreshToken string) (*strava.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*strava.TokenPair), args.Error(1)
}

func (m *MockStravaClient) ListActivities(ctx context.Context, accessToken string, page, perPage int) ([]domain.Activity, error) {
	args := m.Called(ctx, accessToken, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// newTestMultipart writes a multipart body with the given fields and one
// optional file part, returning the Content-Type header value.
func newTestMultipart(t *testing.T, buf *bytes.Buffer, fields map[string]string, fileField, filename string, content []byte) string {
	t.Helper()

	w := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType()
}

// pngBytes returns a minimal payload that sniffs as image/png.
func pngBytes() []byte {
	return append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 64)...)
}

const testJWTSecret = "handler-test-secret"

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(testJWTSecret)
}

// authenticate returns a valid bearer header value for the given user.
func authenticate(t *testing.T, userID string) string {
	t.Helper()
	token, err := testTokenManager().Issue(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func protect(h http.HandlerFunc) http.Handler {
	return testTokenManager().Middleware(h)
}
