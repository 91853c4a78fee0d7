package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/repository"
)

// singleflight key for catalog provisioning. All concurrent ensure calls
// collapse into one in-flight operation sharing the same result.
const ensureKey = "base-catalog"

// Service provides catalog provisioning, item lookup, and the one-time
// starter kit grant.
type Service interface {
	// EnsureBaseCatalog guarantees every default item exists in storage with
	// up-to-date fields (upsert by SKU). Safe to invoke concurrently:
	// concurrent calls share a single pending operation and its error.
	EnsureBaseCatalog(ctx context.Context) error

	// ListItems returns the whole catalog sorted by cost ascending,
	// provisioning it first.
	ListItems(ctx context.Context) ([]domain.Item, error)

	// GetItem looks up a single item by ID through the LRU cache.
	GetItem(ctx context.Context, id string) (*domain.Item, error)

	// GrantStarterKit appends one inventory entry per starter SKU if and only
	// if the user's inventory is currently empty, then persists. Non-empty
	// inventory is a no-op.
	GrantStarterKit(ctx context.Context, user *domain.User) error
}

type service struct {
	items repository.Item
	users repository.User
	group singleflight.Group
	cache *itemCache
}

// NewService creates a new catalog service
func NewService(items repository.Item, users repository.User) Service {
	return &service{
		items: items,
		users: users,
		cache: newItemCache(defaultCacheSize, defaultCacheTTL),
	}
}

func (s *service) EnsureBaseCatalog(ctx context.Context) error {
	_, err, _ := s.group.Do(ensureKey, func() (interface{}, error) {
		return nil, s.provision(ctx)
	})
	return err
}

func (s *service) provision(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for i := range DefaultItems {
		item := DefaultItems[i]
		if err := s.items.UpsertBySKU(ctx, &item); err != nil {
			return fmt.Errorf("failed to provision catalog: %w", err)
		}
	}

	// Drop cached lookups so joins observe re-provisioned fields.
	s.cache.Clear()

	log.Debug("Base catalog ensured", "items", len(DefaultItems))
	return nil
}

func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := s.EnsureBaseCatalog(ctx); err != nil {
		return nil, err
	}
	return s.items.GetAll(ctx)
}

func (s *service) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(id, item)
	return item, nil
}

func (s *service) GrantStarterKit(ctx context.Context, user *domain.User) error {
	if len(user.Inventory) > 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	if err := s.EnsureBaseCatalog(ctx); err != nil {
		return err
	}

	starterItems, err := s.items.GetBySKUs(ctx, StarterSKUs)
	if err != nil {
		return fmt.Errorf("failed to load starter items: %w", err)
	}

	for _, item := range starterItems {
		user.Inventory = append(user.Inventory, domain.InventoryEntry{ItemID: item.ID})
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist starter kit: %w", err)
	}

	log.Info("Starter kit granted", "user_id", user.ID, "items", len(starterItems))
	return nil
}
