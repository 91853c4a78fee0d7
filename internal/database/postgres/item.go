package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adudhe01/runroom/internal/domain"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `item_id, sku, item_name, cost, category, rarity, item_description, image_url, created_at, updated_at`

// UpsertBySKU inserts the item or overwrites the fields of the existing row
// with the same SKU. Schema defaults only apply on insert.
func (r *ItemRepository) UpsertBySKU(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (sku, item_name, cost, category, rarity, item_description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (sku) DO UPDATE
		SET item_name = EXCLUDED.item_name,
			cost = EXCLUDED.cost,
			category = EXCLUDED.category,
			rarity = EXCLUDED.rarity,
			item_description = EXCLUDED.item_description,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING item_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		item.SKU, item.Name, item.Cost, item.Category, item.Rarity, item.Description, item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.SKU, err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE item_id = $1`, itemColumns)
	return r.scanItem(r.db.QueryRow(ctx, query, id))
}

// GetBySKUs retrieves all items matching the given SKUs
func (r *ItemRepository) GetBySKUs(ctx context.Context, skus []string) ([]domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE sku = ANY($1)`, itemColumns)
	rows, err := r.db.Query(ctx, query, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by sku: %w", err)
	}
	defer rows.Close()

	return r.collectItems(rows)
}

// GetAll retrieves the whole catalog sorted by cost ascending
func (r *ItemRepository) GetAll(ctx context.Context) ([]domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items ORDER BY cost ASC`, itemColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	return r.collectItems(rows)
}

// DeleteAll removes every catalog row. Used by the seed tool before a full
// re-insert.
func (r *ItemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}

func (r *ItemRepository) scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.SKU, &item.Name, &item.Cost, &item.Category,
		&item.Rarity, &item.Description, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	return &item, nil
}

func (r *ItemRepository) collectItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID, &item.SKU, &item.Name, &item.Cost, &item.Category,
			&item.Rarity, &item.Description, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
