package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adudhe01/runroom/internal/domain"
)

// UserRepository implements repository.User for PostgreSQL.
// Inventory and room layout are JSONB columns on the users row, so every
// Update is a single-row write of the whole document.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, user_name, email, password_hash, profile_picture,
	total_km, points_earned, points_spent, inventory, room_layout,
	strava_access_token, strava_refresh_token, strava_token_expires_at,
	created_at, updated_at`

// Create inserts a new user. Returns domain.ErrDuplicateEmail when the email
// is already registered.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	inventory, layout, err := marshalDocumentFields(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_name, email, password_hash, profile_picture, inventory, room_layout, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING user_id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.ProfilePicture, inventory, layout,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// Update persists the full user document in one row write. The last write
// wins: two concurrent read-modify-write cycles on the same user can both
// succeed, matching the storage layer's single-write atomicity contract.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	inventory, layout, err := marshalDocumentFields(user)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET user_name = $1, email = $2, password_hash = $3, profile_picture = $4,
			total_km = $5, points_earned = $6, points_spent = $7,
			inventory = $8, room_layout = $9,
			strava_access_token = $10, strava_refresh_token = $11, strava_token_expires_at = $12,
			updated_at = NOW()
		WHERE user_id = $13
	`
	tag, err := r.db.Exec(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.ProfilePicture,
		user.TotalKm, user.PointsEarned, user.PointsSpent,
		inventory, layout,
		user.StravaAccessToken, user.StravaRefreshToken, user.StravaTokenExpiresAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// GetAll retrieves all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var inventory, layout []byte

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.ProfilePicture,
		&user.TotalKm, &user.PointsEarned, &user.PointsSpent, &inventory, &layout,
		&user.StravaAccessToken, &user.StravaRefreshToken, &user.StravaTokenExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if err := json.Unmarshal(inventory, &user.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	if err := json.Unmarshal(layout, &user.RoomLayout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room layout: %w", err)
	}

	return &user, nil
}

func marshalDocumentFields(user *domain.User) ([]byte, []byte, error) {
	inventory := user.Inventory
	if inventory == nil {
		inventory = []domain.InventoryEntry{}
	}
	layout := user.RoomLayout
	if layout == nil {
		layout = []domain.RoomPlacement{}
	}

	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal inventory: %w", err)
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal room layout: %w", err)
	}

	return inventoryJSON, layoutJSON, nil
}
