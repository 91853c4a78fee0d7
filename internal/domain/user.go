package domain

import "time"

// InventoryEntry is a single owned-item reference. Duplicates are allowed:
// a user may own the same item more than once.
type InventoryEntry struct {
	ItemID string `json:"itemId"`
}

// RoomPlacement positions an owned item inside the user's room.
type RoomPlacement struct {
	ID       string  `json:"id"`
	ItemID   string  `json:"itemId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// User is the full user document. Inventory and RoomLayout are stored as
// JSONB alongside the scalar columns, so every persist is a single-row write.
type User struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PasswordHash   string  `json:"-"`
	ProfilePicture *string `json:"profilePicture"`

	TotalKm      float64 `json:"totalKm"`
	PointsEarned int     `json:"pointsEarned"`
	PointsSpent  int     `json:"pointsSpent"`

	Inventory  []InventoryEntry `json:"inventory"`
	RoomLayout []RoomPlacement  `json:"roomLayout"`

	StravaAccessToken    string     `json:"-"`
	StravaRefreshToken   string     `json:"-"`
	StravaTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PointsRemaining is the derived balance. It is never persisted directly;
// it is recomputed from earned minus spent on every read.
func (u *User) PointsRemaining() int {
	return u.PointsEarned - u.PointsSpent
}

// StravaConnected reports whether either Strava credential is present,
// independent of token validity.
func (u *User) StravaConnected() bool {
	return u.StravaAccessToken != "" || u.StravaRefreshToken != ""
}
