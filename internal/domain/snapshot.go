package domain

// ItemDetail is the formatted catalog entry embedded in snapshot output.
type ItemDetail struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Rarity      string `json:"rarity"`
	Description string `json:"description"`
}

// InventorySlot is one formatted owned-item reference. SlotID disambiguates
// duplicate ownership of the same item.
type InventorySlot struct {
	SlotID string     `json:"slotId"`
	ItemID string     `json:"itemId"`
	Item   ItemDetail `json:"item"`
}

// PlacementDetail is a room placement joined with its item details.
type PlacementDetail struct {
	ID       string     `json:"id"`
	ItemID   string     `json:"itemId"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Z        float64    `json:"z"`
	Rotation float64    `json:"rotation"`
	Scale    float64    `json:"scale"`
	Item     ItemDetail `json:"item"`
}

// UserProfile is the identity slice of the snapshot.
type UserProfile struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
}

// Snapshot is the composed read-model returned to the client after
// authentication or an on-demand refresh. Entries whose referenced item no
// longer resolves against the catalog are dropped, not reported.
type Snapshot struct {
	User            UserProfile       `json:"user"`
	PointsRemaining int               `json:"pointsRemaining"`
	Inventory       []InventorySlot   `json:"inventory"`
	RoomLayout      []PlacementDetail `json:"roomLayout"`
	StravaConnected bool              `json:"stravaConnected"`
	TotalKm         int               `json:"totalKm"`
}
