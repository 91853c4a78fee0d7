package domain

import "time"

// Item is a catalog entry. Items are seeded by the catalog provisioner and
// only change through re-provisioning (upsert by SKU).
type Item struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Cost        int       `json:"cost"`
	Category    string    `json:"category"`
	Rarity      string    `json:"rarity"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Rarity values used by the default catalog.
const (
	RarityCommon   = "common"
	RarityUncommon = "uncommon"
	RarityRare     = "rare"
	RarityEpic     = "epic"
)
