package catalog

import "github.com/adudhe01/runroom/internal/domain"

// DefaultItems is the fixed shop catalog. The provisioner upserts these by
// SKU, so edits here propagate to storage on the next ensure.
var DefaultItems = []domain.Item{
	{
		SKU:         "poster.midnight-grid",
		Name:        "Midnight Grid Poster",
		Cost:        8,
		Category:    "wall",
		Rarity:      domain.RarityCommon,
		Description: "Retro-futuristic print to celebrate night runs.",
		ImageURL:    "https://images.unsplash.com/photo-1482192505345-5655af888cc4?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "light.aurora-bar",
		Name:        "Aurora Glow Bar",
		Cost:        14,
		Category:    "light",
		Rarity:      domain.RarityRare,
		Description: "Gradient light bar that mimics sunrise warmups.",
		ImageURL:    "https://images.unsplash.com/photo-1469474968028-56623f02e42e?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "plant.moss-wall",
		Name:        "Moss Wall Planter",
		Cost:        10,
		Category:    "decor",
		Rarity:      domain.RarityUncommon,
		Description: "Low-maintenance greenery for recovery corners.",
		ImageURL:    "https://images.unsplash.com/photo-1501004318641-b39e6451bec6?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "shelf.altitude",
		Name:        "Altitude Floating Shelf",
		Cost:        12,
		Category:    "storage",
		Rarity:      domain.RarityCommon,
		Description: "Stage medals, gels, and cadence trackers.",
		ImageURL:    "https://images.unsplash.com/photo-1523419409543-0c1df022bddb?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "lamp.ready-set",
		Name:        "Ready-Set Smart Lamp",
		Cost:        16,
		Category:    "light",
		Rarity:      domain.RarityEpic,
		Description: "Programmable lamp that pulses with your BPM.",
		ImageURL:    "https://images.unsplash.com/photo-1470246973918-29a93221c455?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "sofa.clubhouse",
		Name:        "Clubhouse Loveseat",
		Cost:        22,
		Category:    "seating",
		Rarity:      domain.RarityRare,
		Description: "Plush seating for cool-down hangs.",
		ImageURL:    "https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "mat.stride-lab",
		Name:        "Stride Lab Mat",
		Cost:        9,
		Category:    "floor",
		Rarity:      domain.RarityCommon,
		Description: "Shock-absorbing mat for drills and core work.",
		ImageURL:    "https://images.unsplash.com/photo-1518611012118-696072aa579a?auto=format&fit=crop&w=400&q=80",
	},
	{
		SKU:         "table.recovery-station",
		Name:        "Recovery Capsule Table",
		Cost:        13,
		Category:    "decor",
		Rarity:      domain.RarityUncommon,
		Description: "Minimal side table for foam rollers and fuel.",
		ImageURL:    "https://images.unsplash.com/photo-1449247709967-d4461a6a6103?auto=format&fit=crop&w=400&q=80",
	},
}

// StarterSKUs is the fixed item set granted once per user when their
// inventory is empty.
var StarterSKUs = []string{
	"poster.midnight-grid",
	"plant.moss-wall",
	"light.aurora-bar",
}
