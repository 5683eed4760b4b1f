package entity

import "github.com/jobquest-lab/backend/pkg/enum"

type BadgeRarity string

var (
	BadgeRarityCommon    = enum.New(BadgeRarity("common"))
	BadgeRarityUncommon  = enum.New(BadgeRarity("uncommon"))
	BadgeRarityRare      = enum.New(BadgeRarity("rare"))
	BadgeRarityEpic      = enum.New(BadgeRarity("epic"))
	BadgeRarityLegendary = enum.New(BadgeRarity("legendary"))
)

// Badge is a catalog row. Type is the stable key badge rules refer to.
type Badge struct {
	Base

	Name        string
	Description string
	Icon        string
	Color       string
	Type        string `gorm:"index:idx_badges_type,unique"`
	Points      int64
	Rarity      BadgeRarity `gorm:"default:common"`
	IsActive    bool        `gorm:"default:true"`
}
