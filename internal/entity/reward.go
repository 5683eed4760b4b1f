package entity

import "github.com/jobquest-lab/backend/pkg/enum"

type RewardType string

var (
	RewardTypePoints         = enum.New(RewardType("points"))
	RewardTypeBadge          = enum.New(RewardType("badge"))
	RewardTypeDiscount       = enum.New(RewardType("discount"))
	RewardTypePremiumFeature = enum.New(RewardType("premium_feature"))
	RewardTypeCustom         = enum.New(RewardType("custom"))
)

// Reward is a catalog row. Value is an opaque payload interpreted by the
// consumer of a claimed reward, for example {"discount_percent": 20}.
type Reward struct {
	Base

	Name        string
	Description string
	Type        RewardType
	Value       Map
	Cost        int64
	IsActive    bool `gorm:"default:true"`
}
