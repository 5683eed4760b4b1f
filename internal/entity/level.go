package entity

// LevelTier is a catalog row. Tiers are ordered by LevelNumber and their
// RequiredPoints are strictly increasing. The catalog is administered
// externally and read-only to the engine.
type LevelTier struct {
	Base

	Name           string
	LevelNumber    int   `gorm:"index:idx_level_tiers_number,unique"`
	RequiredPoints int64 `gorm:"not null"`
	Description    string
	Benefits       Array[string]
	IsActive       bool `gorm:"default:true"`
}
