package entity

import "database/sql"

// Achievement is a catalog row. Condition is a JSON object of the form
// {"kind": "count", "target": "<counter name>", "value": <threshold>}.
type Achievement struct {
	Base

	Name        string
	Description string
	Type        string `gorm:"index"`
	Condition   Map
	Points      int64
	BadgeID     sql.NullString
	IsActive    bool `gorm:"default:true"`
}
