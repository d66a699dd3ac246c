package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ActivityCategory is read-only reference data used to price activities and
// cost point purchases.
type ActivityCategory struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	PointCost int64        `gorm:"not null;default:0" json:"point_cost"`
	UnitPrice int64        `gorm:"not null;default:0" json:"unit_price"`
	Icon      string       `gorm:"type:text" json:"icon,omitempty"`
	Color     string       `gorm:"type:text" json:"color,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ActivityCategory) TableName() string { return "activity_categories" }
