package models

import (
	"time"

	"github.com/localnerve/sitebuilder/internal/component"
)

// Component is one typed, positioned content block belonging to exactly one site
type Component struct {
	ComponentID uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteID      uint64         `gorm:"not null;index:idx_components_site_order,priority:1" json:"-"`
	Type        component.Type `gorm:"size:32;not null" json:"type"`
	Props       JSON           `json:"props"`
	SortOrder   int            `gorm:"not null;default:0;index:idx_components_site_order,priority:2" json:"sortOrder"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// TableName overrides the table name for Component
func (Component) TableName() string {
	return "site_components"
}
