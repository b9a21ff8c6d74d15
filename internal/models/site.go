package models

import (
	"time"
)

// SiteStatus is the publication state of a site
type SiteStatus string

const (
	SiteStatusDraft     SiteStatus = "draft"
	SiteStatusPublished SiteStatus = "published"
	SiteStatusArchived  SiteStatus = "archived"
)

// Valid reports whether s is a known site status
func (s SiteStatus) Valid() bool {
	switch s {
	case SiteStatusDraft, SiteStatusPublished, SiteStatusArchived:
		return true
	}
	return false
}

// Site is a user-owned container of ordered components plus presentation settings
type Site struct {
	SiteID      uint64      `gorm:"primaryKey;autoIncrement" json:"site_id"`
	UserID      string      `gorm:"type:char(36);not null;index:idx_sites_user" json:"-"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Description string      `gorm:"size:1000;not null;default:''" json:"description"`
	Settings    JSON        `json:"settings"`
	PreviewURL  string      `gorm:"column:preview_url;size:2048" json:"preview"`
	Status      SiteStatus  `gorm:"size:16;not null;default:draft" json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Components  []Component `gorm:"foreignKey:SiteID;references:SiteID;constraint:OnDelete:CASCADE" json:"components,omitempty"`
}

// TableName overrides the table name for Site
func (Site) TableName() string {
	return "sites"
}

// FullSite is a site with its ordered components. Components is always
// present when marshaled, empty for a site without components.
type FullSite struct {
	*Site
	Components []Component `json:"components"`
}

// NewFullSite wraps site, replacing a nil component list with an empty one
func NewFullSite(site *Site) FullSite {
	comps := site.Components
	if comps == nil {
		comps = []Component{}
	}
	return FullSite{Site: site, Components: comps}
}
