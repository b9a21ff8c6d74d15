// sites.go
//
// A site builder data service: ordered site components and static HTML/CSS export
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of sitebuilder.
// sitebuilder is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sitebuilder is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sitebuilder.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/localnerve/sitebuilder/internal/codegen"
	"github.com/localnerve/sitebuilder/internal/metrics"
	"github.com/localnerve/sitebuilder/internal/models"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Site listing bounds
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxSiteName      = 100
)

// sortColumns whitelists the sortable columns by their API names
var sortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
}

// ListOptions filters and pages ListSites
type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// SiteList is one page of sites
type SiteList struct {
	Sites   []models.Site `json:"sites"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"hasMore"`
}

// SiteInput creates a site
type SiteInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings,omitempty"`
	Status      string         `json:"status,omitempty"`
}

// SitePatch updates a site; nil fields are left unchanged
type SitePatch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Settings    *map[string]any `json:"settings,omitempty"`
	Status      *string         `json:"status,omitempty"`
}

// SiteService manages sites and their exports
type SiteService struct {
	DB      *gorm.DB
	Metrics metrics.Recorder
}

// NewSiteService creates a SiteService. A nil recorder disables metrics.
func NewSiteService(db *gorm.DB, rec metrics.Recorder) *SiteService {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &SiteService{DB: db, Metrics: rec}
}

// ownedSite is the unlocked existence probe used by reads
func ownedSite(tx *gorm.DB, siteID uint64, ownerID string) error {
	var ids []uint64
	if err := tx.Model(&models.Site{}).
		Where("site_id = ? AND user_id = ?", siteID, ownerID).
		Limit(1).
		Pluck("site_id", &ids).Error; err != nil {
		return fmt.Errorf("failed to check site ownership: %w", err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeName trims and NFC-normalizes a site name, then checks its length in runes
func normalizeName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", validationError("name is required")
	}
	if n := utf8.RuneCountInString(name); n > MaxSiteName {
		return "", validationError("name must be at most %d characters, got %d", MaxSiteName, n)
	}
	return name, nil
}

func parseStatus(status string, def models.SiteStatus) (models.SiteStatus, error) {
	if status == "" {
		return def, nil
	}
	s := models.SiteStatus(status)
	if !s.Valid() {
		return "", validationError("invalid status %q", status)
	}
	return s, nil
}

// ListSites returns one page of the owner's sites
func (s *SiteService) ListSites(ctx context.Context, ownerID string, opts ListOptions) (*SiteList, error) {
	page := max(opts.Page, 1)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := !strings.EqualFold(opts.SortOrder, "asc")

	query := s.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)}).
		Model(&models.Site{}).
		Where("user_id = ?", ownerID)

	if search := strings.TrimSpace(opts.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sites: %w", err)
	}

	sites := make([]models.Site, 0, limit)
	if err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "site_id"}, Desc: desc}).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&sites).Error; err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return &SiteList{
		Sites:   sites,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page*limit) < total,
	}, nil
}

// GetSite returns a site without its components
func (s *SiteService) GetSite(ctx context.Context, siteID uint64, ownerID string) (*models.Site, error) {
	var site models.Site
	err := s.DB.WithContext(ctx).
		Where("site_id = ? AND user_id = ?", siteID, ownerID).
		First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read site: %w", err)
	}
	return &site, nil
}

// GetFullSite returns a site with its components in position order
func (s *SiteService) GetFullSite(ctx context.Context, siteID uint64, ownerID string) (*models.Site, error) {
	var site models.Site

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ? AND user_id = ?", siteID, ownerID).
			First(&site).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read site: %w", err)
		}

		comps, err := orderedComponents(tx, siteID)
		if err != nil {
			return err
		}
		site.Components = comps
		return nil
	})
	if err != nil {
		return nil, err
	}

	if site.Components == nil {
		site.Components = []models.Component{}
	}
	return &site, nil
}

// CreateSite creates a site with default settings
func (s *SiteService) CreateSite(ctx context.Context, ownerID string, in SiteInput) (*models.Site, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(in.Status, models.SiteStatusDraft)
	if err != nil {
		return nil, err
	}

	settings := codegen.DefaultSettings()
	for k, v := range in.Settings {
		settings[k] = v
	}
	settingsJSON, err := models.NewJSON(settings)
	if err != nil {
		return nil, validationError("settings are not serializable: %v", err)
	}

	site := models.Site{
		UserID:      ownerID,
		Name:        name,
		Description: in.Description,
		Settings:    settingsJSON,
		Status:      status,
	}
	if err := s.DB.WithContext(ctx).Create(&site).Error; err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	log.Printf("Created site %d for user %s", site.SiteID, ownerID)
	return &site, nil
}

// UpdateSite applies the non-nil fields of patch. Settings are replaced wholesale.
func (s *SiteService) UpdateSite(ctx context.Context, siteID uint64, ownerID string, patch SitePatch) (*models.Site, error) {
	updates := make(map[string]any)

	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Settings != nil {
		settings := *patch.Settings
		if settings == nil {
			settings = map[string]any{}
		}
		value, err := models.NewJSON(settings)
		if err != nil {
			return nil, validationError("settings are not serializable: %v", err)
		}
		updates["settings"] = value
	}
	if patch.Status != nil {
		status, err := parseStatus(*patch.Status, "")
		if err != nil {
			return nil, err
		}
		if status == "" {
			return nil, validationError("status must not be empty")
		}
		updates["status"] = status
	}

	var site models.Site
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("site_id = ? AND user_id = ?", siteID, ownerID).
			First(&site).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read site: %w", err)
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&site).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update site: %w", err)
		}
		return tx.Where("site_id = ?", siteID).First(&site).Error
	})
	if err != nil {
		return nil, err
	}

	return &site, nil
}

// DeleteSite deletes a site and its components.
// It reports whether the site row was deleted.
func (s *SiteService) DeleteSite(ctx context.Context, siteID uint64, ownerID string) (bool, error) {
	var deleted bool

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedSite(tx, siteID, ownerID); err != nil {
			return err
		}

		// Not every dialect enforces the cascade (SQLite without foreign_keys)
		if err := tx.Where("site_id = ?", siteID).Delete(&models.Component{}).Error; err != nil {
			return fmt.Errorf("failed to delete components: %w", err)
		}

		result := tx.Where("site_id = ? AND user_id = ?", siteID, ownerID).Delete(&models.Site{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete site: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		log.Printf("Deleted site %d for user %s", siteID, ownerID)
	}
	return deleted, nil
}

// SetPreview stores the preview reference of a site
func (s *SiteService) SetPreview(ctx context.Context, siteID uint64, ownerID, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", validationError("preview url is required")
	}

	result := s.DB.WithContext(ctx).
		Model(&models.Site{}).
		Where("site_id = ? AND user_id = ?", siteID, ownerID).
		Update("preview_url", url)
	if result.Error != nil {
		return "", fmt.Errorf("failed to set preview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows when the value is unchanged
		if err := ownedSite(s.DB.WithContext(ctx), siteID, ownerID); err != nil {
			return "", err
		}
	}

	return url, nil
}

// ExportSite loads the full site and generates its HTML and CSS
func (s *SiteService) ExportSite(ctx context.Context, siteID uint64, ownerID, format string) (codegen.Export, error) {
	site, err := s.GetFullSite(ctx, siteID, ownerID)
	if err != nil {
		return codegen.Export{}, err
	}

	s.Metrics.IncExport(format)
	return codegen.Generate(ToCodegenSite(site)), nil
}

// ToCodegenSite converts a stored site into generator input
func ToCodegenSite(site *models.Site) codegen.Site {
	comps := make([]codegen.Component, len(site.Components))
	for i, c := range site.Components {
		comps[i] = codegen.Component{
			ID:        fmt.Sprintf("%d", c.ComponentID),
			Type:      c.Type,
			Props:     c.Props.Map(),
			SortOrder: c.SortOrder,
		}
	}

	return codegen.Site{
		Name:       site.Name,
		Settings:   site.Settings.Map(),
		Components: comps,
	}
}
