// components.go
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
	"time"

	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/metrics"
	"github.com/localnerve/sitebuilder/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// componentOrderIndex is the (site_id, sort_order) index on site_components
const componentOrderIndex = "idx_components_site_order"

// ComponentInput is one component to append
type ComponentInput struct {
	Type  component.Type `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// ComponentService owns the ordering of components within a site.
// Every mutation is gated on site ownership, and every operation that moves
// positions is serialized per site.
type ComponentService struct {
	DB      *gorm.DB
	Locks   *SiteLocks
	Metrics metrics.Recorder

	// Strict rejects reorder lists that are not an exact permutation of the
	// site's component ids.
	Strict bool
}

// NewComponentService creates a ComponentService. A nil recorder disables metrics.
func NewComponentService(db *gorm.DB, locks *SiteLocks, rec metrics.Recorder, strict bool) *ComponentService {
	if locks == nil {
		locks = NewSiteLocks()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &ComponentService{DB: db, Locks: locks, Metrics: rec, Strict: strict}
}

// lockOwnedSite checks the site belongs to ownerID, locking the site row for
// the rest of the transaction where the dialect supports it.
func lockOwnedSite(tx *gorm.DB, siteID uint64, ownerID string) error {
	var ids []uint64
	if err := forUpdate(tx).
		Model(&models.Site{}).
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

// forUpdate adds a FOR UPDATE row lock. SQL Server has no such clause, and the
// SQLite dialects drop it on their own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlserver" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// orderedQuery selects a site's components by (position, id). MySQL is
// pointed at the (site_id, sort_order) index, which also serves the sort.
func orderedQuery(tx *gorm.DB, siteID uint64) *gorm.DB {
	q := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
		Clauses(hints.CommentBefore("select", "sitebuilder:ordered_components"))
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex(componentOrderIndex))
	}
	return q.Where("site_id = ?", siteID).
		Order("sort_order ASC").
		Order("component_id ASC")
}

// orderedComponents reads a site's components by (position, id)
func orderedComponents(tx *gorm.DB, siteID uint64) ([]models.Component, error) {
	var comps []models.Component
	err := orderedQuery(tx, siteID).Find(&comps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read components: %w", err)
	}
	return comps, nil
}

// nextPosition returns max(position)+1, or 0 when the site has no components
func nextPosition(tx *gorm.DB, siteID uint64) (int, error) {
	var maxPos int
	if err := tx.Model(&models.Component{}).
		Where("site_id = ?", siteID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxPos).Error; err != nil {
		return 0, fmt.Errorf("failed to read max position: %w", err)
	}
	return maxPos + 1, nil
}

// renumber assigns position = index over the (position, id) ordering.
// Only rows whose position changes are written.
func (s *ComponentService) renumber(tx *gorm.DB, siteID uint64) error {
	start := time.Now()

	comps, err := orderedComponents(tx, siteID)
	if err != nil {
		return err
	}

	for i := range comps {
		if comps[i].SortOrder == i {
			continue
		}
		if err := tx.Model(&comps[i]).UpdateColumn("sort_order", i).Error; err != nil {
			return fmt.Errorf("failed to renumber component %d: %w", comps[i].ComponentID, err)
		}
		comps[i].SortOrder = i
	}

	s.Metrics.ObserveRenumber(time.Since(start), len(comps))
	return nil
}

// List returns the site's components in position order
func (s *ComponentService) List(ctx context.Context, siteID uint64, ownerID string) ([]models.Component, error) {
	var comps []models.Component

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedSite(tx, siteID, ownerID); err != nil {
			return err
		}
		var err error
		comps, err = orderedComponents(tx, siteID)
		return err
	})

	return comps, err
}

// Append adds a component at the tail of the site
func (s *ComponentService) Append(ctx context.Context, siteID uint64, ownerID string, in ComponentInput) (*models.Component, error) {
	comps, err := s.AppendMany(ctx, siteID, ownerID, []ComponentInput{in})
	if err != nil {
		return nil, err
	}
	return &comps[0], nil
}

// AppendMany adds components at the tail of the site in input order, in one transaction
func (s *ComponentService) AppendMany(ctx context.Context, siteID uint64, ownerID string, inputs []ComponentInput) ([]models.Component, error) {
	if len(inputs) == 0 {
		return nil, validationError("at least one component is required")
	}

	rows := make([]models.Component, len(inputs))
	for i, in := range inputs {
		if !in.Type.Valid() {
			return nil, validationError("invalid component type %q", in.Type)
		}
		props, err := propsJSON(in.Props)
		if err != nil {
			return nil, err
		}
		rows[i] = models.Component{SiteID: siteID, Type: in.Type, Props: props}
	}

	unlock := s.Locks.Lock(siteID)
	defer unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedSite(tx, siteID, ownerID); err != nil {
			return err
		}

		next, err := nextPosition(tx, siteID)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].SortOrder = next + i
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create components: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for range rows {
		s.Metrics.IncComponentMutation("append")
	}
	log.Printf("Appended %d component(s) to site %d", len(rows), siteID)

	return rows, nil
}

// UpdateProps replaces a component's props wholesale
func (s *ComponentService) UpdateProps(ctx context.Context, componentID, siteID uint64, ownerID string, props map[string]any) (*models.Component, error) {
	if props == nil {
		return nil, validationError("props are required")
	}
	value, err := propsJSON(props)
	if err != nil {
		return nil, err
	}

	var comp models.Component
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedSite(tx, siteID, ownerID); err != nil {
			return err
		}

		if err := tx.Where("component_id = ? AND site_id = ?", componentID, siteID).
			First(&comp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read component: %w", err)
		}

		comp.Props = value
		comp.UpdatedAt = time.Now()
		if err := tx.Model(&comp).Select("props", "updated_at").Updates(&comp).Error; err != nil {
			return fmt.Errorf("failed to update component: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.IncComponentMutation("update")
	return &comp, nil
}

// Delete removes a component and closes the gap it leaves.
// It reports whether a row was deleted.
func (s *ComponentService) Delete(ctx context.Context, componentID, siteID uint64, ownerID string) (bool, error) {
	var deleted bool

	unlock := s.Locks.Lock(siteID)
	defer unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedSite(tx, siteID, ownerID); err != nil {
			return err
		}

		result := tx.Where("component_id = ? AND site_id = ?", componentID, siteID).
			Delete(&models.Component{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete component: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		if !deleted {
			return nil
		}

		return s.renumber(tx, siteID)
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.Metrics.IncComponentMutation("delete")
		log.Printf("Deleted component %d from site %d", componentID, siteID)
	}
	return deleted, nil
}

// Reorder sets position = index for every listed component id, atomically.
// In partial mode unlisted components keep their positions and ids from other
// sites are ignored; in strict mode the list must be an exact permutation.
// It returns the number of rows updated.
func (s *ComponentService) Reorder(ctx context.Context, siteID uint64, ownerID string, orderedIDs []uint64) (int64, error) {
	var updated int64

	unlock := s.Locks.Lock(siteID)
	defer unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedSite(tx, siteID, ownerID); err != nil {
			return err
		}

		if s.Strict {
			current, err := orderedComponents(tx, siteID)
			if err != nil {
				return err
			}
			if err := checkPermutation(current, orderedIDs); err != nil {
				return err
			}
		}

		for i, id := range orderedIDs {
			result := tx.Model(&models.Component{}).
				Where("component_id = ? AND site_id = ?", id, siteID).
				UpdateColumn("sort_order", i)
			if result.Error != nil {
				return fmt.Errorf("failed to reorder component %d: %w", id, result.Error)
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.Metrics.IncComponentMutation("reorder")
	log.Printf("Reordered site %d: %d of %d listed component(s) updated", siteID, updated, len(orderedIDs))

	return updated, nil
}

// Renumber restores positions 0..n-1 for the site, breaking ties by id.
// Running it twice yields the same assignment.
func (s *ComponentService) Renumber(ctx context.Context, siteID uint64) error {
	unlock := s.Locks.Lock(siteID)
	defer unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := forUpdate(tx).
			Model(&models.Site{}).
			Where("site_id = ?", siteID).
			Pluck("site_id", &ids).Error; err != nil {
			return fmt.Errorf("failed to lock site: %w", err)
		}
		return s.renumber(tx, siteID)
	})
	if err != nil {
		return err
	}

	s.Metrics.IncComponentMutation("renumber")
	return nil
}

// checkPermutation verifies ids lists every component exactly once
func checkPermutation(current []models.Component, ids []uint64) error {
	if len(ids) != len(current) {
		return validationError("order must list all %d components, got %d", len(current), len(ids))
	}

	want := make(map[uint64]bool, len(current))
	for _, c := range current {
		want[c.ComponentID] = true
	}
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if !want[id] {
			return validationError("component %d does not belong to this site", id)
		}
		if seen[id] {
			return validationError("component %d is listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// propsJSON stores props verbatim; absent props become an empty object
func propsJSON(props map[string]any) (models.JSON, error) {
	if props == nil {
		props = map[string]any{}
	}
	value, err := models.NewJSON(props)
	if err != nil {
		return models.JSON{}, validationError("props are not serializable: %v", err)
	}
	return value, nil
}
