// data.go
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

package helpers

import (
	"testing"

	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/models"
	"gorm.io/gorm"
)

// CreateTestSite stores a site directly, bypassing the services
func CreateTestSite(t *testing.T, db *gorm.DB, ownerID, name string) *models.Site {
	t.Helper()
	site := models.Site{
		UserID:   ownerID,
		Name:     name,
		Settings: models.RawJSON(nil),
		Status:   models.SiteStatusDraft,
	}
	if err := db.Create(&site).Error; err != nil {
		t.Fatalf("Failed to create site: %v", err)
	}
	return &site
}

// CreateTestComponents stores components with the given positions, which
// need not be dense
func CreateTestComponents(t *testing.T, db *gorm.DB, siteID uint64, typ component.Type, positions ...int) []models.Component {
	t.Helper()
	comps := make([]models.Component, len(positions))
	for i, pos := range positions {
		comps[i] = models.Component{
			SiteID:    siteID,
			Type:      typ,
			Props:     models.RawJSON(nil),
			SortOrder: pos,
		}
	}
	if err := db.Create(&comps).Error; err != nil {
		t.Fatalf("Failed to create components: %v", err)
	}
	return comps
}
