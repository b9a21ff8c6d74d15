package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errWriteFailed = errors.New("component write failed")

// failNthComponentUpdate makes the nth component UPDATE after arming fail.
// The returned func arms the counter.
func failNthComponentUpdate(t *testing.T, db *gorm.DB, n int) (arm func()) {
	t.Helper()

	armed := false
	count := 0
	table := models.Component{}.TableName()

	err := db.Callback().Update().Before("gorm:update").Register("test:fail_component_update", func(tx *gorm.DB) {
		if !armed || tx.Statement.Schema == nil || tx.Statement.Schema.Table != table {
			return
		}
		count++
		if count == n {
			_ = tx.AddError(errWriteFailed)
		}
	})
	require.NoError(t, err)

	return func() {
		armed = true
		count = 0
	}
}

func TestReorderRollsBackOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	c := f.add(t, siteID, component.Button)
	before := f.positions(t, siteID)

	arm := failNthComponentUpdate(t, f.db, 2)
	arm()

	_, err := f.comps.Reorder(ctx, siteID, f.owner, []uint64{c.ComponentID, a.ComponentID, b.ComponentID})
	require.ErrorIs(t, err, errWriteFailed)

	assert.Equal(t, before, f.positions(t, siteID))
	assert.Zero(t, f.rec.mutations["reorder"])
}

func TestDeleteRollsBackWhenRenumberFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	f.add(t, siteID, component.Paragraph)
	f.add(t, siteID, component.Button)
	before := f.positions(t, siteID)

	// deleting the head moves both remaining rows; fail the second move
	arm := failNthComponentUpdate(t, f.db, 2)
	arm()

	deleted, err := f.comps.Delete(ctx, a.ComponentID, siteID, f.owner)
	require.ErrorIs(t, err, errWriteFailed)
	assert.False(t, deleted)

	after := f.positions(t, siteID)
	assert.Equal(t, before, after)
	assert.Contains(t, after, a.ComponentID)
	assert.Zero(t, f.rec.mutations["delete"])
}

func TestRenumberRollsBackOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	c := f.add(t, siteID, component.Button)

	// open gaps directly so renumber has two rows to move
	require.NoError(t, f.db.Model(&models.Component{}).Where("component_id = ?", b.ComponentID).UpdateColumn("sort_order", 5).Error)
	require.NoError(t, f.db.Model(&models.Component{}).Where("component_id = ?", c.ComponentID).UpdateColumn("sort_order", 9).Error)
	before := f.positions(t, siteID)

	arm := failNthComponentUpdate(t, f.db, 2)
	arm()

	require.ErrorIs(t, f.comps.Renumber(ctx, siteID), errWriteFailed)
	assert.Equal(t, before, f.positions(t, siteID))
	assert.Equal(t, 0, before[a.ComponentID])
}
