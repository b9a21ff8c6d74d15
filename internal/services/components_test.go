package services_test

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/database"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingRecorder records how often each metric hook fires
type countingRecorder struct {
	mu        sync.Mutex
	mutations map[string]int
	renumbers int
	exports   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{mutations: map[string]int{}, exports: map[string]int{}}
}

func (r *countingRecorder) IncComponentMutation(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations[op]++
}

func (r *countingRecorder) ObserveRenumber(time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renumbers++
}

func (r *countingRecorder) IncExport(format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports[format]++
}

type fixture struct {
	db    *gorm.DB
	comps *services.ComponentService
	sites *services.SiteService
	rec   *countingRecorder
	owner string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	rec := newCountingRecorder()
	return &fixture{
		db:    db,
		comps: services.NewComponentService(db, services.NewSiteLocks(), rec, false),
		sites: services.NewSiteService(db, rec),
		rec:   rec,
		owner: uuid.NewString(),
	}
}

func (f *fixture) site(t *testing.T, owner string) uint64 {
	t.Helper()
	site, err := f.sites.CreateSite(context.Background(), owner, services.SiteInput{Name: "Test site"})
	require.NoError(t, err)
	return site.SiteID
}

func (f *fixture) add(t *testing.T, siteID uint64, typ component.Type) *models.Component {
	t.Helper()
	c, err := f.comps.Append(context.Background(), siteID, f.owner, services.ComponentInput{
		Type:  typ,
		Props: map[string]any{"text": string(typ)},
	})
	require.NoError(t, err)
	return c
}

// positions returns component id -> stored position for a site
func (f *fixture) positions(t *testing.T, siteID uint64) map[uint64]int {
	t.Helper()
	var rows []models.Component
	require.NoError(t, f.db.Where("site_id = ?", siteID).Find(&rows).Error)
	out := make(map[uint64]int, len(rows))
	for _, r := range rows {
		out[r.ComponentID] = r.SortOrder
	}
	return out
}

func assertDense(t *testing.T, positions map[uint64]int) {
	t.Helper()
	got := make([]int, 0, len(positions))
	for _, p := range positions {
		got = append(got, p)
	}
	sort.Ints(got)
	for i, p := range got {
		assert.Equal(t, i, p, "positions are not dense: %v", got)
	}
}

func TestAppendThenReorder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	header := f.add(t, siteID, component.Header)
	paragraph := f.add(t, siteID, component.Paragraph)
	button := f.add(t, siteID, component.Button)

	assert.Equal(t, 0, header.SortOrder)
	assert.Equal(t, 1, paragraph.SortOrder)
	assert.Equal(t, 2, button.SortOrder)

	updated, err := f.comps.Reorder(ctx, siteID, f.owner,
		[]uint64{button.ComponentID, header.ComponentID, paragraph.ComponentID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)

	assert.Equal(t, map[uint64]int{
		button.ComponentID:    0,
		header.ComponentID:    1,
		paragraph.ComponentID: 2,
	}, f.positions(t, siteID))

	assert.Equal(t, 3, f.rec.mutations["append"])
	assert.Equal(t, 1, f.rec.mutations["reorder"])
}

func TestDeleteClosesGap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	first := f.add(t, siteID, component.Header)
	middle := f.add(t, siteID, component.Paragraph)
	last := f.add(t, siteID, component.Divider)

	deleted, err := f.comps.Delete(ctx, middle.ComponentID, siteID, f.owner)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, map[uint64]int{
		first.ComponentID: 0,
		last.ComponentID:  1,
	}, f.positions(t, siteID))
	assert.Equal(t, 1, f.rec.renumbers)

	// deleting again finds nothing and changes nothing
	deleted, err = f.comps.Delete(ctx, middle.ComponentID, siteID, f.owner)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, f.rec.mutations["delete"])
}

func TestDensityAfterAppendsAndDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)
	rng := rand.New(rand.NewSource(7))

	var live []uint64
	for i := 0; i < 40; i++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			idx := rng.Intn(len(live))
			deleted, err := f.comps.Delete(ctx, live[idx], siteID, f.owner)
			require.NoError(t, err)
			require.True(t, deleted)
			live = append(live[:idx], live[idx+1:]...)
		} else {
			live = append(live, f.add(t, siteID, component.Types[rng.Intn(len(component.Types))]).ComponentID)
		}

		positions := f.positions(t, siteID)
		require.Len(t, positions, len(live))
		assertDense(t, positions)
	}
}

func TestRenumberIsIdempotentAndBreaksTiesByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	c := f.add(t, siteID, component.Button)

	// Collide every position, and put c ahead of the others.
	require.NoError(t, f.db.Model(&models.Component{}).
		Where("site_id = ?", siteID).UpdateColumn("sort_order", 5).Error)
	require.NoError(t, f.db.Model(&models.Component{}).
		Where("component_id = ?", c.ComponentID).UpdateColumn("sort_order", 1).Error)

	require.NoError(t, f.comps.Renumber(ctx, siteID))
	first := f.positions(t, siteID)
	assert.Equal(t, map[uint64]int{
		c.ComponentID: 0,
		a.ComponentID: 1,
		b.ComponentID: 2,
	}, first)

	require.NoError(t, f.comps.Renumber(ctx, siteID))
	assert.Equal(t, first, f.positions(t, siteID))
}

func TestOwnershipGateLeavesRowsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)
	h := f.add(t, siteID, component.Header)
	p := f.add(t, siteID, component.Paragraph)
	before := f.positions(t, siteID)

	stranger := uuid.NewString()

	_, err := f.comps.Append(ctx, siteID, stranger, services.ComponentInput{Type: component.Button})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.comps.UpdateProps(ctx, h.ComponentID, siteID, stranger, map[string]any{"text": "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.comps.Delete(ctx, h.ComponentID, siteID, stranger)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.comps.Reorder(ctx, siteID, stranger, []uint64{p.ComponentID, h.ComponentID})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.comps.List(ctx, siteID, stranger)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// a site that does not exist looks the same
	_, err = f.comps.Append(ctx, siteID+100, f.owner, services.ComponentInput{Type: component.Button})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Equal(t, before, f.positions(t, siteID))

	var stored models.Component
	require.NoError(t, f.db.First(&stored, h.ComponentID).Error)
	assert.Equal(t, map[string]any{"text": "header"}, stored.Props.Map())
}

func TestUpdatePropsReplacesWholesale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	c, err := f.comps.Append(ctx, siteID, f.owner, services.ComponentInput{
		Type:  component.Header,
		Props: map[string]any{"text": "Hello", "style": map[string]any{"color": "red"}},
	})
	require.NoError(t, err)

	updated, err := f.comps.UpdateProps(ctx, c.ComponentID, siteID, f.owner, map[string]any{"text": "Bye"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "Bye"}, updated.Props.Map())
	assert.Equal(t, c.SortOrder, updated.SortOrder)

	var stored models.Component
	require.NoError(t, f.db.First(&stored, c.ComponentID).Error)
	assert.Equal(t, map[string]any{"text": "Bye"}, stored.Props.Map())

	// same props again still succeeds
	_, err = f.comps.UpdateProps(ctx, c.ComponentID, siteID, f.owner, map[string]any{"text": "Bye"})
	require.NoError(t, err)

	_, err = f.comps.UpdateProps(ctx, c.ComponentID, siteID, f.owner, nil)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUpdatePropsRequiresComponentUnderSite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteA := f.site(t, f.owner)
	siteB := f.site(t, f.owner)
	c := f.add(t, siteA, component.Header)

	_, err := f.comps.UpdateProps(ctx, c.ComponentID, siteB, f.owner, map[string]any{"text": "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	deleted, err := f.comps.Delete(ctx, c.ComponentID, siteB, f.owner)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, f.positions(t, siteA), 1)
}

func TestReorderPartialKeepsUnlistedPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)
	other := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	c := f.add(t, siteID, component.Button)
	foreign := f.add(t, other, component.Divider)

	updated, err := f.comps.Reorder(ctx, siteID, f.owner, []uint64{c.ComponentID, foreign.ComponentID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	assert.Equal(t, map[uint64]int{
		a.ComponentID: 0,
		b.ComponentID: 1,
		c.ComponentID: 0,
	}, f.positions(t, siteID))
	assert.Equal(t, map[uint64]int{foreign.ComponentID: 0}, f.positions(t, other))

	// Renumber restores density with the id tie-break
	require.NoError(t, f.comps.Renumber(ctx, siteID))
	assert.Equal(t, map[uint64]int{
		a.ComponentID: 0,
		c.ComponentID: 1,
		b.ComponentID: 2,
	}, f.positions(t, siteID))
}

func TestReorderStrictRequiresPermutation(t *testing.T) {
	f := newFixture(t)
	f.comps.Strict = true
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	before := f.positions(t, siteID)

	for _, ids := range [][]uint64{
		{b.ComponentID},
		{b.ComponentID, b.ComponentID},
		{b.ComponentID, a.ComponentID, a.ComponentID + 100},
		{b.ComponentID, a.ComponentID + 100},
	} {
		_, err := f.comps.Reorder(ctx, siteID, f.owner, ids)
		assert.ErrorIs(t, err, services.ErrValidation, "ids %v", ids)
	}
	assert.Equal(t, before, f.positions(t, siteID))

	_, err := f.comps.Reorder(ctx, siteID, f.owner, []uint64{b.ComponentID, a.ComponentID})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]int{b.ComponentID: 0, a.ComponentID: 1}, f.positions(t, siteID))
}

func TestAppendManyUsesConsecutivePositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)
	f.add(t, siteID, component.Header)

	comps, err := f.comps.AppendMany(ctx, siteID, f.owner, []services.ComponentInput{
		{Type: component.Paragraph},
		{Type: component.Image, Props: map[string]any{"src": "/a.png"}},
	})
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, 1, comps[0].SortOrder)
	assert.Equal(t, 2, comps[1].SortOrder)
	assert.Equal(t, map[string]any{}, comps[0].Props.Map())

	_, err = f.comps.AppendMany(ctx, siteID, f.owner, []services.ComponentInput{
		{Type: component.Paragraph},
		{Type: "carousel"},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Len(t, f.positions(t, siteID), 3)

	_, err = f.comps.AppendMany(ctx, siteID, f.owner, nil)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestListReturnsPositionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	a := f.add(t, siteID, component.Header)
	b := f.add(t, siteID, component.Paragraph)
	_, err := f.comps.Reorder(ctx, siteID, f.owner, []uint64{b.ComponentID, a.ComponentID})
	require.NoError(t, err)

	comps, err := f.comps.List(ctx, siteID, f.owner)
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, b.ComponentID, comps[0].ComponentID)
	assert.Equal(t, a.ComponentID, comps[1].ComponentID)
}

func TestConcurrentAppendsStayDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.comps.Append(ctx, siteID, f.owner, services.ComponentInput{Type: component.Divider})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	positions := f.positions(t, siteID)
	assert.Len(t, positions, n)
	assertDense(t, positions)
}

func TestConcurrentDeletesAndReordersStayDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.site(t, f.owner)

	var ids []uint64
	for i := 0; i < 10; i++ {
		ids = append(ids, f.add(t, siteID, component.Paragraph).ComponentID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			_, err := f.comps.Delete(ctx, id, siteID, f.owner)
			assert.NoError(t, err)
		}(ids[i*2])
		go func() {
			defer wg.Done()
			reversed := make([]uint64, len(ids))
			for j, id := range ids {
				reversed[len(ids)-1-j] = id
			}
			_, err := f.comps.Reorder(ctx, siteID, f.owner, reversed)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NoError(t, f.comps.Renumber(ctx, siteID))
	positions := f.positions(t, siteID)
	assert.Len(t, positions, 5)
	assertDense(t, positions)
}
