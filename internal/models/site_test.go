package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullSiteAlwaysCarriesComponents(t *testing.T) {
	site := &Site{SiteID: 3, Name: "Empty", Settings: RawJSON(nil)}

	data, err := json.Marshal(NewFullSite(site))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	comps, ok := out["components"].([]any)
	require.True(t, ok, "components missing from %s", data)
	assert.Empty(t, comps)
	assert.Equal(t, "Empty", out["name"])
	assert.EqualValues(t, 3, out["site_id"])
}

func TestFullSiteKeepsComponentOrder(t *testing.T) {
	site := &Site{
		SiteID:   4,
		Name:     "Two",
		Settings: RawJSON(nil),
		Components: []Component{
			{ComponentID: 9, Type: "button", Props: RawJSON(nil), SortOrder: 0},
			{ComponentID: 2, Type: "header", Props: RawJSON(nil), SortOrder: 1},
		},
	}

	data, err := json.Marshal(NewFullSite(site))
	require.NoError(t, err)

	var out struct {
		Components []struct {
			ID        uint64 `json:"id"`
			SortOrder int    `json:"sortOrder"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Components, 2)
	assert.EqualValues(t, 9, out.Components[0].ID)
	assert.EqualValues(t, 2, out.Components[1].ID)
}

func TestSiteOmitsUnloadedComponents(t *testing.T) {
	data, err := json.Marshal(Site{SiteID: 1, Name: "List item", Settings: RawJSON(nil)})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "components")
}
