package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexUint64(t *testing.T) {
	var ids []FlexUint64
	require.NoError(t, json.Unmarshal([]byte(`[1, "2", " 3 ", 18446744073709551615]`), &ids))
	assert.Equal(t, []uint64{1, 2, 3, 18446744073709551615}, Uint64s(ids))

	for _, bad := range []string{`["x"]`, `[-1]`, `[1.5]`, `[true]`, `[""]`} {
		assert.Error(t, json.Unmarshal([]byte(bad), &ids), bad)
	}

	data, err := json.Marshal(FlexUint64(7))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}

func TestParseFlexUint64(t *testing.T) {
	id, err := ParseFlexUint64(" 42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.Uint64())

	_, err = ParseFlexUint64("abc")
	assert.Error(t, err)
}

func TestFlexList(t *testing.T) {
	type item struct {
		Type string `json:"type"`
	}

	var list FlexList[item]
	require.NoError(t, json.Unmarshal([]byte(`{"type":"header"}`), &list))
	assert.Equal(t, []item{{Type: "header"}}, list.Slice())

	list = nil
	require.NoError(t, json.Unmarshal([]byte(` [{"type":"a"},{"type":"b"}]`), &list))
	assert.Len(t, list, 2)

	list = nil
	require.NoError(t, json.Unmarshal([]byte(`null`), &list))
	assert.Empty(t, list)

	assert.Error(t, json.Unmarshal([]byte(`"header"`), &list))
}

func TestCustomError(t *testing.T) {
	err := NewCustomError(403, "data.authorization.user", "cookie %q not found", "x")
	assert.Equal(t, 403, err.Code)
	assert.Equal(t, `cookie "x" not found`, err.Message)
	assert.Contains(t, err.Error(), "[type: data.authorization.user]")
}
