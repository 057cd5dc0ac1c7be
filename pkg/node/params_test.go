package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenValues(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		field   string
		want    []string
		wantErr bool
	}{
		{"absent", nil, "label", []string{}, false},
		{"empty list", []any{}, "label", []string{}, false},
		{"collection entries", []any{map[string]any{"label": "bug"}, map[string]any{"label": "ui"}}, "label", []string{"bug", "ui"}, false},
		{"yaml entries", []any{map[any]any{"assignee": "octocat"}}, "assignee", []string{"octocat"}, false},
		{"plain values", []any{"bug", 7}, "label", []string{"bug", "7"}, false},
		{"wrong field", []any{map[string]any{"name": "bug"}}, "label", nil, true},
		{"not a list", "bug", "label", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flattenValues(tt.value, tt.field)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		value   any
		want    string
		wantErr bool
	}{
		{"abc", "abc", false},
		{42, "42", false},
		{float64(12), "12", false},
		{1.5, "1.5", false},
		{json.Number("99"), "99", false},
		{true, "true", false},
		{[]any{1}, "", true},
	}

	for _, tt := range tests {
		got, err := toString(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParamsInteger(t *testing.T) {
	p := params{source: with(map[string]any{"a": "25", "b": 2.5, "c": float64(30)})}

	n, err := p.integer("a", 0)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = p.integer("b", 0)
	assert.Error(t, err)

	n, err = p.integer("c", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = p.integer("missing", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestParamsCollection(t *testing.T) {
	p := params{source: with(map[string]any{"fields": map[any]any{"name": "x"}, "bad": "x"})}

	m, err := p.collection("fields")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x"}, m)

	m, err = p.collection("missing")
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = p.collection("bad")
	assert.True(t, IsKind(err, ErrorKindConfiguration))
}
