package kasi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeOutcome(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Outcome
	}{
		{
			name: "no response member",
			json: `{}`,
			want: NoResponse{},
		},
		{
			name: "rejected",
			json: `{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE_KEY_IS_NOT_REGISTERED_ERROR"}}}`,
			want: Rejected{Code: "30", Message: "SERVICE_KEY_IS_NOT_REGISTERED_ERROR"},
		},
		{
			name: "empty items string",
			json: `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."},"body":{"items":"","totalCount":0}}}`,
			want: Empty{},
		},
		{
			name: "count without items",
			json: `{"response":{"header":{"resultCode":"00"},"body":{"totalCount":3}}}`,
			want: Empty{},
		},
		{
			name: "items with zero count",
			json: `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":{"dateName":"어린이날","locdate":20250505}},"totalCount":0}}}`,
			want: Found{TotalCount: 0, Items: []Item{{DateName: "어린이날", Locdate: 20250505}}},
		},
		{
			name: "single item object",
			json: `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":{"dateName":"삼일절","locdate":20250301,"isHoliday":"Y"}},"totalCount":1}}}`,
			want: Found{TotalCount: 1, Items: []Item{{DateName: "삼일절", Locdate: 20250301, IsHoliday: "Y"}}},
		},
		{
			name: "item array with quoted locdate",
			json: `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":[{"dateName":"입춘","locdate":"20250203"},{"dateName":"우수","locdate":20250218}]},"totalCount":2}}}`,
			want: Found{TotalCount: 2, Items: []Item{{DateName: "입춘", Locdate: 20250203}, {DateName: "우수", Locdate: 20250218}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			require.NoError(t, json.Unmarshal([]byte(tt.json), &env))
			assert.Equal(t, tt.want, env.Outcome())
		})
	}
}

func TestNilEnvelopeOutcome(t *testing.T) {
	var env *Envelope
	assert.Equal(t, NoResponse{}, env.Outcome())
}

func TestItemList_BadItem(t *testing.T) {
	var l ItemList
	require.Error(t, json.Unmarshal([]byte(`{"item":{"locdate":"soon"}}`), &l))
}

func TestCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, len(AllCategories))
	for _, c := range AllCategories {
		assert.True(t, c.Valid(), c)
		assert.NotEmpty(t, cats[c].Endpoint)
		assert.NotEmpty(t, cats[c].Label)
	}
	assert.Equal(t, "getRestDeInfo", cats[Holidays].Endpoint)
	assert.Equal(t, "국경일", cats[NationalDay].Label)
	assert.False(t, Category("weekend").Valid())
}
