package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/coda"
)

func testColumns(t *testing.T) *ColumnTable {
	t.Helper()
	table, err := ParseColumns([]byte(`
columns:
  c-title: title
  c-client: client
  c-type: type
  c-date: date
  c-pt: description_pt
  c-en: description_en
  c-credits: credits
  c-model: model
  c-video: video
  c-m1: media1
  c-m2: media2
  c-m24: media24
`))
	require.NoError(t, err)
	return table
}

func TestMapRow(t *testing.T) {
	m := NewMapper(testColumns(t))

	item := m.MapRow(coda.Row{
		ID: "i-1",
		Values: map[string]any{
			"c-title":   "  Poster Series ",
			"c-client":  "Acme",
			"c-type":    "Branding",
			"c-date":    "2024-03-01",
			"c-pt":      "Uma série",
			"c-en":      "A series",
			"c-credits": []any{"Ana", "Rui", ""},
			"c-model":   "https://cdn.example.com/model.glb",
			"c-video":   "javascript:alert(1)",
			"c-m1":      "https://cdn.example.com/1.jpg",
			"c-m2":      "not a url",
			"c-m24":     map[string]any{"url": "https://cdn.example.com/24.png"},
			"c-ignored": "x",
		},
	})

	assert.Equal(t, "i-1", item.ID)
	assert.Equal(t, "Poster Series", item.Title)
	assert.Equal(t, "Acme", item.Client)
	assert.Equal(t, "Branding", item.Type)
	assert.Equal(t, "2024-03-01", item.Date)
	assert.Equal(t, "Uma série", item.DescriptionPT)
	assert.Equal(t, "A series", item.DescriptionEN)
	assert.Equal(t, "Ana, Rui", item.Credits)
	assert.Equal(t, "https://cdn.example.com/model.glb", item.ModelURL)
	assert.Empty(t, item.VideoURL)
	assert.Equal(t, "https://cdn.example.com/1.jpg", item.Media[0])
	assert.Empty(t, item.Media[1])
	assert.Equal(t, "https://cdn.example.com/24.png", item.Media[23])
}

func TestMapRowMissingColumns(t *testing.T) {
	item := NewMapper(testColumns(t)).MapRow(coda.Row{ID: "i-2"})
	assert.Equal(t, Item{ID: "i-2"}, item)
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{" a ", "a"},
		{float64(2024), "2024"},
		{1.5, "1.5"},
		{true, "true"},
		{[]any{"x", 2.0}, "x, 2"},
		{map[string]any{"name": "x"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stringValue(tt.in))
	}
}

func TestMapRowsKeepsOrder(t *testing.T) {
	items := NewMapper(testColumns(t)).MapRows([]coda.Row{{ID: "b"}, {ID: "a"}})
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)

	assert.NotNil(t, NewMapper(nil).MapRows(nil))
}
