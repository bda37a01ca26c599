package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	items := []Item{
		{Type: "Branding"}, {Type: ""}, {Type: "Editorial"}, {Type: " Branding "}, {Type: "Web"},
	}
	assert.Equal(t, []string{"Branding", "Editorial", "Web"}, Types(items))
	assert.Equal(t, []string{}, Types(nil))
}

func TestFilterByType(t *testing.T) {
	items := []Item{{ID: "1", Type: "Branding"}, {ID: "2", Type: "Web"}, {ID: "3", Type: "branding"}}

	got := FilterByType(items, "BRANDING")
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Len(t, FilterByType(items, ""), 3)
	assert.Empty(t, FilterByType(items, "Print"))
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{Client: "Acme", Type: "Branding"},
		{Client: " acme ", Type: "Web"},
		{Client: "Globex", Type: "Branding & Web"},
		{Client: "", Type: "Print"},
	}
	assert.Equal(t, Statistics{Projects: 4, Clients: 2, Branding: 2}, Summarize(items))
	assert.Equal(t, Statistics{}, Summarize(nil))
}

func TestItemHelpers(t *testing.T) {
	var item Item
	assert.Empty(t, item.Thumbnail())
	assert.Empty(t, item.MediaURLs())

	item.Media[2] = "https://x/3.jpg"
	item.Media[5] = "https://x/6.jpg"
	assert.Equal(t, "https://x/3.jpg", item.Thumbnail())
	assert.Equal(t, []string{"https://x/3.jpg", "https://x/6.jpg"}, item.MediaURLs())

	item.DescriptionPT = "olá"
	assert.Equal(t, "olá", item.Description("en"))
	item.DescriptionEN = "hello"
	assert.Equal(t, "hello", item.Description("EN"))
	assert.Equal(t, "olá", item.Description("pt"))
}
