// Package portfolio maps upstream table rows into typed portfolio items.
package portfolio

import "strings"

// MediaSlots is the number of ordinal media fields on an item.
const MediaSlots = 24

// Item is one portfolio project.
type Item struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Client        string             `json:"client"`
	Type          string             `json:"type"`
	Date          string             `json:"date"`
	DescriptionPT string             `json:"descriptionPt"`
	DescriptionEN string             `json:"descriptionEn"`
	Credits       string             `json:"credits"`
	Media         [MediaSlots]string `json:"media"`
	ModelURL      string             `json:"modelUrl"`
	VideoURL      string             `json:"videoUrl"`
}

// Thumbnail returns the first non-empty media URL.
func (i Item) Thumbnail() string {
	for _, m := range i.Media {
		if m != "" {
			return m
		}
	}
	return ""
}

// MediaURLs returns the non-empty media URLs in ordinal order.
func (i Item) MediaURLs() []string {
	urls := make([]string, 0, MediaSlots)
	for _, m := range i.Media {
		if m != "" {
			urls = append(urls, m)
		}
	}
	return urls
}

// Description returns the description for lang ("en" or "pt"), falling back to
// the other language when empty.
func (i Item) Description(lang string) string {
	if strings.EqualFold(lang, "en") {
		if i.DescriptionEN != "" {
			return i.DescriptionEN
		}
		return i.DescriptionPT
	}
	if i.DescriptionPT != "" {
		return i.DescriptionPT
	}
	return i.DescriptionEN
}

// Types returns the distinct non-empty item types in first-seen order.
func Types(items []Item) []string {
	types := make([]string, 0)
	seen := make(map[string]struct{})
	for _, item := range items {
		t := strings.TrimSpace(item.Type)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// FilterByType returns the items whose type equals t, ignoring case. An empty t
// returns items unchanged.
func FilterByType(items []Item, t string) []Item {
	t = strings.TrimSpace(t)
	if t == "" {
		return items
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Type), t) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Statistics aggregates a collection.
type Statistics struct {
	Projects int `json:"projects"`
	Clients  int `json:"clients"`
	Branding int `json:"branding"`
}

// Summarize counts projects, distinct clients (trimmed, case-insensitive) and
// projects whose type mentions branding.
func Summarize(items []Item) Statistics {
	stats := Statistics{Projects: len(items)}
	clients := make(map[string]struct{})
	for _, item := range items {
		if c := strings.ToLower(strings.TrimSpace(item.Client)); c != "" {
			clients[c] = struct{}{}
		}
		if strings.Contains(strings.ToLower(item.Type), "branding") {
			stats.Branding++
		}
	}
	stats.Clients = len(clients)
	return stats
}
