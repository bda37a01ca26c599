package portfolio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/studio/internal/coda"
	"github.com/jmylchreest/studio/internal/security"
)

// Mapper converts rows to items using a column table.
type Mapper struct {
	columns *ColumnTable
}

// NewMapper creates a Mapper. A nil table uses DefaultColumns.
func NewMapper(columns *ColumnTable) *Mapper {
	if columns == nil {
		columns = DefaultColumns()
	}
	return &Mapper{columns: columns}
}

// MapRow converts a single row. Unmapped columns are ignored and missing ones
// leave the field empty. URL fields that are not absolute http(s) URLs are
// cleared.
func (m *Mapper) MapRow(row coda.Row) Item {
	item := Item{ID: row.ID}
	for columnID, raw := range row.Values {
		field, ok := m.columns.Field(columnID)
		if !ok {
			continue
		}
		value := stringValue(raw)

		if slot, ok := mediaIndex(field); ok {
			item.Media[slot] = urlValue(value)
			continue
		}

		switch field {
		case FieldTitle:
			item.Title = value
		case FieldClient:
			item.Client = value
		case FieldType:
			item.Type = value
		case FieldDate:
			item.Date = value
		case FieldDescriptionPT:
			item.DescriptionPT = value
		case FieldDescriptionEN:
			item.DescriptionEN = value
		case FieldCredits:
			item.Credits = value
		case FieldModel:
			item.ModelURL = urlValue(value)
		case FieldVideo:
			item.VideoURL = urlValue(value)
		}
	}
	return item
}

// MapRows converts rows in order.
func (m *Mapper) MapRows(rows []coda.Row) []Item {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, m.MapRow(row))
	}
	return items
}

// stringValue renders a simple-format cell value as text.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if s := stringValue(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// Rich values (images, links) carry the address under "url".
		if u, ok := val["url"]; ok {
			return stringValue(u)
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func urlValue(s string) string {
	if security.IsAbsoluteHTTPURL(s) {
		return s
	}
	return ""
}
