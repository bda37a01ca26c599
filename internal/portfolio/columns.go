package portfolio

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed columns.yaml
var defaultColumnsYAML []byte

// Field names accepted in a column table.
const (
	FieldTitle         = "title"
	FieldClient        = "client"
	FieldType          = "type"
	FieldDate          = "date"
	FieldDescriptionPT = "description_pt"
	FieldDescriptionEN = "description_en"
	FieldCredits       = "credits"
	FieldModel         = "model"
	FieldVideo         = "video"

	mediaPrefix = "media"
)

// ColumnTable maps upstream column ids to item fields.
type ColumnTable struct {
	byColumn map[string]string
}

type columnFile struct {
	Columns map[string]string `yaml:"columns"`
}

// DefaultColumns returns the embedded column table.
func DefaultColumns() *ColumnTable {
	table, err := ParseColumns(defaultColumnsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded column table is invalid: %v", err))
	}
	return table
}

// ParseColumns reads a YAML column table. Every field must be known and mapped
// at most once.
func ParseColumns(data []byte) (*ColumnTable, error) {
	var file columnFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse column table: %w", err)
	}
	if len(file.Columns) == 0 {
		return nil, fmt.Errorf("column table is empty")
	}

	fields := make(map[string]string, len(file.Columns))
	for id, field := range file.Columns {
		field = strings.ToLower(strings.TrimSpace(field))
		if !validField(field) {
			return nil, fmt.Errorf("column %q maps to unknown field %q", id, field)
		}
		if other, dup := fields[field]; dup {
			return nil, fmt.Errorf("field %q is mapped by both %q and %q", field, other, id)
		}
		fields[field] = id
		file.Columns[id] = field
	}
	return &ColumnTable{byColumn: file.Columns}, nil
}

// Field returns the item field for a column id.
func (t *ColumnTable) Field(columnID string) (string, bool) {
	f, ok := t.byColumn[columnID]
	return f, ok
}

// ColumnFor returns the column id mapped to field.
func (t *ColumnTable) ColumnFor(field string) (string, bool) {
	for id, f := range t.byColumn {
		if f == field {
			return id, true
		}
	}
	return "", false
}

// Fields lists the mapped fields in sorted order.
func (t *ColumnTable) Fields() []string {
	fields := make([]string, 0, len(t.byColumn))
	for _, f := range t.byColumn {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// mediaIndex returns the zero-based slot for a "mediaN" field.
func mediaIndex(field string) (int, bool) {
	if !strings.HasPrefix(field, mediaPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(field, mediaPrefix))
	if err != nil || n < 1 || n > MediaSlots {
		return 0, false
	}
	return n - 1, true
}

func validField(field string) bool {
	switch field {
	case FieldTitle, FieldClient, FieldType, FieldDate, FieldDescriptionPT,
		FieldDescriptionEN, FieldCredits, FieldModel, FieldVideo:
		return true
	}
	_, ok := mediaIndex(field)
	return ok
}
