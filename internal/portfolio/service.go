package portfolio

import (
	"context"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/studio/internal/coda"
)

// Source is the upstream table the service reads.
type Source interface {
	ListRows(ctx context.Context) ([]coda.Row, error)
	GetRow(ctx context.Context, id string) (*coda.Row, error)
	ListColumns(ctx context.Context) ([]coda.Column, error)
}

// Result is the outcome of fetching the collection.
type Result struct {
	Success bool     `json:"success"`
	Items   []Item   `json:"items"`
	Types   []string `json:"tipos"`
	Error   string   `json:"error,omitempty"`
}

// ItemResult is the outcome of fetching one item. NotFound is set only when
// the upstream reports the item as missing.
type ItemResult struct {
	Success  bool   `json:"success"`
	Item     *Item  `json:"item,omitempty"`
	NotFound bool   `json:"notFound,omitempty"`
	Error    string `json:"error,omitempty"`
}

// StatisticsResult wraps Statistics with the usual success/error envelope.
type StatisticsResult struct {
	Success    bool        `json:"success"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ColumnsResult lists raw upstream columns for diagnostics.
type ColumnsResult struct {
	Success bool          `json:"success"`
	Columns []coda.Column `json:"columns"`
	Error   string        `json:"error,omitempty"`
}

// Service fetches and maps portfolio data. It holds no cache: each call reads
// the upstream once and any failure fails the whole call.
type Service struct {
	source Source
	mapper *Mapper
	logger hclog.Logger
}

// NewService creates a Service. A nil mapper uses the default column table.
func NewService(source Source, mapper *Mapper, logger hclog.Logger) *Service {
	if mapper == nil {
		mapper = NewMapper(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{source: source, mapper: mapper, logger: logger}
}

// Collection fetches every item. Zero rows is a success with empty lists.
func (s *Service) Collection(ctx context.Context) Result {
	rows, err := s.source.ListRows(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch portfolio", "error", err)
		return Result{Success: false, Items: []Item{}, Types: []string{}, Error: err.Error()}
	}

	items := s.mapper.MapRows(rows)
	return Result{Success: true, Items: items, Types: Types(items)}
}

// Item fetches one item by row id.
func (s *Service) Item(ctx context.Context, id string) ItemResult {
	row, err := s.source.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, coda.ErrNotFound) {
			s.logger.Debug("portfolio item not found", "id", id)
			return ItemResult{NotFound: true, Error: "item not found"}
		}
		s.logger.Warn("failed to fetch portfolio item", "id", id, "error", err)
		return ItemResult{Error: err.Error()}
	}

	item := s.mapper.MapRow(*row)
	return ItemResult{Success: true, Item: &item}
}

// ItemFrom looks id up in an already fetched collection.
func (s *Service) ItemFrom(items []Item, id string) ItemResult {
	id = strings.TrimSpace(id)
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return ItemResult{Success: true, Item: &item}
		}
	}
	return ItemResult{NotFound: true, Error: "item not found"}
}

// Statistics fetches the collection and summarizes it.
func (s *Service) Statistics(ctx context.Context) StatisticsResult {
	res := s.Collection(ctx)
	if !res.Success {
		return StatisticsResult{Error: res.Error}
	}
	stats := Summarize(res.Items)
	return StatisticsResult{Success: true, Statistics: &stats}
}

// Columns returns the upstream column id/name pairs.
func (s *Service) Columns(ctx context.Context) ColumnsResult {
	cols, err := s.source.ListColumns(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch columns", "error", err)
		return ColumnsResult{Columns: []coda.Column{}, Error: err.Error()}
	}
	return ColumnsResult{Success: true, Columns: cols}
}
