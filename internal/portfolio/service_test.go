package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/coda"
)

type fakeSource struct {
	rows    []coda.Row
	columns []coda.Column
	err     error
}

func (f *fakeSource) ListRows(context.Context) ([]coda.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeSource) GetRow(_ context.Context, id string) (*coda.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, &coda.Error{Op: "get row", Status: 404, Err: coda.ErrNotFound}
}

func (f *fakeSource) ListColumns(context.Context) ([]coda.Column, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns, nil
}

func newTestService(t *testing.T, src *fakeSource) *Service {
	return NewService(src, NewMapper(testColumns(t)), nil)
}

func TestCollectionEmpty(t *testing.T) {
	res := newTestService(t, &fakeSource{rows: []coda.Row{}}).Collection(context.Background())

	assert.True(t, res.Success)
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"items":[],"tipos":[]}`, string(data))
}

func TestCollection(t *testing.T) {
	src := &fakeSource{rows: []coda.Row{
		{ID: "1", Values: map[string]any{"c-title": "A", "c-type": "Web"}},
		{ID: "2", Values: map[string]any{"c-title": "B", "c-type": "Print"}},
		{ID: "3", Values: map[string]any{"c-title": "C", "c-type": "Web"}},
	}}

	res := newTestService(t, src).Collection(context.Background())
	require.True(t, res.Success)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, []string{"Web", "Print"}, res.Types)
}

func TestCollectionUpstreamError(t *testing.T) {
	src := &fakeSource{err: &coda.Error{Op: "list rows", Status: 500, Message: "boom"}}

	res := newTestService(t, src).Collection(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "coda list rows: HTTP 500: boom", res.Error)
}

func TestItem(t *testing.T) {
	src := &fakeSource{rows: []coda.Row{{ID: "i-1", Values: map[string]any{"c-title": "Poster"}}}}
	svc := newTestService(t, src)

	res := svc.Item(context.Background(), "i-1")
	require.True(t, res.Success)
	assert.Equal(t, "Poster", res.Item.Title)
	assert.False(t, res.NotFound)

	missing := svc.Item(context.Background(), "i-404")
	assert.False(t, missing.Success)
	assert.True(t, missing.NotFound)
	assert.Nil(t, missing.Item)
}

func TestItemUpstreamErrorIsNotNotFound(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}

	res := newTestService(t, src).Item(context.Background(), "i-1")
	assert.False(t, res.Success)
	assert.False(t, res.NotFound)
	assert.Equal(t, "connection refused", res.Error)
}

func TestItemFrom(t *testing.T) {
	svc := newTestService(t, &fakeSource{})
	items := []Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}

	res := svc.ItemFrom(items, "b")
	require.True(t, res.Success)
	assert.Equal(t, "B", res.Item.Title)

	// The result does not alias the caller's slice.
	res.Item.Title = "changed"
	assert.Equal(t, "B", items[1].Title)

	assert.True(t, svc.ItemFrom(items, "z").NotFound)
}

func TestStatistics(t *testing.T) {
	src := &fakeSource{rows: []coda.Row{
		{ID: "1", Values: map[string]any{"c-client": "Acme", "c-type": "Branding"}},
		{ID: "2", Values: map[string]any{"c-client": "ACME", "c-type": "Web"}},
	}}

	res := newTestService(t, src).Statistics(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, &Statistics{Projects: 2, Clients: 1, Branding: 1}, res.Statistics)

	failed := newTestService(t, &fakeSource{err: errors.New("down")}).Statistics(context.Background())
	assert.False(t, failed.Success)
	assert.Equal(t, "down", failed.Error)
}

func TestColumns(t *testing.T) {
	src := &fakeSource{columns: []coda.Column{{ID: "c-1", Name: "Título"}}}

	res := newTestService(t, src).Columns(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, []coda.Column{{ID: "c-1", Name: "Título"}}, res.Columns)
}
