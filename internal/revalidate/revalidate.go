// Package revalidate tracks the portfolio page revision and notifies a
// downstream cache when it changes.
package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/studio/internal/util/http"
)

// Paths are the page paths invalidated by an update.
var Paths = []string{"/portfolio", "/portfolio/*"}

// Revalidator owns the revision counter embedded in portfolio page ETags.
type Revalidator struct {
	revision atomic.Uint64
	purgeURL string
	timeout  time.Duration
	logger   hclog.Logger
}

// New creates a Revalidator. An empty purgeURL only bumps the revision.
func New(purgeURL string, timeout time.Duration, logger hclog.Logger) *Revalidator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	r := &Revalidator{purgeURL: purgeURL, timeout: timeout, logger: logger}
	r.revision.Store(uint64(time.Now().Unix()))
	return r
}

// Revision returns the current revision.
func (r *Revalidator) Revision() uint64 {
	return r.revision.Load()
}

// ETag returns a weak entity tag for key at the current revision.
func (r *Revalidator) ETag(key string) string {
	return `W/"` + key + "-" + strconv.FormatUint(r.Revision(), 36) + `"`
}

type purgeRequest struct {
	Paths    []string `json:"paths"`
	Revision uint64   `json:"revision"`
}

// Invalidate bumps the revision and, when configured, posts the invalidated
// paths to the purge hook. The revision is bumped even if the hook fails.
func (r *Revalidator) Invalidate(ctx context.Context) (uint64, error) {
	rev := r.revision.Add(1)
	r.logger.Info("portfolio pages invalidated", "revision", rev)

	if r.purgeURL == "" {
		return rev, nil
	}

	body, err := json.Marshal(purgeRequest{Paths: Paths, Revision: rev})
	if err != nil {
		return rev, fmt.Errorf("failed to encode purge request: %w", err)
	}
	if _, err := httputil.Post(ctx, r.purgeURL, body, httputil.FetchOptions{Timeout: r.timeout}); err != nil {
		r.logger.Error("purge hook failed", "url", r.purgeURL, "error", err)
		return rev, fmt.Errorf("purge hook failed: %w", err)
	}
	return rev, nil
}
