// Package history keeps the durable, user-visible log of past
// analyses. The log is best-effort: a corrupt record degrades to an
// empty store and never blocks analysis itself.
package history

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/truthguard/truthguard/internal/classify"
	"github.com/truthguard/truthguard/internal/detector"
)

// ContentKind records what kind of content an entry summarizes.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// Entry is one completed analysis. Entries are immutable after append;
// they are only ever deleted.
type Entry struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	DetectorID  detector.ID     `json:"detector_id"`
	Result      classify.Result `json:"result"`
	Preview     string          `json:"preview"`
	FullContent string          `json:"full_content,omitempty"`
	ContentKind ContentKind     `json:"content_kind"`
}

// NewEntryID derives a creation-time id: millisecond timestamp plus a
// short random suffix so same-millisecond entries stay sort-stable.
func NewEntryID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "-" + uuid.NewString()[:8]
}
