// Package media normalizes heterogeneous user input (uploaded files,
// remote URLs) into validated, transport-ready media items with
// fail-soft per-item semantics.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/truthguard/truthguard/pkg/logging"
)

// MaxBytes is the per-item size ceiling (10 MiB).
const MaxBytes = 10 * 1024 * 1024

const (
	reasonBadType   = "Invalid file type. Please upload an image or video."
	reasonURLFailed = "Failed to load URL. CORS protection or invalid file."
)

// ErrInvalidURL is returned when a remote ingest target is not a
// well-formed http(s) URL.
var ErrInvalidURL = fmt.Errorf("media: not a valid URL")

// IngestObserver receives a signal when an item settles.
type IngestObserver interface {
	ObserveIngest(origin, status string)
}

// Set owns the media items of one analysis session. Items keep their
// insertion order regardless of the order their async pipelines
// complete: completions update their own slot by id, and an id that
// has been removed in the meantime is dropped silently.
type Set struct {
	mu    sync.Mutex
	items map[string]*Item
	order []string

	wg       sync.WaitGroup
	client   *http.Client
	logger   *logging.Logger
	observer IngestObserver
}

// NewSet creates an empty media set. fetchClient is used for remote
// URL ingestion; nil gets a client with a 30s timeout.
func NewSet(fetchClient *http.Client, logger *logging.Logger) *Set {
	if fetchClient == nil {
		fetchClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Set{
		items:  make(map[string]*Item),
		client: fetchClient,
		logger: logger,
	}
}

// SetObserver attaches an ingest observer. Must be called before ingestion.
func (s *Set) SetObserver(obs IngestObserver) {
	s.observer = obs
}

// IngestFiles inserts one pending item per file in submission order and
// validates/encodes each on its own goroutine. One bad file never
// blocks the others. Returns the new item ids in insertion order.
func (s *Set) IngestFiles(files []File) []string {
	ids := make([]string, 0, len(files))

	s.mu.Lock()
	for _, f := range files {
		item := &Item{
			ID:        uuid.NewString(),
			Kind:      kindOf(f.ContentType),
			Origin:    OriginUpload,
			SizeBytes: int64(len(f.Data)),
			MIMEType:  f.ContentType,
			Status:    StatusPending,
		}
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
		ids = append(ids, item.ID)
	}
	s.mu.Unlock()

	for i, f := range files {
		id := ids[i]
		file := f
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.processFile(id, file)
		}()
	}
	return ids
}

func (s *Set) processFile(id string, f File) {
	if !strings.HasPrefix(f.ContentType, "image/") && !strings.HasPrefix(f.ContentType, "video/") {
		s.markFailed(id, OriginUpload, reasonBadType)
		return
	}
	if int64(len(f.Data)) > MaxBytes {
		s.markFailed(id, OriginUpload, fmt.Sprintf("File %s is too large. Maximum size is 10MB.", f.Name))
		return
	}

	encoded := base64.StdEncoding.EncodeToString(f.Data)
	preview := ""
	if strings.HasPrefix(f.ContentType, "image/") {
		preview = "data:" + f.ContentType + ";base64," + encoded
	}
	s.markReady(id, kindOf(f.ContentType), f.ContentType, int64(len(f.Data)), encoded, preview)
}

// IngestRemoteURL validates the URL shape, inserts one pending item and
// fetches the resource asynchronously. Any fetch, type, or size error
// settles the item as failed with a fixed diagnostic. The fetch is
// detached from ctx's cancellation so it outlives the submitting
// request, but keeps its values for tracing.
func (s *Set) IngestRemoteURL(ctx context.Context, raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}

	item := &Item{
		ID:     uuid.NewString(),
		Kind:   KindImage, // provisional until the content-type is known
		Origin: OriginRemoteURL,
		Status: StatusPending,
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	s.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetchRemote(fetchCtx, item.ID, u.String())
	}()
	return item.ID, nil
}

func (s *Set) fetchRemote(ctx context.Context, id, target string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		s.markFailed(id, OriginRemoteURL, reasonURLFailed)
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("remote media fetch failed", "url", target, "error", err)
		s.markFailed(id, OriginRemoteURL, reasonURLFailed)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.markFailed(id, OriginRemoteURL, reasonURLFailed)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		s.markFailed(id, OriginRemoteURL, reasonURLFailed)
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil || int64(len(data)) > MaxBytes {
		s.markFailed(id, OriginRemoteURL, reasonURLFailed)
		return
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	preview := ""
	if strings.HasPrefix(contentType, "image/") {
		preview = "data:" + contentType + ";base64," + encoded
	}
	s.markReady(id, kindOf(contentType), contentType, int64(len(data)), encoded, preview)
}

func (s *Set) markReady(id string, kind Kind, mimeType string, size int64, encoded, preview string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.Status != StatusPending {
		return
	}
	item.Kind = kind
	item.MIMEType = mimeType
	item.SizeBytes = size
	item.EncodedPayload = encoded
	item.PreviewHandle = preview
	item.Status = StatusReady
	s.observe(item.Origin, StatusReady)
}

func (s *Set) markFailed(id string, origin Origin, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.Status != StatusPending {
		return
	}
	item.Status = StatusFailed
	item.FailReason = reason
	s.observe(origin, StatusFailed)
}

func (s *Set) observe(origin Origin, status Status) {
	if s.observer != nil {
		s.observer.ObserveIngest(string(origin), string(status))
	}
}

// Remove deletes an item regardless of its status.
func (s *Set) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes all items.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*Item)
	s.order = nil
}

// Items returns a snapshot of all items in insertion order.
func (s *Set) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Ready returns the ready items in insertion order.
func (s *Set) Ready() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Item
	for _, id := range s.order {
		if item := s.items[id]; item.Status == StatusReady {
			out = append(out, *item)
		}
	}
	return out
}

// HasPending reports whether any item is still validating.
func (s *Set) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Status == StatusPending {
			return true
		}
	}
	return false
}

// Wait blocks until all in-flight ingest pipelines settle.
func (s *Set) Wait() {
	s.wg.Wait()
}

func kindOf(contentType string) Kind {
	if strings.HasPrefix(contentType, "video/") {
		return KindVideo
	}
	return KindImage
}
