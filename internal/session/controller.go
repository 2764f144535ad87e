package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/truthguard/truthguard/internal/classify"
	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/internal/media"
	"github.com/truthguard/truthguard/internal/observability/metrics"
	"github.com/truthguard/truthguard/internal/sink"
	"github.com/truthguard/truthguard/pkg/logging"
)

// failMessage is the only diagnostic shown to users for a failed
// classification, regardless of the underlying cause.
const failMessage = "Failed to analyze content. Please try again later. Ensure uploaded files are valid."

const (
	previewLimit = 60
	snippetLimit = 100
)

var (
	ErrUnknownDetector    = errors.New("session: unknown detector")
	ErrToolOnlyDetector   = errors.New("session: detector does not support analysis")
	ErrEmptySubmission    = errors.New("session: nothing to analyze")
	ErrMediaPending       = errors.New("session: media still processing")
	ErrSubmissionInFlight = errors.New("session: submission already in progress")
)

// Controller drives session transitions and the side effects of a
// completed analysis.
type Controller struct {
	classifier classify.Classifier
	registry   *detector.Registry
	history    *history.Store
	sink       sink.Sink
	metrics    *metrics.AnalysisMetrics
	logger     *logging.Logger
	now        func() time.Time
}

func NewController(classifier classify.Classifier, registry *detector.Registry, hist *history.Store, records sink.Sink, m *metrics.AnalysisMetrics, logger *logging.Logger) *Controller {
	if classifier == nil {
		panic("session: classifier required")
	}
	if registry == nil {
		registry = detector.NewRegistry()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		classifier: classifier,
		registry:   registry,
		history:    hist,
		sink:       records,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// SwitchDetector activates a detector and wipes all transient state in
// one transition.
func (c *Controller) SwitchDetector(s *Session, id detector.ID) error {
	if _, ok := c.registry.Lookup(id); !ok {
		return ErrUnknownDetector
	}
	s.dispatch(switchDetector{id: id})
	return nil
}

// SetText replaces the session's input text.
func (c *Controller) SetText(s *Session, text string) {
	s.dispatch(setText{text: text})
}

// Reset clears input, media, result, and error. Idempotent.
func (c *Controller) Reset(s *Session) {
	s.dispatch(reset{})
}

// RestoreFromHistory loads a past analysis back into the session.
// Media is not restorable and is cleared.
func (c *Controller) RestoreFromHistory(s *Session, entry history.Entry) {
	s.dispatch(restore{entry: entry})
}

// Submit runs one classification. Guard violations return a sentinel
// error without touching session state; a classification failure
// settles the session in the failed phase with a fixed diagnostic.
func (c *Controller) Submit(ctx context.Context, s *Session) (Snapshot, error) {
	def, ok := c.registry.Lookup(s.Detector())
	if !ok {
		return s.Snapshot(), ErrUnknownDetector
	}
	if def.ToolOnly() {
		return s.Snapshot(), ErrToolOnlyDetector
	}

	req, err := s.beginSubmit()
	if err != nil {
		return s.Snapshot(), err
	}

	start := c.now()
	result, err := c.classifier.Classify(ctx, req)
	c.metrics.ObserveAnalysisLatency(string(req.DetectorID), time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("classification failed",
			"detector", req.DetectorID,
			"kind", classify.KindOf(err),
			"error", err,
		)
		c.metrics.ObserveAnalysis(string(req.DetectorID), "", "failed")
		s.dispatch(submitError{message: failMessage})
		return s.Snapshot(), nil
	}

	severity := detector.Severity(result.Label)
	c.metrics.ObserveAnalysis(string(req.DetectorID), string(severity), "succeeded")
	s.dispatch(submitSuccess{result: result})

	c.recordHistory(ctx, req, result)
	c.recordSink(ctx, req, result)
	return s.Snapshot(), nil
}

func (s *Session) beginSubmit() (classify.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting {
		return classify.Request{}, ErrSubmissionInFlight
	}
	if s.media.HasPending() {
		return classify.Request{}, ErrMediaPending
	}
	req := classify.Request{
		DetectorID: s.detectorID,
		Text:       s.text,
		Media:      s.media.Ready(),
	}
	if req.Empty() {
		return classify.Request{}, ErrEmptySubmission
	}
	submitStart{}.apply(s)
	return req, nil
}

func (c *Controller) recordHistory(ctx context.Context, req classify.Request, result classify.Result) {
	if c.history == nil {
		return
	}
	now := c.now().UTC()
	entry := history.Entry{
		ID:          history.NewEntryID(now),
		CreatedAt:   now,
		DetectorID:  req.DetectorID,
		Result:      result,
		Preview:     previewFor(req),
		FullContent: req.Text,
		ContentKind: contentKindFor(req),
	}
	if err := c.history.Append(ctx, entry); err != nil {
		c.logger.Error("history append failed", "error", err, "entry_id", entry.ID)
	}
}

func (c *Controller) recordSink(ctx context.Context, req classify.Request, result classify.Result) {
	if c.sink == nil {
		return
	}
	snippet, _ := truncateRunes(strings.TrimSpace(req.Text), snippetLimit)
	record := sink.AnalysisRecordedV1{
		DetectorID:     string(req.DetectorID),
		Domain:         result.Domain,
		Label:          result.Label,
		Confidence:     result.Confidence,
		Reason:         result.Reason,
		ContentSnippet: snippet,
		HasMedia:       len(req.Media) > 0,
		RecordedAt:     c.now().UTC(),
	}
	if err := c.sink.RecordAnalysis(ctx, record); err != nil {
		c.logger.Error("analysis record failed", "error", err, "detector", req.DetectorID)
	}

	if req.DetectorID != detector.AIMedia {
		return
	}
	var files []sink.FileMetadata
	for _, item := range req.Media {
		if item.Status != media.StatusReady {
			continue
		}
		files = append(files, sink.FileMetadata{Type: item.MIMEType, Size: item.SizeBytes})
	}
	if len(files) == 0 {
		return
	}
	if err := c.sink.RecordMediaMetadata(ctx, files, result); err != nil {
		c.logger.Error("media metadata record failed", "error", err, "file_count", len(files))
	}
}

func previewFor(req classify.Request) string {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		if len(req.Media) > 0 {
			return "Media Analysis"
		}
		return "Analysis"
	}
	if truncated, cut := truncateRunes(text, previewLimit); cut {
		return truncated + "..."
	}
	return text
}

// truncateRunes caps s at limit characters, never splitting a rune.
func truncateRunes(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

func contentKindFor(req classify.Request) history.ContentKind {
	if len(req.Media) > 0 {
		return history.ContentImage
	}
	return history.ContentText
}
