package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/truthguard/truthguard/internal/classify"
	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/internal/media"
	"github.com/truthguard/truthguard/internal/sink"
	"github.com/truthguard/truthguard/pkg/logging"
)

type stubClassifier struct {
	result  classify.Result
	err     error
	started chan struct{}
	release chan struct{}
	calls   int
	lastReq classify.Request
}

func (c *stubClassifier) Classify(_ context.Context, req classify.Request) (classify.Result, error) {
	c.calls++
	c.lastReq = req
	if c.started != nil {
		close(c.started)
		c.started = nil
	}
	if c.release != nil {
		<-c.release
	}
	return c.result, c.err
}

type mediaRecord struct {
	files  []sink.FileMetadata
	result classify.Result
}

type stubSink struct {
	analyses []sink.AnalysisRecordedV1
	media    []mediaRecord
}

func (s *stubSink) RecordAnalysis(_ context.Context, record sink.AnalysisRecordedV1) error {
	s.analyses = append(s.analyses, record)
	return nil
}

func (s *stubSink) RecordMediaMetadata(_ context.Context, files []sink.FileMetadata, result classify.Result) error {
	s.media = append(s.media, mediaRecord{files: files, result: result})
	return nil
}

func newTestHistory(t *testing.T) *history.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return history.NewStore(rdb, nil, logging.New("error"))
}

func newTestController(t *testing.T, c classify.Classifier, records sink.Sink) (*Controller, *history.Store) {
	t.Helper()
	hist := newTestHistory(t)
	ctrl := NewController(c, detector.NewRegistry(), hist, records, nil, logging.New("error"))
	return ctrl, hist
}

func newTestSession(t *testing.T, id detector.ID) *Session {
	t.Helper()
	mgr := NewManager(nil, nil, logging.New("error"))
	s := mgr.Create(id)
	return s
}

func TestSubmitSuccess(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{
		Domain:     "Phishing & Links",
		Label:      "Scam",
		Confidence: 95,
		Reason:     []string{"Urgency bait", "Too good to be true"},
	}}
	records := &stubSink{}
	ctrl, hist := newTestController(t, clf, records)
	s := newTestSession(t, detector.Phishing)

	ctrl.SetText(s, "Win a free iPhone now!!!")

	snap, err := ctrl.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.Phase != PhaseSucceeded {
		t.Fatalf("expected succeeded, got %s (%s)", snap.Phase, snap.ErrMessage)
	}
	if snap.Result == nil || snap.Result.Label != "Scam" {
		t.Fatalf("unexpected result: %+v", snap.Result)
	}

	entries := hist.All(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Preview != "Win a free iPhone now!!!" {
		t.Errorf("unexpected preview %q", entry.Preview)
	}
	if entry.ContentKind != history.ContentText {
		t.Errorf("unexpected content kind %s", entry.ContentKind)
	}
	if entry.DetectorID != detector.Phishing {
		t.Errorf("unexpected detector %s", entry.DetectorID)
	}

	if len(records.analyses) != 1 || records.analyses[0].Label != "Scam" {
		t.Fatalf("expected 1 recorded analysis, got %+v", records.analyses)
	}
	if records.analyses[0].HasMedia {
		t.Error("text-only analysis must not be flagged as media")
	}
	if len(records.media) != 0 {
		t.Errorf("media metadata must not be recorded for text analysis")
	}
}

func TestSubmitGuards(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Label: "Safe"}}
	ctrl, _ := newTestController(t, clf, nil)

	t.Run("tool only detector", func(t *testing.T) {
		s := newTestSession(t, detector.SOSTools)
		ctrl.SetText(s, "hello")
		if _, err := ctrl.Submit(context.Background(), s); !errors.Is(err, ErrToolOnlyDetector) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("unknown detector", func(t *testing.T) {
		s := newTestSession(t, detector.ID("bogus"))
		if _, err := ctrl.Submit(context.Background(), s); !errors.Is(err, ErrUnknownDetector) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("empty submission", func(t *testing.T) {
		s := newTestSession(t, detector.News)
		ctrl.SetText(s, "   \n\t ")
		if _, err := ctrl.Submit(context.Background(), s); !errors.Is(err, ErrEmptySubmission) {
			t.Errorf("got %v", err)
		}
	})

	if clf.calls != 0 {
		t.Errorf("guarded submissions must never reach the classifier, got %d calls", clf.calls)
	}
}

func TestSubmitRejectsPendingMedia(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()
	defer close(release)

	clf := &stubClassifier{result: classify.Result{Label: "Safe"}}
	ctrl, _ := newTestController(t, clf, nil)
	s := newTestSession(t, detector.AIMedia)

	if _, err := s.Media().IngestRemoteURL(context.Background(), srv.URL); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := ctrl.Submit(context.Background(), s); !errors.Is(err, ErrMediaPending) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	started := make(chan struct{})
	clf := &stubClassifier{
		result:  classify.Result{Domain: "d", Label: "Safe", Confidence: 50, Reason: []string{"r"}},
		started: started,
		release: make(chan struct{}),
	}
	ctrl, _ := newTestController(t, clf, nil)
	s := newTestSession(t, detector.News)
	ctrl.SetText(s, "headline")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ctrl.Submit(context.Background(), s)
	}()

	// Wait for the first submission to reach the classifier.
	<-started

	if _, err := ctrl.Submit(context.Background(), s); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("got %v", err)
	}

	close(clf.release)
	<-done
	if s.Snapshot().Phase != PhaseSucceeded {
		t.Fatalf("first submission did not settle: %+v", s.Snapshot())
	}
}

func TestSubmitFailureSettlesWithFixedMessage(t *testing.T) {
	clf := &stubClassifier{err: errors.New("backend exploded")}
	ctrl, hist := newTestController(t, clf, nil)
	s := newTestSession(t, detector.FinanceScam)
	ctrl.SetText(s, "guaranteed 10x returns")

	snap, err := ctrl.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.Phase != PhaseFailed {
		t.Fatalf("expected failed phase, got %s", snap.Phase)
	}
	if snap.ErrMessage != failMessage {
		t.Errorf("unexpected diagnostic %q", snap.ErrMessage)
	}
	if snap.Result != nil {
		t.Error("failed submissions must not carry a result")
	}
	if len(hist.All(context.Background())) != 0 {
		t.Error("failed submissions must not be logged to history")
	}

	// The session is usable again after a failure.
	clf.err = nil
	clf.result = classify.Result{Label: "Safe"}
	snap, err = ctrl.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if snap.Phase != PhaseSucceeded {
		t.Fatalf("retry did not succeed: %+v", snap)
	}
}

func TestSubmitMediaRecordsMetadataForAIMedia(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Domain: "AI Media", Label: "AI-Generated", Confidence: 88, Reason: []string{"artifacts"}}}
	records := &stubSink{}
	ctrl, hist := newTestController(t, clf, records)
	s := newTestSession(t, detector.AIMedia)

	s.Media().IngestFiles([]media.File{{Name: "pic.png", ContentType: "image/png", Data: []byte("png-bytes")}})
	s.Media().Wait()

	snap, err := ctrl.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.Phase != PhaseSucceeded {
		t.Fatalf("expected success, got %s (%s)", snap.Phase, snap.ErrMessage)
	}
	if len(clf.lastReq.Media) != 1 {
		t.Fatalf("classifier must receive the ready media, got %d items", len(clf.lastReq.Media))
	}

	entries := hist.All(context.Background())
	if len(entries) != 1 || entries[0].Preview != "Media Analysis" {
		t.Fatalf("unexpected history: %+v", entries)
	}
	if entries[0].ContentKind != history.ContentImage {
		t.Errorf("unexpected content kind %s", entries[0].ContentKind)
	}

	if len(records.media) != 1 {
		t.Fatalf("expected one media metadata batch, got %+v", records.media)
	}
	batch := records.media[0]
	if len(batch.files) != 1 || batch.files[0].Type != "image/png" {
		t.Fatalf("unexpected files in batch: %+v", batch.files)
	}
	if batch.result.Label != "AI-Generated" || batch.result.Confidence != 88 {
		t.Fatalf("batch must carry the verdict, got %+v", batch.result)
	}
	if len(records.analyses) != 1 || !records.analyses[0].HasMedia {
		t.Fatalf("expected media-flagged analysis record, got %+v", records.analyses)
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := previewFor(classify.Request{Text: long})
	if got != strings.Repeat("a", 60)+"..." {
		t.Errorf("unexpected preview %q", got)
	}
	if previewFor(classify.Request{Text: "short"}) != "short" {
		t.Error("short text must pass through untruncated")
	}
	if previewFor(classify.Request{}) != "Analysis" {
		t.Error("empty submission preview placeholder mismatch")
	}

	// Truncation counts characters, not bytes. A multibyte rune at the
	// cut point must survive intact.
	multibyte := strings.Repeat("₹", 70)
	got = previewFor(classify.Request{Text: multibyte})
	if got != strings.Repeat("₹", 60)+"..." {
		t.Errorf("unexpected multibyte preview %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("preview is not valid UTF-8: %q", got)
	}
}

func TestSnippetKeepsRunesIntact(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Label: "Scam"}}
	records := &stubSink{}
	ctrl, _ := newTestController(t, clf, records)
	s := newTestSession(t, detector.Phishing)

	ctrl.SetText(s, strings.Repeat("न", 120))
	if _, err := ctrl.Submit(context.Background(), s); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(records.analyses) != 1 {
		t.Fatalf("expected 1 recorded analysis, got %d", len(records.analyses))
	}
	snippet := records.analyses[0].ContentSnippet
	if snippet != strings.Repeat("न", 100) {
		t.Errorf("unexpected snippet %q", snippet)
	}
	if !utf8.ValidString(snippet) {
		t.Errorf("snippet is not valid UTF-8: %q", snippet)
	}
}

func TestResetIdempotent(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Label: "Scam", Confidence: 90, Reason: []string{"bait"}}}
	ctrl, _ := newTestController(t, clf, nil)
	s := newTestSession(t, detector.Phishing)

	ctrl.SetText(s, "claim your prize")
	if _, err := ctrl.Submit(context.Background(), s); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Snapshot().Result == nil {
		t.Fatal("expected a settled result before reset")
	}

	assertClean := func(snap Snapshot) {
		t.Helper()
		if snap.Text != "" || snap.Result != nil || snap.ErrMessage != "" {
			t.Fatalf("reset left state behind: %+v", snap)
		}
		if snap.Phase != PhaseIdle {
			t.Fatalf("expected idle phase, got %s", snap.Phase)
		}
		if len(snap.Media) != 0 {
			t.Fatalf("reset must clear media, got %d items", len(snap.Media))
		}
		if snap.DetectorID != detector.Phishing {
			t.Fatalf("reset must keep the active detector, got %s", snap.DetectorID)
		}
	}

	ctrl.Reset(s)
	assertClean(s.Snapshot())

	// A second reset on an already-clean session is a no-op.
	ctrl.Reset(s)
	assertClean(s.Snapshot())
}

func TestSwitchDetectorResetsState(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Label: "Scam"}}
	ctrl, _ := newTestController(t, clf, nil)
	s := newTestSession(t, detector.Phishing)

	ctrl.SetText(s, "suspicious link")
	if _, err := ctrl.Submit(context.Background(), s); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := ctrl.SwitchDetector(s, detector.News); err != nil {
		t.Fatalf("switch: %v", err)
	}
	snap := s.Snapshot()
	if snap.DetectorID != detector.News || snap.Text != "" || snap.Result != nil || snap.Phase != PhaseIdle {
		t.Fatalf("switch did not reset state: %+v", snap)
	}

	if err := ctrl.SwitchDetector(s, detector.ID("nope")); !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("got %v", err)
	}
}

func TestRestoreFromHistory(t *testing.T) {
	clf := &stubClassifier{result: classify.Result{Label: "Safe"}}
	ctrl, _ := newTestController(t, clf, nil)
	s := newTestSession(t, detector.News)

	entry := history.Entry{
		DetectorID:  detector.HealthMisinfo,
		Result:      classify.Result{Domain: "Health", Label: "Misleading", Confidence: 70, Reason: []string{"cherry-picked"}},
		FullContent: "miracle cure",
		ContentKind: history.ContentText,
	}
	ctrl.RestoreFromHistory(s, entry)

	snap := s.Snapshot()
	if snap.DetectorID != detector.HealthMisinfo || snap.Text != "miracle cure" {
		t.Fatalf("restore mismatch: %+v", snap)
	}
	if snap.Phase != PhaseSucceeded || snap.Result == nil || snap.Result.Label != "Misleading" {
		t.Fatalf("restored result mismatch: %+v", snap)
	}
	if len(snap.Media) != 0 {
		t.Error("restore must clear media")
	}
}

func TestManagerLifecycle(t *testing.T) {
	mgr := NewManager(nil, nil, logging.New("error"))
	s := mgr.Create(detector.News)

	got, ok := mgr.Get(s.ID)
	if !ok || got != s {
		t.Fatal("expected to retrieve created session")
	}
	mgr.Delete(s.ID)
	if _, ok := mgr.Get(s.ID); ok {
		t.Fatal("expected session to be gone")
	}
	mgr.Delete("unknown")
}
