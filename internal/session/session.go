// Package session owns the per-session analysis state machine and the
// controller that drives classification, history, and record keeping.
package session

import (
	"sync"

	"github.com/truthguard/truthguard/internal/classify"
	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/history"
	"github.com/truthguard/truthguard/internal/media"
)

// Phase is the submission lifecycle state of a session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Session is one user's analysis workspace. All transitions go through
// dispatch so state changes stay atomic under the session lock.
type Session struct {
	ID string

	mu         sync.Mutex
	detectorID detector.ID
	text       string
	media      *media.Set
	phase      Phase
	result     *classify.Result
	errMessage string
}

// Snapshot is an immutable view of session state.
type Snapshot struct {
	ID         string           `json:"id"`
	DetectorID detector.ID      `json:"detector_id"`
	Text       string           `json:"text"`
	Phase      Phase            `json:"phase"`
	Result     *classify.Result `json:"result,omitempty"`
	ErrMessage string           `json:"error_message,omitempty"`
	Media      []media.Item     `json:"media"`
}

func newSession(id string, detectorID detector.ID, set *media.Set) *Session {
	return &Session{
		ID:         id,
		detectorID: detectorID,
		media:      set,
		phase:      PhaseIdle,
	}
}

// action is one tagged state transition.
type action interface {
	apply(s *Session)
}

type switchDetector struct{ id detector.ID }

func (a switchDetector) apply(s *Session) {
	s.detectorID = a.id
	s.text = ""
	s.media.Clear()
	s.phase = PhaseIdle
	s.result = nil
	s.errMessage = ""
}

type setText struct{ text string }

func (a setText) apply(s *Session) {
	s.text = a.text
}

type submitStart struct{}

func (submitStart) apply(s *Session) {
	s.phase = PhaseSubmitting
	s.result = nil
	s.errMessage = ""
}

type submitSuccess struct{ result classify.Result }

func (a submitSuccess) apply(s *Session) {
	r := a.result
	s.phase = PhaseSucceeded
	s.result = &r
	s.errMessage = ""
}

type submitError struct{ message string }

func (a submitError) apply(s *Session) {
	s.phase = PhaseFailed
	s.result = nil
	s.errMessage = a.message
}

type reset struct{}

func (reset) apply(s *Session) {
	s.text = ""
	s.media.Clear()
	s.phase = PhaseIdle
	s.result = nil
	s.errMessage = ""
}

type restore struct{ entry history.Entry }

func (a restore) apply(s *Session) {
	r := a.entry.Result
	s.detectorID = a.entry.DetectorID
	s.text = a.entry.FullContent
	s.media.Clear()
	s.phase = PhaseSucceeded
	s.result = &r
	s.errMessage = ""
}

func (s *Session) dispatch(a action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.apply(s)
}

// Media returns the session's media set for ingestion calls.
func (s *Session) Media() *media.Set {
	return s.media
}

// Detector returns the active detector id.
func (s *Session) Detector() detector.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectorID
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.ID,
		DetectorID: s.detectorID,
		Text:       s.text,
		Phase:      s.phase,
		ErrMessage: s.errMessage,
		Media:      s.media.Items(),
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
