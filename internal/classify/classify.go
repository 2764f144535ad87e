// Package classify builds classification requests against the detector
// catalog and turns backend responses into structured verdicts.
package classify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/media"
)

// Request is one classification attempt. Media must already be
// filtered to ready items; non-ready entries are skipped defensively.
type Request struct {
	DetectorID detector.ID
	Text       string
	Media      []media.Item
}

// Empty reports whether the request carries nothing to classify.
func (r Request) Empty() bool {
	if strings.TrimSpace(r.Text) != "" {
		return false
	}
	for _, item := range r.Media {
		if item.Status == media.StatusReady {
			return false
		}
	}
	return true
}

// Result is the structured verdict for one analysis. Immutable once
// produced.
type Result struct {
	Domain     string   `json:"domain"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Reason     []string `json:"reason"`
}

// Classifier performs one classification per call.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Result, error)
}

// decodeResult parses the backend's JSON payload, enforcing the result
// contract exactly. Any deviation is a schema error, never a partial
// result.
func decodeResult(data []byte) (Result, error) {
	var raw struct {
		Domain     *string   `json:"domain"`
		Label      *string   `json:"label"`
		Confidence *float64  `json:"confidence"`
		Reason     *[]string `json:"reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, newError(KindSchema, "unparseable response: %w", err)
	}
	if raw.Domain == nil || raw.Label == nil || raw.Confidence == nil || raw.Reason == nil {
		return Result{}, newError(KindSchema, "response missing required fields")
	}
	if strings.TrimSpace(*raw.Label) == "" {
		return Result{}, newError(KindSchema, "response label is empty")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return Result{}, newError(KindSchema, "confidence %v outside [0,100]", *raw.Confidence)
	}
	return Result{
		Domain:     *raw.Domain,
		Label:      *raw.Label,
		Confidence: *raw.Confidence,
		Reason:     *raw.Reason,
	}, nil
}
