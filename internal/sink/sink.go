// Package sink records completed analyses and media metadata for
// downstream storage. Records flow through a Postgres outbox when a
// database is configured, or straight to the log otherwise.
package sink

import (
	"context"
	"time"

	"github.com/truthguard/truthguard/internal/classify"
)

// Event types written to the outbox.
const (
	EventAnalysisRecorded = "analysis.recorded.v1"
	EventMediaMetadata    = "media.metadata.v1"
)

// Downstream collection names.
const (
	collectionAnalysisResults = "analysis_results"
	collectionMediaUploads    = "media_uploads"
)

// AnalysisRecordedV1 is the payload persisted for every completed
// classification.
type AnalysisRecordedV1 struct {
	DetectorID     string    `json:"detector_id"`
	Domain         string    `json:"domain"`
	Label          string    `json:"label"`
	Confidence     float64   `json:"confidence"`
	Reason         []string  `json:"reason"`
	ContentSnippet string    `json:"content_snippet"`
	HasMedia       bool      `json:"has_media"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// MediaFileV1 is the shape data of one analyzed file. Media bytes are
// never recorded.
type MediaFileV1 struct {
	FileType  string `json:"file_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// MediaMetadataV1 describes one analyzed media batch together with the
// verdict it produced, so stored metadata stays correlatable with the
// classification.
type MediaMetadataV1 struct {
	Files      []MediaFileV1 `json:"files"`
	Label      string        `json:"label"`
	Confidence float64       `json:"confidence"`
	UploadedAt time.Time     `json:"uploaded_at"`
}

// FileMetadata is the caller-facing view of a media file to record.
type FileMetadata struct {
	Type string
	Size int64
}

// Sink accepts analysis records. Implementations must not block the
// analysis path on downstream availability.
type Sink interface {
	RecordAnalysis(ctx context.Context, record AnalysisRecordedV1) error
	RecordMediaMetadata(ctx context.Context, files []FileMetadata, result classify.Result) error
}
