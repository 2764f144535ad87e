package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/truthguard/truthguard/internal/classify"
	"github.com/truthguard/truthguard/pkg/logging"
)

// DocumentHandler delivers outbox entries by writing them to the log as
// document-store operations. It stands in for the real document store
// until one is provisioned.
type DocumentHandler struct {
	logger *logging.Logger
}

func NewDocumentHandler(logger *logging.Logger) *DocumentHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DocumentHandler{logger: logger}
}

func (h *DocumentHandler) Handle(ctx context.Context, entry OutboxEntry) error {
	switch entry.Type {
	case EventAnalysisRecorded:
		var record AnalysisRecordedV1
		if err := json.Unmarshal(entry.Payload, &record); err != nil {
			return fmt.Errorf("sink: decode %s: %w", entry.Type, err)
		}
		h.logger.Info("document write",
			"collection", collectionAnalysisResults,
			"detector", record.DetectorID,
			"label", record.Label,
			"confidence", record.Confidence,
			"snippet", record.ContentSnippet,
			"has_media", record.HasMedia,
		)
		return nil
	case EventMediaMetadata:
		var meta MediaMetadataV1
		if err := json.Unmarshal(entry.Payload, &meta); err != nil {
			return fmt.Errorf("sink: decode %s: %w", entry.Type, err)
		}
		h.logger.Info("document write",
			"collection", collectionMediaUploads,
			"file_count", len(meta.Files),
			"label", meta.Label,
			"confidence", meta.Confidence,
		)
		return nil
	default:
		return fmt.Errorf("sink: unknown event type %q", entry.Type)
	}
}

// LogSink is the no-database Sink. Records are logged synchronously
// instead of being queued for delivery.
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) RecordAnalysis(_ context.Context, record AnalysisRecordedV1) error {
	s.logger.Info("document write",
		"collection", collectionAnalysisResults,
		"detector", record.DetectorID,
		"label", record.Label,
		"confidence", record.Confidence,
		"snippet", record.ContentSnippet,
		"has_media", record.HasMedia,
	)
	return nil
}

func (s *LogSink) RecordMediaMetadata(_ context.Context, files []FileMetadata, result classify.Result) error {
	s.logger.Info("document write",
		"collection", collectionMediaUploads,
		"file_count", len(files),
		"label", result.Label,
		"confidence", result.Confidence,
		"uploaded_at", time.Now().UTC(),
	)
	return nil
}
