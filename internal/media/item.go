package media

// Kind is the media class of an item.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Origin records where an item came from.
type Origin string

const (
	OriginUpload    Origin = "upload"
	OriginRemoteURL Origin = "remote-url"
)

// Status is the per-item validation state. Items start pending and end
// in ready or failed; the only way out of a terminal state is removal.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Item is one normalized unit of uploaded or fetched binary content.
// EncodedPayload is the base64 transport form; PreviewHandle is a data
// URI set for images only.
type Item struct {
	ID             string `json:"id"`
	Kind           Kind   `json:"kind"`
	Origin         Origin `json:"origin"`
	SizeBytes      int64  `json:"size_bytes"`
	MIMEType       string `json:"mime_type,omitempty"`
	EncodedPayload string `json:"-"`
	PreviewHandle  string `json:"preview,omitempty"`
	Status         Status `json:"status"`
	FailReason     string `json:"fail_reason,omitempty"`
}

// File is raw upload input before normalization.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
