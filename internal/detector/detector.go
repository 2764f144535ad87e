// Package detector holds the static catalog of content-trust detectors
// and the verdict severity mapping shared by the rest of the service.
package detector

// ID identifies a detector.
type ID string

const (
	News             ID = "news"
	JobScam          ID = "job-scam"
	EducationFraud   ID = "education-fraud"
	FinanceScam      ID = "finance-scam"
	Phishing         ID = "phishing"
	EmergencyMisinfo ID = "emergency-misinfo"
	HealthMisinfo    ID = "health-misinfo"
	ReviewScam       ID = "review-scam"
	AIMedia          ID = "ai-media"
	SOSTools         ID = "sos-tools"
)

// InputKind is one kind of user input a detector accepts.
type InputKind string

const (
	InputText  InputKind = "text"
	InputImage InputKind = "image"
	InputVideo InputKind = "video"
	InputURL   InputKind = "url"
)

// Definition is one immutable catalog entry. SystemInstruction is an
// opaque prompt payload handed verbatim to the classifier.
type Definition struct {
	ID                ID          `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Placeholder       string      `json:"placeholder"`
	SystemInstruction string      `json:"-"`
	AllowedInputs     []InputKind `json:"allowed_inputs"`
}

// ToolOnly reports whether the detector performs no classification.
// An empty allowed-input set signals a tool-only entry.
func (d Definition) ToolOnly() bool {
	return len(d.AllowedInputs) == 0
}

// AcceptsMedia reports whether the detector takes image or video input.
func (d Definition) AcceptsMedia() bool {
	for _, k := range d.AllowedInputs {
		if k == InputImage || k == InputVideo {
			return true
		}
	}
	return false
}

// Registry is the read-only detector catalog, defined at process start.
type Registry struct {
	byID  map[ID]Definition
	order []Definition
}

// NewRegistry builds the default catalog.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[ID]Definition, len(catalog))}
	for _, def := range catalog {
		r.byID[def.ID] = def
		r.order = append(r.order, def)
	}
	return r
}

// Lookup returns the definition for id and whether it exists.
func (r *Registry) Lookup(id ID) (Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// All returns the catalog in declaration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.order))
	copy(out, r.order)
	return out
}
