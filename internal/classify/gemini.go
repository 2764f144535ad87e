package classify

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/media"
	"github.com/truthguard/truthguard/pkg/logging"
)

// fallbackInstruction is used when a detector id does not resolve.
// An unknown id is a registry-level concern; the request itself must
// not fail at this layer.
const fallbackInstruction = "Analyze the content for fraud or misinformation."

// resultSchema is the strict response contract: four named fields, all
// required.
var resultSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"domain": {Type: genai.TypeString},
		"label":  {Type: genai.TypeString},
		"confidence": {
			Type:        genai.TypeNumber,
			Description: "Confidence score between 0 and 100",
		},
		"reason": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"domain", "label", "confidence", "reason"},
}

// The product analyzes harmful-sounding content; blocking is disabled
// on every hazard category at the request level.
var permissiveSafety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
}

// Gemini is the Classifier implementation backed by Google's Gemini
// API. The underlying client is created lazily so a missing key
// surfaces as a per-request credentials error rather than a boot
// failure.
type Gemini struct {
	apiKey   string
	modelID  string
	registry *detector.Registry
	logger   *logging.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini creates a Gemini classifier.
func NewGemini(apiKey, modelID string, registry *detector.Registry, logger *logging.Logger) *Gemini {
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-3-pro-preview"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gemini{
		apiKey:   strings.TrimSpace(apiKey),
		modelID:  modelID,
		registry: registry,
		logger:   logger,
	}
}

func (g *Gemini) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, newError(KindCredentials, "gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	g.client = client
	return client, nil
}

// Classify sends one multi-part request to Gemini and parses the
// structured verdict.
func (g *Gemini) Classify(ctx context.Context, req Request) (Result, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return Result{}, err
	}

	parts, err := buildParts(req.Text, req.Media)
	if err != nil {
		return Result{}, err
	}

	model := client.GenerativeModel(g.modelID)
	model.SystemInstruction = genai.NewUserContent(genai.Text(g.instructionFor(req.DetectorID)))
	model.SafetySettings = permissiveSafety
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = resultSchema

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return Result{}, &Error{Kind: KindTransport, Err: err}
	}

	text, ok := responseText(resp)
	if !ok {
		g.logger.Warn("gemini returned empty payload, likely safety suppression",
			"detector", req.DetectorID, "model", g.modelID)
		return Result{}, newError(KindSafety, "no response from model; content may have been blocked by safety filters")
	}

	return decodeResult([]byte(text))
}

func (g *Gemini) instructionFor(id detector.ID) string {
	if g.registry != nil {
		if def, ok := g.registry.Lookup(id); ok && def.SystemInstruction != "" {
			return def.SystemInstruction
		}
	}
	return fallbackInstruction
}

// Close releases the underlying client, if one was created.
func (g *Gemini) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		err := g.client.Close()
		g.client = nil
		return err
	}
	return nil
}

// buildParts assembles the outbound parts: one blob per ready media
// item in sequence order, then the text part. Media-first, text-last
// ordering is a contract the classifier depends on for context priming.
func buildParts(text string, items []media.Item) ([]genai.Part, error) {
	var parts []genai.Part
	for _, item := range items {
		if item.Status != media.StatusReady {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(item.EncodedPayload)
		if err != nil {
			return nil, newError(KindSchema, "media item %s carries an invalid payload: %w", item.ID, err)
		}
		parts = append(parts, genai.Blob{
			MIMEType: contentTypeFor(item),
			Data:     data,
		})
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, genai.Text(text))
	}
	return parts, nil
}

// contentTypeFor picks the advisory content-type tag for a media part.
// The item's recorded MIME type wins when it looks usable; otherwise a
// generic still-image or video tag is substituted. The tag is metadata,
// not a container-format guarantee.
func contentTypeFor(item media.Item) string {
	mt := item.MIMEType
	if strings.HasPrefix(mt, "image/") || strings.HasPrefix(mt, "video/") {
		return mt
	}
	if item.Kind == media.KindVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}

func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	out := strings.TrimSpace(b.String())
	return out, out != ""
}
