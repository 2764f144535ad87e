package classify

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/truthguard/truthguard/internal/media"
)

func TestDecodeResult(t *testing.T) {
	res, err := decodeResult([]byte(`{"domain":"bit.ly","label":"Phishing","confidence":92,"reason":["shortened link","urgency"]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if res.Domain != "bit.ly" || res.Label != "Phishing" || res.Confidence != 92 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(res.Reason) != 2 || res.Reason[0] != "shortened link" {
		t.Errorf("unexpected reasons: %v", res.Reason)
	}
}

func TestDecodeResultRejectsDeviations(t *testing.T) {
	cases := map[string]string{
		"not json":         `verdict: fine`,
		"missing label":    `{"domain":"x","confidence":50,"reason":["r"]}`,
		"missing reason":   `{"domain":"x","label":"Safe","confidence":50}`,
		"empty label":      `{"domain":"x","label":"  ","confidence":50,"reason":["r"]}`,
		"confidence > 100": `{"domain":"x","label":"Safe","confidence":120,"reason":["r"]}`,
		"confidence < 0":   `{"domain":"x","label":"Safe","confidence":-3,"reason":["r"]}`,
	}
	for name, payload := range cases {
		_, err := decodeResult([]byte(payload))
		if err == nil {
			t.Errorf("%s: expected schema error", name)
			continue
		}
		if KindOf(err) != KindSchema {
			t.Errorf("%s: expected schema kind, got %s", name, KindOf(err))
		}
	}
}

func TestBuildPartsOrdering(t *testing.T) {
	items := []media.Item{
		{ID: "a", Kind: media.KindImage, MIMEType: "image/png", Status: media.StatusReady,
			EncodedPayload: base64.StdEncoding.EncodeToString([]byte("img"))},
		{ID: "b", Kind: media.KindVideo, Status: media.StatusFailed, FailReason: "too big"},
		{ID: "c", Kind: media.KindVideo, Status: media.StatusReady,
			EncodedPayload: base64.StdEncoding.EncodeToString([]byte("vid"))},
	}

	parts, err := buildParts("check this", items)
	if err != nil {
		t.Fatalf("buildParts: %v", err)
	}
	// Media first (failed item skipped), text last.
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}

	blob, ok := parts[0].(genai.Blob)
	if !ok || blob.MIMEType != "image/png" || string(blob.Data) != "img" {
		t.Errorf("part 0: %#v", parts[0])
	}
	vid, ok := parts[1].(genai.Blob)
	if !ok || vid.MIMEType != "video/mp4" || string(vid.Data) != "vid" {
		t.Errorf("part 1: %#v", parts[1])
	}
	text, ok := parts[2].(genai.Text)
	if !ok || string(text) != "check this" {
		t.Errorf("part 2: %#v", parts[2])
	}
}

func TestBuildPartsTextOnly(t *testing.T) {
	parts, err := buildParts("just text", nil)
	if err != nil {
		t.Fatalf("buildParts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected single text part, got %d", len(parts))
	}
	if _, ok := parts[0].(genai.Text); !ok {
		t.Fatalf("expected text part, got %#v", parts[0])
	}
}

func TestBuildPartsBlankTextOmitted(t *testing.T) {
	parts, err := buildParts("   \n", []media.Item{{
		ID: "a", Kind: media.KindImage, Status: media.StatusReady,
		EncodedPayload: base64.StdEncoding.EncodeToString([]byte("x")),
	}})
	if err != nil {
		t.Fatalf("buildParts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("whitespace text must be omitted, got %d parts", len(parts))
	}
}

func TestContentTypeForFallsBack(t *testing.T) {
	if got := contentTypeFor(media.Item{Kind: media.KindVideo, MIMEType: "application/octet-stream"}); got != "video/mp4" {
		t.Errorf("video fallback: %s", got)
	}
	if got := contentTypeFor(media.Item{Kind: media.KindImage}); got != "image/jpeg" {
		t.Errorf("image fallback: %s", got)
	}
	if got := contentTypeFor(media.Item{Kind: media.KindImage, MIMEType: "image/webp"}); got != "image/webp" {
		t.Errorf("recorded type must win: %s", got)
	}
}

func TestRequestEmpty(t *testing.T) {
	if !(Request{Text: "   "}).Empty() {
		t.Error("whitespace-only text must count as empty")
	}
	if (Request{Text: "hi"}).Empty() {
		t.Error("text request is not empty")
	}
	failedOnly := Request{Media: []media.Item{{Status: media.StatusFailed}}}
	if !failedOnly.Empty() {
		t.Error("failed-only media must count as empty")
	}
	ready := Request{Media: []media.Item{{Status: media.StatusReady}}}
	if ready.Empty() {
		t.Error("ready media is not empty")
	}
}

func TestGeminiMissingCredentials(t *testing.T) {
	g := NewGemini("", "", nil, nil)
	_, err := g.Classify(t.Context(), Request{Text: "hello"})
	if err == nil {
		t.Fatal("expected credentials error")
	}
	if KindOf(err) != KindCredentials {
		t.Fatalf("expected credentials kind, got %s", KindOf(err))
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatal("error must be a classify.Error")
	}
}
