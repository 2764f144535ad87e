package threats

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/truthguard/truthguard/pkg/logging"
)

// Handler exposes the feed over HTTP and websocket.
type Handler struct {
	feed     *Feed
	interval time.Duration
	logger   *logging.Logger
}

// InboundMessage is what subscribers send.
type InboundMessage struct {
	Type string `json:"type"` // "ping"
}

// OutboundMessage is one feed push.
type OutboundMessage struct {
	Type    string   `json:"type"` // "snapshot", "pong"
	Region  string   `json:"region,omitempty"`
	Threats []Threat `json:"threats,omitempty"`
}

// NewHandler creates a feed handler. interval controls how often live
// subscribers are refreshed.
func NewHandler(feed *Feed, interval time.Duration, logger *logging.Logger) *Handler {
	if feed == nil {
		panic("threats: feed required")
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{feed: feed, interval: interval, logger: logger}
}

// HandleList returns the current snapshot for a region.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = RegionAll
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"region":  region,
		"threats": h.feed.List(region),
	})
}

// HandleLive upgrades to websocket and streams feed snapshots: one on
// connect, then one per refresh tick. Each tick may surface the
// simulated real-time alert.
func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = RegionAll
	}

	h.logger.Info("threat feed subscription opened", "region", region)
	defer h.logger.Debug("threat feed subscription closed", "region", region)

	if err := h.sendSnapshot(conn, region); err != nil {
		return
	}

	// Reader goroutine: answers pings and unblocks the loop on close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg InboundMessage
			if err := websocket.JSON.Receive(conn, &msg); err != nil {
				return
			}
			if msg.Type == "ping" {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			h.feed.InjectAlert()
			if err := h.sendSnapshot(conn, region); err != nil {
				return
			}
		}
	}
}

func (h *Handler) sendSnapshot(conn *websocket.Conn, region string) error {
	return websocket.JSON.Send(conn, OutboundMessage{
		Type:    "snapshot",
		Region:  region,
		Threats: h.feed.List(region),
	})
}
