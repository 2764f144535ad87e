package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/truthguard/truthguard/internal/detector"
	"github.com/truthguard/truthguard/internal/media"
	"github.com/truthguard/truthguard/pkg/logging"
)

// Manager keeps live sessions in memory, keyed by server-issued id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	fetchClient *http.Client
	observer    media.IngestObserver
	logger      *logging.Logger
}

func NewManager(fetchClient *http.Client, observer media.IngestObserver, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		fetchClient: fetchClient,
		observer:    observer,
		logger:      logger,
	}
}

// Create starts a session on the given detector and returns it.
func (m *Manager) Create(detectorID detector.ID) *Session {
	set := media.NewSet(m.fetchClient, m.logger)
	if m.observer != nil {
		set.SetObserver(m.observer)
	}
	s := newSession(uuid.NewString(), detectorID, set)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "session_id", s.ID, "detector", detectorID)
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete discards a session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
