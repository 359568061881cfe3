package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tokosinar/posfront/internal/workspace"
)

// Session binds one terminal's workspace to an id. The mutex serializes all
// access: the workspace itself is single-threaded by contract.
type Session struct {
	ID        string
	Workspace *workspace.Workspace

	mu       sync.Mutex
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's workspace and refreshes
// its idle timer.
func (s *Session) Do(fn func(ws *workspace.Workspace)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.Workspace)
}

// SessionStore keeps live terminal sessions in process memory. Workspace
// state is ephemeral; nothing here survives a restart, and nothing should.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a workspace under a fresh session id.
func (st *SessionStore) Create(ws *workspace.Workspace) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Workspace: ws,
		lastSeen:  time.Now(),
	}

	st.mu.Lock()
	st.sweepLocked()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get returns a live session, expiring idle ones on the way.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	expired := time.Since(sess.lastSeen) > st.ttl
	sess.mu.Unlock()

	if expired {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// Delete drops a session, e.g. when a terminal closes its screen.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *SessionStore) sweepLocked() {
	for id, sess := range st.sessions {
		sess.mu.Lock()
		expired := time.Since(sess.lastSeen) > st.ttl
		sess.mu.Unlock()
		if expired {
			delete(st.sessions, id)
		}
	}
}
