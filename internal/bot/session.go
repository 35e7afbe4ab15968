package bot

import (
	"sync"
	"time"
)

// DialogState enumerates the positions in the conversational state machine.
// Inbound free text is interpreted solely according to this state.
type DialogState int

const (
	StateIdle DialogState = iota
	StateAwaitingEmail
	StateAwaitingPassword
	StateAwaitingRegisterName
	StateAwaitingRegisterEmail
	StateAwaitingRegisterPassword
	StateAwaitingMedicationName
	StateAwaitingMedicationDosage
	StateAwaitingMedicationDescription
	StateAwaitingIntakeNotes
	StateAwaitingReminderTime
)

// Session holds per-chat conversational state between messages.
// A nil UserID means the chat has not authenticated yet.
type Session struct {
	ChatID       int64
	UserID       *uint64
	State        DialogState
	LastActivity time.Time

	scratch map[string]string
}

// Authenticated reports whether the session is linked to an account
func (s *Session) Authenticated() bool {
	return s.UserID != nil
}

// SessionStore is a concurrent keyed store of chat sessions. Operations on
// different chats are safe to run concurrently; two messages from the same
// chat are expected to be serialized by the transport, the store only
// guarantees atomicity of individual operations.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
	}
}

// GetOrCreate returns the session for the chat, creating a fresh Idle
// unauthenticated session on first contact. Never returns nil. The result
// is a point-in-time copy: update handlers run concurrently, so all
// mutations go through the store methods, never through the returned value.
func (st *SessionStore) GetOrCreate(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[chatID]
	if !ok {
		session = &Session{
			ChatID:  chatID,
			State:   StateIdle,
			scratch: make(map[string]string),
		}
		st.sessions[chatID] = session
	}
	session.LastActivity = time.Now()

	snapshot := *session
	snapshot.scratch = nil
	return &snapshot
}

// SetState moves the session to the given dialog state
func (st *SessionStore) SetState(chatID int64, state DialogState) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if session, ok := st.sessions[chatID]; ok {
		session.State = state
		session.LastActivity = time.Now()
	}
}

// ResetState clears scratch data and returns the session to Idle. Used for
// explicit cancel and after completing or failing a flow.
func (st *SessionStore) ResetState(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if session, ok := st.sessions[chatID]; ok {
		session.State = StateIdle
		session.scratch = make(map[string]string)
		session.LastActivity = time.Now()
	}
}

// Authenticate binds an account to the session and resets dialog state
func (st *SessionStore) Authenticate(chatID int64, userID uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if session, ok := st.sessions[chatID]; ok {
		session.UserID = &userID
		session.State = StateIdle
		session.scratch = make(map[string]string)
		session.LastActivity = time.Now()
	}
}

// Logout removes the session entirely
func (st *SessionStore) Logout(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// SetValue stores a scratch value for a multi-step flow
func (st *SessionStore) SetValue(chatID int64, key, value string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if session, ok := st.sessions[chatID]; ok {
		session.scratch[key] = value
	}
}

// GetValue retrieves a scratch value. ok is false when the value is missing,
// which callers treat as "restart this flow" rather than an error.
func (st *SessionStore) GetValue(chatID int64, key string) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, exists := st.sessions[chatID]
	if !exists {
		return "", false
	}
	value, ok := session.scratch[key]
	return value, ok
}

// SweepInactive removes unauthenticated sessions idle longer than the
// threshold, measured from the given instant. Authenticated sessions are
// never evicted. Returns the number of sessions removed.
func (st *SessionStore) SweepInactive(now time.Time, threshold time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := now.Add(-threshold)
	removed := 0
	for chatID, session := range st.sessions {
		if session.UserID == nil && session.LastActivity.Before(cutoff) {
			delete(st.sessions, chatID)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
