package bot

import (
	"sync"
	"time"
)

// PendingAcknowledgment tracks a reminder that has been sent but not yet
// acknowledged. Medication fields are a snapshot captured at send time.
// An entry lives from "notification sent" until the user acknowledges or
// skips; it is never expired by age alone.
type PendingAcknowledgment struct {
	ReminderID     uint64
	ChatID         int64
	UserID         uint64
	MedicationID   uint64
	MedicationName string
	Dosage         string
	FirstSentAt    time.Time
	LastSentAt     time.Time
	MessageID      int64
}

// PendingTracker is a concurrent store of pending acknowledgments keyed by
// reminder ID. At most one live entry exists per reminder.
type PendingTracker struct {
	mu      sync.RWMutex
	entries map[uint64]*PendingAcknowledgment
}

// NewPendingTracker creates an empty tracker
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{
		entries: make(map[uint64]*PendingAcknowledgment),
	}
}

// Upsert inserts or replaces the entry for the reminder
func (t *PendingTracker) Upsert(entry *PendingAcknowledgment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[entry.ReminderID] = entry
}

// Get returns the entry for the reminder, or nil
func (t *PendingTracker) Get(reminderID uint64) *PendingAcknowledgment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.entries[reminderID]
}

// Remove deletes the entry and reports whether it existed. The report lets
// callers distinguish a first acknowledgment from a double click.
func (t *PendingTracker) Remove(reminderID uint64) (*PendingAcknowledgment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, existed := t.entries[reminderID]
	if existed {
		delete(t.entries, reminderID)
	}
	return entry, existed
}

// UpdateLastSent bumps the resend timestamp (and message ID when the resend
// produced a new message) after a sweep re-notification.
func (t *PendingTracker) UpdateLastSent(reminderID uint64, sentAt time.Time, messageID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.entries[reminderID]; ok {
		entry.LastSentAt = sentAt
		if messageID != 0 {
			entry.MessageID = messageID
		}
	}
}

// ListDueForResend returns copies of entries whose most recent send is older
// than the interval, measured from the given instant.
func (t *PendingTracker) ListDueForResend(now time.Time, interval time.Duration) []PendingAcknowledgment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := now.Add(-interval)
	var due []PendingAcknowledgment
	for _, entry := range t.entries {
		if entry.LastSentAt.Before(cutoff) {
			due = append(due, *entry)
		}
	}
	return due
}

// ListAll returns copies of every pending entry
func (t *PendingTracker) ListAll() []PendingAcknowledgment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := make([]PendingAcknowledgment, 0, len(t.entries))
	for _, entry := range t.entries {
		all = append(all, *entry)
	}
	return all
}

// Count returns the number of pending entries
func (t *PendingTracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
