package demo

import (
	"context"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// PingNotification is published to every interested handler
type PingNotification struct{}

// Journal is a shared, externally observable record of handler activity
type Journal struct {
	mu      sync.Mutex
	entries []string
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends an entry
func (j *Journal) Record(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of the recorded entries
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string{}, j.entries...)
}

// PongNotificationHandler records its name when a PingNotification arrives
type PongNotificationHandler struct {
	name    string
	journal *Journal
}

// NewPong1 creates the "Pong 1" notification handler
func NewPong1(journal *Journal) *PongNotificationHandler {
	return &PongNotificationHandler{name: "Pong 1", journal: journal}
}

// NewPong2 creates the "Pong 2" notification handler
func NewPong2(journal *Journal) *PongNotificationHandler {
	return &PongNotificationHandler{name: "Pong 2", journal: journal}
}

func (h *PongNotificationHandler) Handle(ctx context.Context, notification mediator.Notification) error {
	h.journal.Record(h.name)
	return nil
}
