package service

import (
	"sync"
	"time"

	"parkhive/internal/entities"
)

// Notifier receives toast-style events from the services. The shell decides
// how to render them.
type Notifier interface {
	Notify(n entities.Notification)
}

// FeedNotifier buffers notifications in memory and optionally forwards each
// one to a sink as it arrives. It stands in for the outbound email/SMS
// senders of a real deployment, which this app does not have.
type FeedNotifier struct {
	mu   sync.Mutex
	feed []entities.Notification
	sink func(entities.Notification)
}

// NewFeedNotifier creates a notifier. sink may be nil.
func NewFeedNotifier(sink func(entities.Notification)) *FeedNotifier {
	return &FeedNotifier{sink: sink}
}

func (f *FeedNotifier) Notify(n entities.Notification) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	f.mu.Lock()
	f.feed = append(f.feed, n)
	sink := f.sink
	f.mu.Unlock()
	if sink != nil {
		sink(n)
	}
}

// Feed returns a copy of everything published so far.
func (f *FeedNotifier) Feed() []entities.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Notification, len(f.feed))
	copy(out, f.feed)
	return out
}
