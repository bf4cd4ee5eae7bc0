// Package feed implements the note-list change feed: one publisher, many
// subscribers, every emission carrying the full current note list.
package feed

import (
	"sync"

	"github.com/google/uuid"

	"local-notes/models"
)

// subscriberBuffer is the per-subscriber channel capacity. Snapshots are
// cumulative, so when a slow subscriber falls behind the oldest buffered
// snapshot is dropped in favor of the newest one.
const subscriberBuffer = 16

type Feed struct {
	mu   sync.RWMutex
	subs map[string]chan []models.Note
	last []models.Note
}

func New() *Feed {
	return &Feed{
		subs: make(map[string]chan []models.Note),
	}
}

// Subscription is one subscriber's handle on the feed. Receive snapshots from
// Notes(); call Cancel() when done, which closes the channel.
type Subscription struct {
	id   string
	ch   chan []models.Note
	feed *Feed
	once sync.Once
}

func (s *Subscription) Notes() <-chan []models.Note {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		defer s.feed.mu.Unlock()

		delete(s.feed.subs, s.id)
		close(s.ch)
	})
}

// Subscribe registers a new subscriber. The last published snapshot, if any,
// is delivered immediately so late subscribers start from the current state.
func (f *Feed) Subscribe() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan []models.Note, subscriberBuffer)
	sub := &Subscription{
		id:   uuid.New().String(),
		ch:   ch,
		feed: f,
	}
	f.subs[sub.id] = ch

	if f.last != nil {
		ch <- f.last
	}

	return sub
}

// Publish broadcasts notes to every subscriber without ever blocking the
// publisher. Subscribers must treat received slices as read-only.
func (f *Feed) Publish(notes []models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = notes
	for _, ch := range f.subs {
		send(ch, notes)
	}
}

func send(ch chan []models.Note, notes []models.Note) {
	for {
		select {
		case ch <- notes:
			return
		default:
		}
		// Buffer full: discard the oldest snapshot and retry.
		select {
		case <-ch:
		default:
		}
	}
}
