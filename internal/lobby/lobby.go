// Package lobby tracks the players connected to one server and relays
// announcements between them. Games never share state through it; it only
// carries finished-round news such as a broken record.
package lobby

import (
	"fmt"
	"sync"
	"time"
)

// SessionID uniquely identifies a connection.
type SessionID string

// NewSessionID derives an ID from the user name and the connection time.
func NewSessionID(user string, at time.Time) SessionID {
	return SessionID(fmt.Sprintf("%s-%d", user, at.UnixNano()))
}

// EventKind classifies an announcement.
type EventKind int

const (
	EventJoined EventKind = iota
	EventLeft
	EventNewBest
)

// Event is one announcement.
type Event struct {
	Kind  EventKind
	User  string
	Score int
}

// Text renders the event as a one-line notice.
func (e Event) Text() string {
	switch e.Kind {
	case EventJoined:
		return e.User + " joined the storm"
	case EventLeft:
		return e.User + " left"
	case EventNewBest:
		return fmt.Sprintf("%s set a new best: %d", e.User, e.Score)
	default:
		return ""
	}
}

// Session is one connected player's mailbox.
type Session struct {
	id       SessionID
	user     string
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewSession creates a mailbox that buffers up to size events.
func NewSession(id SessionID, user string, size int) *Session {
	if size < 1 {
		size = 16
	}
	return &Session{
		id:     id,
		user:   user,
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() SessionID { return s.id }

// User returns the connected user's name.
func (s *Session) User() string { return s.user }

// Send delivers evt without blocking. When the buffer is full the oldest
// event is dropped.
func (s *Session) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

// Events returns the channel the session reads from.
func (s *Session) Events() <-chan Event { return s.events }

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close marks the session as done. Safe to call multiple times.
func (s *Session) Close() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Registry tracks connected sessions. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[SessionID]*Session)}
}

// Join registers s and tells everyone else.
func (r *Registry) Join(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	r.Broadcast(s.ID(), Event{Kind: EventJoined, User: s.User()})
}

// Leave unregisters the session, closes it and tells everyone else.
func (r *Registry) Leave(id SessionID) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	s.Close()
	r.Broadcast(id, Event{Kind: EventLeft, User: s.User()})
}

// Get retrieves a session by ID.
func (r *Registry) Get(id SessionID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Broadcast sends evt to every session except from.
func (r *Registry) Broadcast(from SessionID, evt Event) {
	r.mu.RLock()
	targets := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		if id != from {
			targets = append(targets, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range targets {
		s.Send(evt)
	}
}
