// Package realtime fans domain events out to connected clients.
// Delivery is at-most-once: events for slow subscribers are dropped,
// never queued beyond the channel buffer, and broadcasts never block
// the caller.
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Event names pushed to clients.
const (
	EventRequestCreated = "request-created"
	EventStatusChanged  = "status-changed"
	EventNotification   = "notification"
)

// Event is a single push to subscribers of a group.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// BoardGroup is the group key for all clients watching a board.
func BoardGroup(slug string) string { return "board:" + slug }

// UserGroup is the group key for a single user's direct events.
func UserGroup(userID string) string { return "user:" + userID }

// Publisher is the hub surface the usecase layer emits through.
type Publisher interface {
	PublishBoard(slug string, event Event)
	PublishUser(userID string, event Event)
}

// Subscriber is one connected client. It may be joined to any number
// of groups and receives every broadcast to each of them on a single
// buffered channel.
type Subscriber struct {
	ch   chan Event
	done chan struct{}

	mu     sync.Mutex
	closed bool
	groups map[string]struct{}
}

// Events is the subscriber's delivery channel.
func (s *Subscriber) Events() <-chan Event { return s.ch }

// Done is closed when the subscriber is removed from the hub.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// group holds the members of one group id behind its own lock, so
// traffic on one board never serializes against another.
type group struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

// Hub is the in-process event broker. Groups are created on first
// join and removed when their last subscriber leaves.
type Hub struct {
	log    *zap.SugaredLogger
	buffer int

	mu     sync.RWMutex
	groups map[string]*group
}

// NewHub builds a hub whose subscribers buffer up to buffer events.
func NewHub(log *zap.SugaredLogger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		log:    log.Named("realtime"),
		buffer: buffer,
		groups: make(map[string]*group),
	}
}

// NewSubscriber registers a new client with the hub. The subscriber
// belongs to no groups until Join is called.
func (h *Hub) NewSubscriber() *Subscriber {
	return &Subscriber{
		ch:     make(chan Event, h.buffer),
		done:   make(chan struct{}),
		groups: make(map[string]struct{}),
	}
}

// Join adds the subscriber to a group. Broadcasts issued after Join
// returns are guaranteed to reach the subscriber's channel.
func (h *Hub) Join(groupID string, s *Subscriber) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.groups[groupID] = struct{}{}
	s.mu.Unlock()

	for {
		g := h.group(groupID)
		g.mu.Lock()
		g.subs[s] = struct{}{}
		g.mu.Unlock()

		// A concurrent drop of the last member may have removed g from
		// the registry between the lookup and the insert, leaving the
		// membership on an orphaned group that broadcasts never see.
		// Re-read the registry and retry until the insert landed on the
		// registered group.
		h.mu.RLock()
		registered := h.groups[groupID]
		h.mu.RUnlock()
		if registered == g {
			return
		}
	}
}

// Leave removes the subscriber from a group. Unknown groups and
// non-members are no-ops.
func (h *Hub) Leave(groupID string, s *Subscriber) {
	s.mu.Lock()
	delete(s.groups, groupID)
	s.mu.Unlock()

	h.drop(groupID, s)
}

// Close removes the subscriber from every group and signals Done.
// Safe to call more than once.
func (h *Hub) Close(s *Subscriber) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	groups := make([]string, 0, len(s.groups))
	for g := range s.groups {
		groups = append(groups, g)
	}
	s.groups = make(map[string]struct{})
	s.mu.Unlock()

	for _, g := range groups {
		h.drop(g, s)
	}

	close(s.done)
}

// Broadcast delivers the event to every current subscriber of the
// group. Subscribers whose buffer is full miss the event.
func (h *Hub) Broadcast(groupID string, event Event) {
	h.mu.RLock()
	g := h.groups[groupID]
	h.mu.RUnlock()
	if g == nil {
		return
	}

	g.mu.RLock()
	targets := make([]*Subscriber, 0, len(g.subs))
	for s := range g.subs {
		targets = append(targets, s)
	}
	g.mu.RUnlock()

	for _, s := range targets {
		select {
		case s.ch <- event:
		default:
			h.log.Debugw("event dropped for slow subscriber", "group", groupID, "event", event.Name)
		}
	}
}

// PublishBoard broadcasts to everyone watching the board.
func (h *Hub) PublishBoard(slug string, event Event) {
	h.Broadcast(BoardGroup(slug), event)
}

// PublishUser broadcasts to the user's own group.
func (h *Hub) PublishUser(userID string, event Event) {
	h.Broadcast(UserGroup(userID), event)
}

// group returns the group for the id, creating it on first use.
func (h *Hub) group(groupID string) *group {
	h.mu.RLock()
	g := h.groups[groupID]
	h.mu.RUnlock()
	if g != nil {
		return g
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if g = h.groups[groupID]; g == nil {
		g = &group{subs: make(map[*Subscriber]struct{})}
		h.groups[groupID] = g
	}
	return g
}

// drop removes the subscriber from one group, deleting the group when
// it empties.
func (h *Hub) drop(groupID string, s *Subscriber) {
	h.mu.RLock()
	g := h.groups[groupID]
	h.mu.RUnlock()
	if g == nil {
		return
	}

	g.mu.Lock()
	delete(g.subs, s)
	empty := len(g.subs) == 0
	g.mu.Unlock()

	if empty {
		h.mu.Lock()
		if g2 := h.groups[groupID]; g2 == g {
			g.mu.RLock()
			if len(g.subs) == 0 {
				delete(h.groups, groupID)
			}
			g.mu.RUnlock()
		}
		h.mu.Unlock()
	}
}
