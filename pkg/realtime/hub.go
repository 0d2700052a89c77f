// Package realtime fans application events out to connected clients.
package realtime

import (
	"sync"

	"go.uber.org/zap"

	"staffly/pkg/presence"
)

const (
	EventOnlineUsers        = "online_users"
	EventNewLeaveRequest    = "new_leave_request"
	EventLeaveStatusUpdated = "leave_status_updated"
	EventCandidateMoved     = "candidate_moved"
	EventPayrollGenerated   = "payroll_generated"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const clientBuffer = 16

// Client is one open connection. The transport drains Events and writes them
// to the wire.
type Client struct {
	UserID    string
	CompanyID string
	Admin     bool
	send      chan Event
}

func NewClient(userID, companyID string, admin bool) *Client {
	return &Client{UserID: userID, CompanyID: companyID, Admin: admin, send: make(chan Event, clientBuffer)}
}

func (c *Client) Events() <-chan Event { return c.send }

type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	registry presence.Registry
	log      *zap.Logger
}

func NewHub(registry presence.Registry, log *zap.Logger) *Hub {
	return &Hub{clients: make(map[*Client]struct{}), registry: registry, log: log}
}

// Join registers the client and tells its tenant who is online.
func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.registry.Add(c.CompanyID, c.UserID)
	h.broadcastOnline(c.CompanyID)
}

// Leave unregisters the client and closes its event channel.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()

	h.registry.Remove(c.CompanyID, c.UserID)
	h.broadcastOnline(c.CompanyID)
}

func (h *Hub) ToUser(userID string, ev Event) {
	h.deliver(ev, func(c *Client) bool { return c.UserID == userID })
}

// ToAdmins delivers to every connected admin of the tenant.
func (h *Hub) ToAdmins(companyID string, ev Event) {
	h.deliver(ev, func(c *Client) bool { return c.Admin && c.CompanyID == companyID })
}

func (h *Hub) broadcastOnline(companyID string) {
	ev := Event{Type: EventOnlineUsers, Payload: h.registry.Online(companyID)}
	h.deliver(ev, func(c *Client) bool { return c.CompanyID == companyID })
}

func (h *Hub) deliver(ev Event, match func(*Client) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- ev:
		default:
			h.log.Warn("dropping realtime event for slow client",
				zap.String("type", ev.Type), zap.String("user_id", c.UserID))
		}
	}
}
