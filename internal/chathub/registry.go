package chathub

import (
	"errors"
	"log"
	"sync"

	"partygo/backend/internal/models"
)

// RoomCapacity is the maximum number of live connections per room. Rooms
// are two-party channels; a third connection would be an eavesdropper.
const RoomCapacity = 2

// ErrRoomFull is returned when a room already holds RoomCapacity
// connections.
var ErrRoomFull = errors.New("chathub: room is full")

// Registry maps rooms to their live connections. It is the only structure
// mutated from multiple goroutines, so a single mutex covers connect,
// disconnect and the broadcast snapshot.
type Registry struct {
	mu    sync.Mutex
	rooms map[uint]map[string]Client // roomID -> handleID -> client
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[uint]map[string]Client),
	}
}

// Connect registers a connection under its room. The connection is refused
// with ErrRoomFull when the room already holds two; the existing members
// are not disturbed.
func (r *Registry) Connect(roomID uint, c Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := r.rooms[roomID]
	if len(conns) >= RoomCapacity {
		return ErrRoomFull
	}
	if conns == nil {
		conns = make(map[string]Client, RoomCapacity)
		r.rooms[roomID] = conns
	}
	conns[c.GetHandleID()] = c
	return nil
}

// Disconnect removes a connection. The room entry itself is dropped once
// it is empty so a later reconnect by the same user is not refused.
func (r *Registry) Disconnect(roomID uint, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(conns, c.GetHandleID())
	if len(conns) == 0 {
		delete(r.rooms, roomID)
	}
}

// RoomSize returns the number of live connections in a room.
func (r *Registry) RoomSize(roomID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[roomID])
}

// Broadcast delivers a frame to every connection currently registered for
// the room. Delivery is best-effort per recipient: a connection whose send
// buffer is full is evicted and closed without blocking or aborting
// delivery to the other member.
func (r *Registry) Broadcast(roomID uint, frame models.ChatFrame) {
	r.mu.Lock()
	conns := make([]Client, 0, len(r.rooms[roomID]))
	for _, c := range r.rooms[roomID] {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	for _, c := range conns {
		select {
		case c.GetSendChannel() <- frame:
		default:
			log.Printf("evicting stale connection %s from room %d", c.GetHandleID(), roomID)
			r.Disconnect(roomID, c)
			c.Close()
		}
	}
}
