package chathub

import "partygo/backend/internal/models"

// Client is the interface for one live room connection. It abstracts the
// underlying transport so the hub and registry can manage connections
// uniformly (real WebSockets in production, mocks in tests).
type Client interface {
	// GetUserID returns the id of the user behind the connection.
	GetUserID() uint
	// GetHandleID returns the connection's unique handle. A user who
	// reconnects gets a fresh handle, so the registry can tell the old
	// and new connections apart.
	GetHandleID() string
	// GetRoomID returns the room the connection is bound to.
	GetRoomID() uint

	// GetSendChannel returns the channel the registry delivers outbound
	// frames to. It is a send-only channel with a bounded buffer.
	GetSendChannel() chan<- models.ChatFrame

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts the connection down. Safe to call more than once.
	Close()
}

// InboundMessage is a message received from a connection before it has
// been persisted; the sender and room come from the connection itself,
// never from the payload.
type InboundMessage struct {
	RoomID  uint
	UserID  uint
	Content string
}
