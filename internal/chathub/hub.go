package chathub

import (
	"encoding/json"
	"log"

	"partygo/backend/internal/models"
	"partygo/backend/internal/storage"
)

// Hub serializes connection lifecycle and message flow: registrations,
// unregistrations, inbound messages and frames arriving from Redis all
// pass through one goroutine, so per-room delivery order matches the id
// order assigned by the store.
type Hub struct {
	Registry *Registry
	Storage  storage.Storage

	IncomingCh   chan InboundMessage
	PubSubCh     chan models.ChatFrame
	RegisterCh   chan Client
	UnregisterCh chan Client

	dispatchCh chan dispatchRequest
}

// dispatchRequest is a synchronous ingest request: the hub loop runs the
// append and publish, the caller waits for the outcome on reply.
type dispatchRequest struct {
	msg   InboundMessage
	reply chan error
}

func NewHub(registry *Registry, s storage.Storage) *Hub {
	return &Hub{
		Registry:     registry,
		Storage:      s,
		IncomingCh:   make(chan InboundMessage, 64),
		PubSubCh:     make(chan models.ChatFrame, 64),
		RegisterCh:   make(chan Client, 16),
		UnregisterCh: make(chan Client, 16),
		dispatchCh:   make(chan dispatchRequest),
	}
}

// Run is the hub's main dispatcher loop. Start it once, in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.RegisterCh:
			if err := h.Registry.Connect(c.GetRoomID(), c); err != nil {
				// Third member of a two-party room: close the transport
				// and leave the existing pair untouched.
				log.Printf("refused connection %s to room %d: %v", c.GetHandleID(), c.GetRoomID(), err)
				c.Close()
				continue
			}
			c.Run()

		case c := <-h.UnregisterCh:
			h.Registry.Disconnect(c.GetRoomID(), c)
			c.Close()

		case msg := <-h.IncomingCh:
			if err := h.dispatch(msg); err != nil {
				log.Printf("ERROR: dropping message for room %d: %v", msg.RoomID, err)
			}

		case req := <-h.dispatchCh:
			req.reply <- h.dispatch(req.msg)

		case frame := <-h.PubSubCh:
			h.Registry.Broadcast(frame.ChatRoomID, frame)
		}
	}
}

// Dispatch is the REST ingest path. It funnels the message through the hub
// loop so that every append-then-publish runs on the one goroutine; two
// concurrent callers can never publish frames in inverted id order. The
// outcome comes back over the reply channel so a persistence failure still
// surfaces to the HTTP caller.
func (h *Hub) Dispatch(roomID, userID uint, content string) error {
	req := dispatchRequest{
		msg:   InboundMessage{RoomID: roomID, UserID: userID, Content: content},
		reply: make(chan error, 1),
	}
	h.dispatchCh <- req
	return <-req.reply
}

// dispatch persists the message and publishes the stored frame, carrying
// the assigned id. A persistence failure aborts before anything is
// broadcast. Only the hub loop calls this.
func (h *Hub) dispatch(msg InboundMessage) error {
	chat, err := h.Storage.AppendChat(msg.RoomID, msg.UserID, msg.Content)
	if err != nil {
		return err
	}

	frame := models.ChatFrame{
		UserID:     chat.UserID,
		ChatRoomID: chat.ChatRoomID,
		ChatID:     chat.ID,
		Content:    chat.Contents,
	}
	return h.Storage.PublishFrame(msg.RoomID, frame)
}

// StartPubSubListener starts the goroutine that feeds frames published by
// any server instance into PubSubCh for local fan-out.
func (h *Hub) StartPubSubListener() {
	go func() {
		pubsub := h.Storage.SubscribeFrames()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var frame models.ChatFrame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				log.Printf("ERROR: unmarshalling pubsub frame: %v", err)
				continue
			}
			h.PubSubCh <- frame
		}
	}()
}
