package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"partygo/backend/internal/chathub"
	"partygo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection and hands it to the hub.
// The room comes from the path, the user from the JWT; a token query
// parameter is accepted because browsers cannot set headers on WebSocket
// requests. Membership is checked before the upgrade, the capacity cap
// after it (by the hub, which owns the registry).
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}
	}
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
		return
	}

	userID, err := h.validateAndGetUserID(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
		return
	}

	roomID, err := strconv.ParseUint(c.Param("chatRoom_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	room, err := h.Storage.GetRoomByID(uint(roomID))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if room == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if !room.Member(userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a member of this room"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade failed: %v", err)
		return
	}

	client := &chathub.WebSocketClient{
		HandleID: uuid.New().String(),
		UserID:   userID,
		RoomID:   room.ID,
		Conn:     conn,
		Hub:      h.Hub,
		Send:     make(chan models.ChatFrame, 256),
	}

	// The hub admits the client (enforcing the two-party cap) and starts
	// its pumps, or closes the transport if the room is full.
	h.Hub.RegisterCh <- client
}
