package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatRoomRequest struct {
	UserID1 uint `json:"user_id_1" binding:"required"`
	UserID2 uint `json:"user_id_2" binding:"required"`
	PartyID uint `json:"party_id" binding:"required"`
}

// CreateChatRoom resolves the room for an unordered user pair, creating
// it on first use. Calling it again with the users swapped returns the
// same room.
func (h *Handler) CreateChatRoom(c *gin.Context) {
	var req chatRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID1 == req.UserID2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	room, err := h.Storage.GetOrCreateRoom(req.PartyID, req.UserID1, req.UserID2)
	if err != nil {
		log.Printf("ERROR: get-or-create room for party %d: %v", req.PartyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatRoom_id": room.ID})
}

type chatRoomsRequest struct {
	PartyID uint `json:"party_id" binding:"required"`
	UserID  uint `json:"user_id" binding:"required"`
}

// ChatRooms returns the user's inbox for a party: every room they belong
// to, with the other member's latest message and the unread count.
func (h *Handler) ChatRooms(c *gin.Context) {
	var req chatRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	entries, err := h.Storage.ListRoomsForUser(req.PartyID, req.UserID)
	if err != nil {
		log.Printf("ERROR: list rooms for party %d user %d: %v", req.PartyID, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": nil, "totalCount": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries, "totalCount": len(entries)})
}
