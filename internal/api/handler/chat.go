package handler

import (
	"log"
	"net/http"

	"partygo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// pageSize is the fixed history page size.
const pageSize = 30

type createChatRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	ChatRoomID uint   `json:"chatRoom_id" binding:"required"`
	Contents   string `json:"contents" binding:"required"`
}

// CreateChat appends a message over REST. It shares the socket path's
// persist-then-broadcast flow, so ids and ordering are identical for both.
func (h *Handler) CreateChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Hub.Dispatch(req.ChatRoomID, req.UserID, req.Contents); err != nil {
		log.Printf("ERROR: create chat in room %d: %v", req.ChatRoomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Chat created successfully"})
}

type chatContentsRequest struct {
	ChatRoomID uint  `json:"chatRoom_id" binding:"required"`
	LastChatID *uint `json:"lastChat_id"`
}

// ChatContents returns one backward page of room history in chronological
// order.
func (h *Handler) ChatContents(c *gin.Context) {
	var req chatContentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	chats, err := h.Storage.PageChats(req.ChatRoomID, req.LastChatID, pageSize)
	if err != nil {
		log.Printf("ERROR: page chats for room %d: %v", req.ChatRoomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	entries := lo.Map(chats, func(chat models.Chat, _ int) models.ChatEntry {
		return models.ChatEntry{
			ID:       chat.ID,
			UserID:   chat.UserID,
			Contents: chat.Contents,
			Date:     chat.Date,
		}
	})

	c.JSON(http.StatusOK, gin.H{"data": entries, "totalCount": 0})
}

type lastReadChatRequest struct {
	ChatRoomID     uint  `json:"chatRoom_id" binding:"required"`
	UserID         uint  `json:"user_id" binding:"required"`
	LastReadChatID *uint `json:"lastReadChat_id"`
}

// LastReadChat upserts the user's read pointer for a room.
func (h *Handler) LastReadChat(c *gin.Context) {
	var req lastReadChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Storage.MarkRead(req.ChatRoomID, req.UserID, req.LastReadChatID); err != nil {
		log.Printf("ERROR: mark read for room %d user %d: %v", req.ChatRoomID, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ChatReadStatus updated successfully"})
}
