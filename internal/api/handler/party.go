package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"partygo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type createPartyRequest struct {
	AccommodationID uint      `json:"accommodation_id" binding:"required"`
	PartyDate       time.Time `json:"party_date" binding:"required"`
	Tags            []string  `json:"tags"`
}

// CreateParty registers a new party for an accommodation. Staff only; the
// party starts closed and without a matching round.
func (h *Handler) CreateParty(c *gin.Context) {
	var req createPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	party := models.Party{
		AccommodationID: req.AccommodationID,
		PartyDate:       req.PartyDate,
		Tags:            pq.StringArray(req.Tags),
	}
	if err := h.Storage.SaveParty(&party); err != nil {
		log.Printf("ERROR: create party: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"party_id": party.ID})
}

// PartyOpen opens or closes a party.
func (h *Handler) PartyOpen(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	open, err := strconv.ParseBool(c.Query("open"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Storage.SetPartyOpen(uint(partyID), open); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "party not found"})
			return
		}
		log.Printf("ERROR: set party %d open=%v: %v", partyID, open, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Party updated successfully"})
}

// PartyMatchStart starts the party's matching round.
func (h *Handler) PartyMatchStart(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	startedAt, err := h.Storage.StartMatch(uint(partyID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "party not found"})
			return
		}
		log.Printf("ERROR: start match for party %d: %v", partyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchStartTime": startedAt})
}

// PartyMatchTime returns when the party's matching round started, null
// when it has not started yet.
func (h *Handler) PartyMatchTime(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	startedAt, err := h.Storage.GetMatchStartTime(uint(partyID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "party not found"})
			return
		}
		log.Printf("ERROR: match time for party %d: %v", partyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchStartTime": startedAt})
}
