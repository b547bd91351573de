package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type matchSelectRequest struct {
	UserID1 uint `json:"user_id_1" binding:"required"`
	UserID2 uint `json:"user_id_2" binding:"required"`
	PartyID uint `json:"party_id" binding:"required"`
}

// MatchSelect records a directed proposal: user 1 picked user 2. Whether
// user 2 was eligible is the selection screen's concern, not this layer's.
func (h *Handler) MatchSelect(c *gin.Context) {
	var req matchSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID1 == req.UserID2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Storage.SaveProposal(req.PartyID, req.UserID1, req.UserID2); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Match selected successfully"})
}

// MatchConfirm returns who the user picked, for their personal
// confirmation screen. This is not reciprocal confirmation: it answers
// "who did I choose", null when they have not chosen yet.
func (h *Handler) MatchConfirm(c *gin.Context) {
	partyID, err1 := strconv.ParseUint(c.Query("party_id"), 10, 64)
	userID, err2 := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	proposal, err := h.Storage.LatestProposalByUser(uint(partyID), uint(userID))
	if err != nil {
		log.Printf("ERROR: match confirm for party %d user %d: %v", partyID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if proposal == nil {
		c.JSON(http.StatusOK, gin.H{"user_id_2": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id_2": proposal.ToUserID})
}

// MatchResolve computes the party's confirmed pairs for the staff view.
func (h *Handler) MatchResolve(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("party_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	pairs, err := h.Resolver.ResolveAll(uint(partyID))
	if err != nil {
		log.Printf("ERROR: resolve matches for party %d: %v", partyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(pairs) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": nil, "totalCount": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pairs, "totalCount": len(pairs)})
}

// MatchUserList returns the candidates the user may pick from.
func (h *Handler) MatchUserList(c *gin.Context) {
	partyID, err1 := strconv.ParseUint(c.Query("party_id"), 10, 64)
	userID, err2 := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	candidates, err := h.Storage.ListCandidates(uint(partyID), uint(userID))
	if err != nil {
		log.Printf("ERROR: candidate list for party %d user %d: %v", partyID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": candidates, "totalCount": 0})
}
