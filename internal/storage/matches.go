package storage

import (
	"errors"
	"log"
	"time"

	"partygo/backend/internal/models"

	"gorm.io/gorm"
)

// SaveProposal records a directed match edge. Edges are append-only and no
// eligibility check happens here; the caller decides who may pick whom.
func (s *Service) SaveProposal(partyID, fromUser, toUser uint) error {
	proposal := models.MatchProposal{
		PartyID:    partyID,
		FromUserID: fromUser,
		ToUserID:   toUser,
		Date:       time.Now(),
	}
	if err := s.DB.Create(&proposal).Error; err != nil {
		log.Printf("ERROR: failed to save proposal %d->%d for party %d: %v", fromUser, toUser, partyID, err)
		return err
	}
	return nil
}

// LatestProposalByUser returns the user's newest edge in the party, nil
// when they have not picked anyone. A later pick supersedes earlier ones.
func (s *Service) LatestProposalByUser(partyID, userID uint) (*models.MatchProposal, error) {
	var proposal models.MatchProposal
	err := s.DB.
		Where("party_id = ? AND from_user_id = ?", partyID, userID).
		Order("id desc").
		First(&proposal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// ProposalsForParty returns every edge for the party in insertion order,
// which keeps the resolver's scan deterministic.
func (s *Service) ProposalsForParty(partyID uint) ([]models.MatchProposal, error) {
	var proposals []models.MatchProposal
	err := s.DB.
		Where("party_id = ?", partyID).
		Order("id asc").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
