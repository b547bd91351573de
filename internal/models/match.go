package models

import "time"

// MatchProposal is a directed "I choose you" edge scoped to a party.
// Rows are append-only: a later pick by the same user supersedes earlier
// ones for the personal confirmation view, but no history is deleted.
type MatchProposal struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PartyID    uint      `gorm:"index:idx_proposal_party" json:"party_id"`
	FromUserID uint      `json:"user_id_1"`
	ToUserID   uint      `json:"user_id_2"`
	Date       time.Time `json:"date"`
}

// MatchedUser is one side of a confirmed pair as exposed to staff.
type MatchedUser struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Team   int    `json:"team"`
}

// MatchedPair is a confirmed reciprocal match. Sides are assigned from the
// profile gender flag, not from which user proposed first.
type MatchedPair struct {
	Man   MatchedUser `json:"man"`
	Woman MatchedUser `json:"woman"`
}
