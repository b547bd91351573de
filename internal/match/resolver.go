package match

import (
	"fmt"

	"partygo/backend/internal/models"
)

// Store is the slice of the storage layer the resolver needs.
type Store interface {
	ProposalsForParty(partyID uint) ([]models.MatchProposal, error)
	GetProfile(userID uint) (*models.UserProfile, error)
	GetTeam(userID uint) (int, error)
}

// Resolver computes confirmed pairs from the party's proposal graph.
type Resolver struct {
	Storage Store
}

func NewResolver(s Store) *Resolver {
	return &Resolver{Storage: s}
}

type directedEdge struct {
	from, to uint
}

// ResolveAll scans every proposal for the party once, in insertion order.
// A pair is confirmed when both directed edges exist; reciprocity is
// decided by membership of the reverse edge in the seen set, which keeps
// the resolution linear in the number of edges. Each user lands in at most
// one pair: once emitted, later edges involving that user are skipped.
func (r *Resolver) ResolveAll(partyID uint) ([]models.MatchedPair, error) {
	edges, err := r.Storage.ProposalsForParty(partyID)
	if err != nil {
		return nil, err
	}

	seen := make(map[directedEdge]bool, len(edges))
	paired := make(map[uint]bool)

	var pairs []models.MatchedPair
	for _, e := range edges {
		if e.FromUserID == e.ToUserID {
			continue
		}
		if seen[directedEdge{e.ToUserID, e.FromUserID}] &&
			!paired[e.FromUserID] && !paired[e.ToUserID] {
			pair, err := r.buildPair(e.FromUserID, e.ToUserID)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
			paired[e.FromUserID] = true
			paired[e.ToUserID] = true
		}
		seen[directedEdge{e.FromUserID, e.ToUserID}] = true
	}
	return pairs, nil
}

// buildPair assigns the man/woman sides of a confirmed pair from the
// profile gender flag. The pairing is symmetric: which user proposed first
// plays no role.
func (r *Resolver) buildPair(a, b uint) (models.MatchedPair, error) {
	sideA, genderA, err := r.side(a)
	if err != nil {
		return models.MatchedPair{}, err
	}
	sideB, _, err := r.side(b)
	if err != nil {
		return models.MatchedPair{}, err
	}

	if genderA {
		return models.MatchedPair{Man: sideA, Woman: sideB}, nil
	}
	return models.MatchedPair{Man: sideB, Woman: sideA}, nil
}

func (r *Resolver) side(userID uint) (models.MatchedUser, bool, error) {
	profile, err := r.Storage.GetProfile(userID)
	if err != nil {
		return models.MatchedUser{}, false, err
	}
	if profile == nil {
		return models.MatchedUser{}, false, fmt.Errorf("match: user %d has no profile", userID)
	}

	team, err := r.Storage.GetTeam(userID)
	if err != nil {
		return models.MatchedUser{}, false, err
	}

	side := models.MatchedUser{
		UserID: userID,
		Name:   profile.Name,
		Phone:  profile.Phone,
		Team:   team,
	}
	return side, profile.Gender, nil
}
