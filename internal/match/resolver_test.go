package match_test

import (
	"testing"

	"partygo/backend/internal/match"
	"partygo/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a testify mock of the resolver's storage slice.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ProposalsForParty(partyID uint) ([]models.MatchProposal, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchProposal), args.Error(1)
}

func (m *MockStore) GetProfile(userID uint) (*models.UserProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockStore) GetTeam(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func edges(partyID uint, pairs ...[2]uint) []models.MatchProposal {
	out := make([]models.MatchProposal, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, models.MatchProposal{
			ID:         uint(i + 1),
			PartyID:    partyID,
			FromUserID: p[0],
			ToUserID:   p[1],
		})
	}
	return out
}

func withProfile(store *MockStore, userID uint, name string, gender bool, team int) {
	store.On("GetProfile", userID).Return(&models.UserProfile{
		UserID: userID,
		Name:   name,
		Phone:  "010-0000",
		Gender: gender,
	}, nil)
	store.On("GetTeam", userID).Return(team, nil)
}

// TestResolveAllRequiresReciprocity verifies a one-directional edge never
// produces a pair, and adding the reverse edge produces exactly one.
func TestResolveAllRequiresReciprocity(t *testing.T) {
	store := new(MockStore)
	store.On("ProposalsForParty", uint(10)).Return(edges(10, [2]uint{1, 2}), nil).Once()

	resolver := match.NewResolver(store)

	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	store.On("ProposalsForParty", uint(10)).
		Return(edges(10, [2]uint{1, 2}, [2]uint{2, 1}), nil).Once()
	withProfile(store, 1, "Kim", true, 3)
	withProfile(store, 2, "Lee", false, 3)

	pairs, err = resolver.ResolveAll(10)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, uint(1), pairs[0].Man.UserID)
	assert.Equal(t, uint(2), pairs[0].Woman.UserID)
}

// TestResolveAllDedup verifies each user appears in at most one pair even
// when they have edges to several candidates.
func TestResolveAllDedup(t *testing.T) {
	store := new(MockStore)
	// User 1 picked both 2 and 3; only (1,2) is reciprocal.
	store.On("ProposalsForParty", uint(10)).Return(edges(10,
		[2]uint{1, 2},
		[2]uint{1, 3},
		[2]uint{2, 1},
		[2]uint{3, 1},
	), nil)
	withProfile(store, 1, "Kim", true, 1)
	withProfile(store, 2, "Lee", false, 1)

	resolver := match.NewResolver(store)
	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, uint(1), pairs[0].Man.UserID)
	assert.Equal(t, uint(2), pairs[0].Woman.UserID)
}

// TestResolveAllRoleAssignment checks that the gender flag, not edge
// direction, decides the man/woman sides.
func TestResolveAllRoleAssignment(t *testing.T) {
	store := new(MockStore)
	// User 2 (woman) proposed first; user 1 (man) reciprocated.
	store.On("ProposalsForParty", uint(10)).
		Return(edges(10, [2]uint{2, 1}, [2]uint{1, 2}), nil)
	withProfile(store, 1, "Kim", true, 2)
	withProfile(store, 2, "Lee", false, 2)

	resolver := match.NewResolver(store)
	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, uint(1), pairs[0].Man.UserID)
	assert.Equal(t, "Kim", pairs[0].Man.Name)
	assert.Equal(t, uint(2), pairs[0].Woman.UserID)
	assert.Equal(t, "Lee", pairs[0].Woman.Name)
	assert.Equal(t, 2, pairs[0].Man.Team)
	assert.Equal(t, 2, pairs[0].Woman.Team)
}

// TestResolveAllSkipsSelfEdges verifies a self-proposal can never pair.
func TestResolveAllSkipsSelfEdges(t *testing.T) {
	store := new(MockStore)
	store.On("ProposalsForParty", uint(10)).
		Return(edges(10, [2]uint{1, 1}, [2]uint{1, 1}), nil)

	resolver := match.NewResolver(store)
	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

// TestResolveAllMultiplePairs verifies independent pairs all come out.
func TestResolveAllMultiplePairs(t *testing.T) {
	store := new(MockStore)
	store.On("ProposalsForParty", uint(10)).Return(edges(10,
		[2]uint{1, 2},
		[2]uint{3, 4},
		[2]uint{2, 1},
		[2]uint{4, 3},
	), nil)
	withProfile(store, 1, "Kim", true, 1)
	withProfile(store, 2, "Lee", false, 1)
	withProfile(store, 3, "Park", false, 2)
	withProfile(store, 4, "Choi", true, 2)

	resolver := match.NewResolver(store)
	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	assert.Equal(t, uint(1), pairs[0].Man.UserID)
	assert.Equal(t, uint(2), pairs[0].Woman.UserID)
	assert.Equal(t, uint(4), pairs[1].Man.UserID)
	assert.Equal(t, uint(3), pairs[1].Woman.UserID)
}

// TestResolveAllEmptyParty verifies an edgeless party resolves cleanly.
func TestResolveAllEmptyParty(t *testing.T) {
	store := new(MockStore)
	store.On("ProposalsForParty", uint(10)).Return([]models.MatchProposal{}, nil)

	resolver := match.NewResolver(store)
	pairs, err := resolver.ResolveAll(10)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
