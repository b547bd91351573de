package chathub_test

import (
	"sync"
	"time"

	"partygo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) AppendChat(roomID, senderID uint, body string) (*models.Chat, error) {
	args := m.Called(roomID, senderID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) PageChats(roomID uint, beforeID *uint, limit int) ([]models.Chat, error) {
	args := m.Called(roomID, beforeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockStorage) LatestChat(roomID uint) (*models.Chat, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) MarkRead(roomID, userID uint, chatID *uint) error {
	args := m.Called(roomID, userID, chatID)
	return args.Error(0)
}

func (m *MockStorage) UnreadCount(roomID, userID uint) (int64, error) {
	args := m.Called(roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetOrCreateRoom(partyID, userA, userB uint) (*models.ChatRoom, error) {
	args := m.Called(partyID, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetRoomByID(roomID uint) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) ListRoomsForUser(partyID, userID uint) ([]models.InboxEntry, error) {
	args := m.Called(partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InboxEntry), args.Error(1)
}

func (m *MockStorage) SaveProposal(partyID, fromUser, toUser uint) error {
	args := m.Called(partyID, fromUser, toUser)
	return args.Error(0)
}

func (m *MockStorage) LatestProposalByUser(partyID, userID uint) (*models.MatchProposal, error) {
	args := m.Called(partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchProposal), args.Error(1)
}

func (m *MockStorage) ProposalsForParty(partyID uint) ([]models.MatchProposal, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchProposal), args.Error(1)
}

func (m *MockStorage) SaveParty(party *models.Party) error {
	args := m.Called(party)
	return args.Error(0)
}

func (m *MockStorage) SetPartyOpen(partyID uint, open bool) error {
	args := m.Called(partyID, open)
	return args.Error(0)
}

func (m *MockStorage) StartMatch(partyID uint) (time.Time, error) {
	args := m.Called(partyID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockStorage) GetMatchStartTime(partyID uint) (*time.Time, error) {
	args := m.Called(partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockStorage) GetProfile(userID uint) (*models.UserProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockStorage) GetTeam(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) ListCandidates(partyID, userID uint) ([]models.Candidate, error) {
	args := m.Called(partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockStorage) PublishFrame(roomID uint, frame models.ChatFrame) error {
	args := m.Called(roomID, frame)
	return args.Error(0)
}

func (m *MockStorage) SubscribeFrames() *redis.PubSub {
	args := m.Called()
	return args.Get(0).(*redis.PubSub)
}

// MockClient is a hand-written chathub.Client for registry and hub tests.
// Frames delivered to it land on RecvChannel.
type MockClient struct {
	userID   uint
	handleID string
	roomID   uint

	RecvChannel chan models.ChatFrame

	mu     sync.Mutex
	closed bool
}

func newMockClient(handleID string, userID, roomID uint) *MockClient {
	return &MockClient{
		userID:      userID,
		handleID:    handleID,
		roomID:      roomID,
		RecvChannel: make(chan models.ChatFrame, 10),
	}
}

// newStaleClient returns a client whose send buffer is always full, so any
// broadcast to it takes the eviction path.
func newStaleClient(handleID string, userID, roomID uint) *MockClient {
	c := newMockClient(handleID, userID, roomID)
	c.RecvChannel = make(chan models.ChatFrame)
	return c
}

func (c *MockClient) GetUserID() uint     { return c.userID }
func (c *MockClient) GetHandleID() string { return c.handleID }
func (c *MockClient) GetRoomID() uint     { return c.roomID }

func (c *MockClient) GetSendChannel() chan<- models.ChatFrame { return c.RecvChannel }

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *MockClient) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
