package storage

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"partygo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	// Messages and read tracking
	AppendChat(roomID, senderID uint, body string) (*models.Chat, error)
	PageChats(roomID uint, beforeID *uint, limit int) ([]models.Chat, error)
	LatestChat(roomID uint) (*models.Chat, error)
	MarkRead(roomID, userID uint, chatID *uint) error
	UnreadCount(roomID, userID uint) (int64, error)

	// Rooms
	GetOrCreateRoom(partyID, userA, userB uint) (*models.ChatRoom, error)
	GetRoomByID(roomID uint) (*models.ChatRoom, error)
	ListRoomsForUser(partyID, userID uint) ([]models.InboxEntry, error)

	// Match graph
	SaveProposal(partyID, fromUser, toUser uint) error
	LatestProposalByUser(partyID, userID uint) (*models.MatchProposal, error)
	ProposalsForParty(partyID uint) ([]models.MatchProposal, error)

	// Party and profiles
	SaveParty(party *models.Party) error
	SetPartyOpen(partyID uint, open bool) error
	StartMatch(partyID uint) (time.Time, error)
	GetMatchStartTime(partyID uint) (*time.Time, error)
	GetProfile(userID uint) (*models.UserProfile, error)
	GetTeam(userID uint) (int, error)
	ListCandidates(partyID, userID uint) ([]models.Candidate, error)

	// Realtime fan-out
	PublishFrame(roomID uint, frame models.ChatFrame) error
	SubscribeFrames() *redis.PubSub
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

const matchStartKeyPrefix = "party:matchstart:"

func matchStartKey(partyID uint) string {
	return matchStartKeyPrefix + strconv.FormatUint(uint64(partyID), 10)
}

// SaveParty persists a party in PostgreSQL.
func (s *Service) SaveParty(party *models.Party) error {
	return s.DB.Save(party).Error
}

// SetPartyOpen flips the staff open/close flag on a party.
func (s *Service) SetPartyOpen(partyID uint, open bool) error {
	res := s.DB.Model(&models.Party{}).
		Where("id = ?", partyID).
		Update("party_open", open)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StartMatch stamps the party's matching round start time and caches it in
// Redis so clients polling the countdown do not hit PostgreSQL.
func (s *Service) StartMatch(partyID uint) (time.Time, error) {
	now := time.Now()
	res := s.DB.Model(&models.Party{}).
		Where("id = ?", partyID).
		Update("match_start_time", now)
	if res.Error != nil {
		return time.Time{}, res.Error
	}
	if res.RowsAffected == 0 {
		return time.Time{}, gorm.ErrRecordNotFound
	}

	if s.Redis != nil {
		if err := s.Redis.Set(s.Ctx, matchStartKey(partyID), now.Format(time.RFC3339Nano), 24*time.Hour).Err(); err != nil {
			// Cache only; PostgreSQL remains the source of truth.
			log.Printf("WARNING: failed to cache match start for party %d: %v", partyID, err)
		}
	}
	return now, nil
}

// GetMatchStartTime returns the matching round start time, nil when the
// round has not been started. The Redis cache is checked first.
func (s *Service) GetMatchStartTime(partyID uint) (*time.Time, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(s.Ctx, matchStartKey(partyID)).Result()
		if err == nil {
			if ts, perr := time.Parse(time.RFC3339Nano, val); perr == nil {
				return &ts, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("WARNING: redis lookup failed for party %d: %v", partyID, err)
		}
	}

	var party models.Party
	if err := s.DB.Select("match_start_time").First(&party, partyID).Error; err != nil {
		return nil, err
	}
	return party.MatchStartTime, nil
}

// GetProfile returns the user's profile, nil when none exists.
func (s *Service) GetProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTeam returns the user's team assignment for their party, 0 when the
// user has not been assigned to a team.
func (s *Service) GetTeam(userID uint) (int, error) {
	var info models.PartyUserInfo
	err := s.DB.Where("user_id = ?", userID).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return info.Team, nil
}

// ListCandidates returns the users selectable on the match screen: same
// party, opted in, and on the requesting user's team.
func (s *Service) ListCandidates(partyID, userID uint) ([]models.Candidate, error) {
	team, err := s.GetTeam(userID)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	err = s.DB.Model(&models.User{}).
		Select("users.id, user_profiles.name, user_profiles.gender, party_user_infos.team").
		Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
		Joins("LEFT JOIN party_user_infos ON party_user_infos.user_id = users.id").
		Where("users.party_id = ?", partyID).
		Where("party_user_infos.party_on = ?", true).
		Where("party_user_infos.team = ?", team).
		Where("users.id <> ?", userID).
		Order("users.id desc").
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
