package storage

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"partygo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppendChat persists a message and returns it with the server-assigned
// id. The insert must succeed before the frame is broadcast so that later
// history pages show exactly what live subscribers received.
func (s *Service) AppendChat(roomID, senderID uint, body string) (*models.Chat, error) {
	chat := models.Chat{
		ChatRoomID: roomID,
		UserID:     senderID,
		Contents:   body,
		Date:       time.Now(),
	}
	if err := s.DB.Create(&chat).Error; err != nil {
		log.Printf("ERROR: failed to save message for room %d: %v", roomID, err)
		return nil, err
	}
	return &chat, nil
}

// PageChats returns up to limit messages with id below beforeID (the most
// recent ones when beforeID is nil). The scan runs newest-first so the
// limit bounds it; the result is reversed to chronological order before
// being returned.
func (s *Service) PageChats(roomID uint, beforeID *uint, limit int) ([]models.Chat, error) {
	q := s.DB.Where("chat_room_id = ?", roomID)
	if beforeID != nil {
		q = q.Where("id < ?", *beforeID)
	}

	var chats []models.Chat
	if err := q.Order("id desc").Limit(limit).Find(&chats).Error; err != nil {
		log.Printf("ERROR: failed to page messages for room %d: %v", roomID, err)
		return nil, err
	}
	return lo.Reverse(chats), nil
}

// LatestChat returns the newest message in a room, nil when the room has
// no messages yet.
func (s *Service) LatestChat(roomID uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where("chat_room_id = ?", roomID).Order("id desc").First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// MarkRead upserts the user's read pointer for the room in one atomic
// statement. No monotonicity is enforced: the stored id is whatever the
// client acknowledged, even if it is lower than the previous value.
func (s *Service) MarkRead(roomID, userID uint, chatID *uint) error {
	status := models.ChatReadStatus{
		ChatRoomID:     roomID,
		UserID:         userID,
		LastReadChatID: chatID,
		Date:           time.Now(),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_room_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_chat_id", "date"}),
	}).Create(&status).Error
}

// UnreadCount counts the messages in the room past the user's read pointer
// (every message when no pointer exists), excluding the user's own.
func (s *Service) UnreadCount(roomID, userID uint) (int64, error) {
	q := s.DB.Model(&models.Chat{}).
		Where("chat_room_id = ?", roomID).
		Where("user_id <> ?", userID)

	var status models.ChatReadStatus
	err := s.DB.Where("chat_room_id = ? AND user_id = ?", roomID, userID).First(&status).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if err == nil && status.LastReadChatID != nil {
		q = q.Where("id > ?", *status.LastReadChatID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

const frameChannelPrefix = "chat:room:"

// PublishFrame publishes a persisted frame to the room's Redis channel so
// every server instance can fan it out to its local connections.
func (s *Service) PublishFrame(roomID uint, frame models.ChatFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	channel := frameChannelPrefix + strconv.FormatUint(uint64(roomID), 10)
	return s.Redis.Publish(s.Ctx, channel, payload).Err()
}

// SubscribeFrames subscribes to every room's frame channel.
func (s *Service) SubscribeFrames() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, frameChannelPrefix+"*")
}
