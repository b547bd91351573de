package storage

import (
	"errors"
	"log"

	"partygo/backend/internal/models"

	"gorm.io/gorm"
)

// normalizePair orders an unordered user pair into the canonical room key.
func normalizePair(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// GetOrCreateRoom resolves the room for an unordered user pair within a
// party, creating it on first use. Repeated calls with (a, b) or (b, a)
// return the same room; the unique index on the normalized key keeps
// concurrent creation from producing duplicates.
func (s *Service) GetOrCreateRoom(partyID, userA, userB uint) (*models.ChatRoom, error) {
	low, high := normalizePair(userA, userB)

	room := models.ChatRoom{PartyID: partyID, UserLowID: low, UserHighID: high}
	err := s.DB.
		Where("party_id = ? AND user_low_id = ? AND user_high_id = ?", partyID, low, high).
		FirstOrCreate(&room).Error
	if err != nil {
		log.Printf("ERROR: failed to resolve room for party %d pair (%d,%d): %v", partyID, low, high, err)
		return nil, err
	}
	return &room, nil
}

// GetRoomByID returns a room, nil when it does not exist.
func (s *Service) GetRoomByID(roomID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser builds the user's inbox: every room they belong to in
// the party, with the other member's profile, the latest message and the
// unread count.
func (s *Service) ListRoomsForUser(partyID, userID uint) ([]models.InboxEntry, error) {
	var rooms []models.ChatRoom
	err := s.DB.
		Where("party_id = ?", partyID).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.InboxEntry, 0, len(rooms))
	for _, room := range rooms {
		otherID := room.Other(userID)

		entry := models.InboxEntry{ID: room.ID, UserID2: otherID}

		profile, err := s.GetProfile(otherID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			entry.Name = profile.Name
			entry.Gender = profile.Gender
		}

		team, err := s.GetTeam(otherID)
		if err != nil {
			return nil, err
		}
		entry.Team = team

		latest, err := s.LatestChat(room.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			entry.Contents = latest.Contents
			entry.Date = latest.Date
		}

		unread, err := s.UnreadCount(room.ID, userID)
		if err != nil {
			return nil, err
		}
		entry.UnreadCount = unread

		entries = append(entries, entry)
	}
	return entries, nil
}
