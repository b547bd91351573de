package models

// ChatRoom is a two-party private channel scoped to a party.
// The member pair is stored normalized (UserLowID < UserHighID) so that
// creating a room for (a, b) and (b, a) resolves to the same row; the
// composite unique index makes room creation idempotent.
type ChatRoom struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PartyID    uint `gorm:"uniqueIndex:idx_room_pair" json:"party_id"`
	UserLowID  uint `gorm:"uniqueIndex:idx_room_pair" json:"user_low_id"`
	UserHighID uint `gorm:"uniqueIndex:idx_room_pair" json:"user_high_id"`
}

// Member reports whether the given user belongs to the room.
func (r *ChatRoom) Member(userID uint) bool {
	return userID == r.UserLowID || userID == r.UserHighID
}

// Other returns the id of the other member of the room.
func (r *ChatRoom) Other(userID uint) uint {
	if userID == r.UserLowID {
		return r.UserHighID
	}
	return r.UserLowID
}
