package models

import "time"

// Chat is one message in a room. The database-assigned primary key doubles
// as the sort key and the read-pointer unit; clients never supply ids.
type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ChatRoomID uint      `gorm:"index:idx_chat_room" json:"chatRoom_id"`
	UserID     uint      `json:"user_id"`
	Contents   string    `gorm:"type:text" json:"contents"`
	Date       time.Time `json:"date"`
}

// ChatReadStatus holds one read pointer per (room, user). A missing row
// means nothing has been read yet. The stored id is whatever the client
// last acknowledged; it is allowed to move backward.
type ChatReadStatus struct {
	ID             uint  `gorm:"primaryKey"`
	ChatRoomID     uint  `gorm:"uniqueIndex:idx_read_room_user"`
	UserID         uint  `gorm:"uniqueIndex:idx_read_room_user"`
	LastReadChatID *uint
	Date           time.Time
}
