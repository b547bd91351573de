package models

import "time"

// ChatFrame is the JSON frame delivered to room subscribers after a
// message has been persisted. ChatID carries the server-assigned id so
// live delivery and later history paging agree.
type ChatFrame struct {
	UserID     uint   `json:"user_id"`
	ChatRoomID uint   `json:"chatRoom_id"`
	ChatID     uint   `json:"chat_id"`
	Content    string `json:"content"`
}

// ChatEntry is one message in a history page, chronological order.
type ChatEntry struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Contents string    `json:"contents"`
	Date     time.Time `json:"date"`
}

// InboxEntry is one room in a user's inbox view: the other member, the
// latest message and the unread badge count.
type InboxEntry struct {
	ID          uint      `json:"id"`
	UserID2     uint      `json:"user_id_2"`
	Gender      bool      `json:"gender"`
	Team        int       `json:"team"`
	Name        string    `json:"name"`
	Contents    string    `json:"contents"`
	Date        time.Time `json:"date"`
	UnreadCount int64     `json:"unreadCount"`
}

// Candidate is one selectable user on the match selection screen.
type Candidate struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Gender bool   `json:"gender"`
	Team   int    `json:"team"`
}
