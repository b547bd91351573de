package models

import "time"

// User represents a participant or staff identity. A user belongs to at
// most one party at a time; PartyID stays nil until staff assigns one.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PartyID    *uint     `gorm:"index" json:"party_id"`
	Username   string    `gorm:"size:255"`
	Provider   string    `gorm:"size:255"` // social-login provider, e.g. "kakao"
	ProviderID string    `gorm:"size:255"`
	Nickname   string    `gorm:"size:255" json:"nickname"`
	Role       string    `gorm:"size:50" json:"role"` // "user", "manager", "owner"
	Date       time.Time `gorm:"autoCreateTime"`
}

// UserProfile holds the personal attributes exposed to matched partners.
// Gender decides match roles: true maps to the "man" side of a pair.
type UserProfile struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"uniqueIndex"`
	Name   string `gorm:"size:255"`
	Phone  string `gorm:"size:255"`
	Gender bool
}

// PartyUserInfo is per-party participation state: the team the user was
// assigned to and whether they opted into the party's matching round.
type PartyUserInfo struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"uniqueIndex"`
	Team    int
	PartyOn bool
}
