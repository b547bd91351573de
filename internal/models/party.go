package models

import (
	"time"

	"github.com/lib/pq"
)

// Party is a scheduled social event at an accommodation. Staff open and
// close it and start the matching round; MatchStartTime stays nil until
// matching has been started.
type Party struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AccommodationID uint           `gorm:"index" json:"accommodation_id"`
	PartyDate       time.Time      `json:"party_date"`
	PartyOpen       bool           `json:"party_open"`
	MatchStartTime  *time.Time     `json:"matchStartTime"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
}
