package models

import (
	"time"
)

type GameType string

const (
	GamePUBG     GameType = "pubg"
	GameFreeFire GameType = "freefire"
)

// GameTypes lists the supported games in display order.
var GameTypes = []GameType{GamePUBG, GameFreeFire}

func (g GameType) Valid() bool {
	return g == GamePUBG || g == GameFreeFire
}

type TeamStatus string

const (
	StatusPending  TeamStatus = "pending"
	StatusApproved TeamStatus = "approved"
	StatusRejected TeamStatus = "rejected"
)

func (s TeamStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Team struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	GameType          GameType   `gorm:"column:game_type;not null;default:pubg" json:"gameType"`
	TeamName          string     `gorm:"column:team_name;not null" json:"teamName"`
	LeaderName        string     `gorm:"column:leader_name;not null" json:"leaderName"`
	LeaderWhatsapp    string     `gorm:"column:leader_whatsapp;not null" json:"leaderWhatsapp"`
	LeaderPlayerID    string     `gorm:"column:leader_player_id;not null" json:"leaderPlayerId"`
	Player2Name       string     `gorm:"column:player2_name;not null" json:"player2Name"`
	Player2PlayerID   string     `gorm:"column:player2_player_id;not null" json:"player2PlayerId"`
	Player3Name       string     `gorm:"column:player3_name;not null" json:"player3Name"`
	Player3PlayerID   string     `gorm:"column:player3_player_id;not null" json:"player3PlayerId"`
	Player4Name       string     `gorm:"column:player4_name;not null" json:"player4Name"`
	Player4PlayerID   string     `gorm:"column:player4_player_id;not null" json:"player4PlayerId"`
	YoutubeVote       string     `gorm:"column:youtube_vote;not null;default:no" json:"youtubeVote"`
	TransactionID     string     `gorm:"column:transaction_id;not null" json:"transactionId"`
	PaymentScreenshot string     `gorm:"column:payment_screenshot;not null" json:"paymentScreenshot"`
	AgreedToTerms     int        `gorm:"column:agreed_to_terms;not null;default:1" json:"agreedToTerms"`
	Status            TeamStatus `gorm:"column:status;not null;default:pending" json:"status"`
	AdminNotes        *string    `gorm:"column:admin_notes" json:"adminNotes"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null" json:"updatedAt"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Team) TableName() string {
	return "teams"
}

// Notes returns the admin notes, or "" when none were written.
func (t Team) Notes() string {
	if t.AdminNotes == nil {
		return ""
	}
	return *t.AdminNotes
}
