package model

import "time"

// PlayerMembership 玩家会员模型
type PlayerMembership struct {
	PlayerID  string     `gorm:"primaryKey;column:player_id"`
	Type      string     `gorm:"column:type"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (PlayerMembership) TableName() string { return "player_membership" }
