package model

import "time"

// Player 玩家账号模型
type Player struct {
	PlayerID     string    `gorm:"primaryKey;column:player_id"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Player) TableName() string { return "player" }
