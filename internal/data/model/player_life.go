package model

import "time"

// PlayerLife 玩家体力模型
// RecoveryQueue 为恢复计时起点(epoch 毫秒)的 JSON 数组；
// Version 用于乐观并发控制，每次更新加一
type PlayerLife struct {
	PlayerID      string    `gorm:"primaryKey;column:player_id"`
	Lives         int       `gorm:"column:lives"`
	RecoveryQueue string    `gorm:"column:recovery_queue;type:text"`
	Version       int64     `gorm:"column:version"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (PlayerLife) TableName() string { return "player_life" }
