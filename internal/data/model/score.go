package model

import "time"

// Score 单局成绩模型
type Score struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PlayerID   string    `gorm:"column:player_id;index"`
	PlayerName string    `gorm:"column:player_name"`
	Score      int       `gorm:"column:score"`
	WordCount  int       `gorm:"column:word_count"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Score) TableName() string { return "score" }
