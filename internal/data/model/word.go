package model

// Word 词库词条模型
type Word struct {
	WordID   int64  `gorm:"primaryKey;autoIncrement;column:word_id"`
	Word     string `gorm:"column:word"`
	Category string `gorm:"column:category;index"`
}

func (Word) TableName() string { return "word_bank" }
