package model

import "time"

// Word is a dictionary entry. Uniqueness is enforced on the normalized
// (lowercased, trimmed) form of the text, not the raw text.
type Word struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text        string    `gorm:"not null;index" json:"text"`
	Normalized  string    `gorm:"not null;uniqueIndex" json:"normalized"`
	Translation string    `json:"translation"`
	IPA         string    `gorm:"column:ipa" json:"ipa"`
	Phonetic    string    `json:"phonetic"`
	Level       string    `json:"level"` // "beginner" or "intermediate"
	Type        string    `json:"type"`  // noun, verb, etc.
	Domain      string    `json:"domain"`
	Example     string    `gorm:"type:text" json:"example"`
	Notes       string    `gorm:"type:text" json:"notes"`
	AudioURL    string    `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Word) TableName() string {
	return "words"
}
