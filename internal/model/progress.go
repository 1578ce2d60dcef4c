package model

import "time"

// Progress statuses. Last status wins: a write for an existing
// (user, word) pair replaces the previous status.
const (
	StatusUnlearned = "unlearned"
	StatusLearned   = "learned"
	StatusReview    = "review"
	StatusStarred   = "starred"
)

// ValidStatus reports whether s is one of the four progress statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnlearned, StatusLearned, StatusReview, StatusStarred:
		return true
	}
	return false
}

type UserWordProgress struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_progress_user_word" json:"user_id"`
	WordID    int64     `gorm:"not null;uniqueIndex:idx_progress_user_word" json:"word_id"`
	Status    string    `gorm:"not null;size:20" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserWordProgress) TableName() string {
	return "user_word_progress"
}

// ProgressStats aggregates a user's per-status counts.
type ProgressStats struct {
	LearnedCount   int64 `json:"learned_count"`
	ReviewCount    int64 `json:"review_count"`
	StarredCount   int64 `json:"starred_count"`
	UnlearnedCount int64 `json:"unlearned_count"`
	TotalWords     int64 `json:"total_words"`
}

// LearnedWord is the compact projection returned by the learned-words listing.
type LearnedWord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}
