package model

import (
	"time"

	"gorm.io/datatypes"
)

// NewsItem is one curated positive-news story. Items are deduplicated on
// source_url and never overwritten once present.
type NewsItem struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleEnglish   string         `json:"title_english"`
	TitleMaori     string         `json:"title_maori"`
	SummaryEnglish string         `gorm:"type:text" json:"summary_english"`
	SummaryMaori   string         `gorm:"type:text" json:"summary_maori"`
	PublishedDate  time.Time      `json:"published_date"`
	SourceURL      string         `gorm:"not null;uniqueIndex;size:2048" json:"source_url"`
	Source         string         `json:"source"`
	ImageURLs      datatypes.JSON `json:"image_urls"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (NewsItem) TableName() string {
	return "news_items"
}
