package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tereohoa/api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database keeps every pooled connection on the same
	// store while isolating tests from each other.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Word{},
		&model.UserWordProgress{},
		&model.NewsItem{},
	))
	return db
}
