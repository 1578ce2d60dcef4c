package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tereohoa/api/internal/auth"
	"github.com/tereohoa/api/internal/config"
	"github.com/tereohoa/api/internal/database"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/service"
	"gorm.io/gorm"
)

func main() {
	adminEmail := flag.String("admin-email", "", "Email for the initial admin account")
	adminPassword := flag.String("admin-password", "", "Password for the initial admin account")
	wordsPath := flag.String("words", "", "Optional path to a starter word list (word<TAB>translation per line)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if *adminEmail != "" && *adminPassword != "" {
		if err := seedAdmin(db, *adminEmail, *adminPassword); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	}

	if *wordsPath != "" {
		inserted, skipped, err := seedWords(db, *wordsPath)
		if err != nil {
			log.Fatalf("Failed to seed words: %v", err)
		}
		log.Printf("Word seeding complete. Inserted: %d, skipped: %d", inserted, skipped)
	}
}

func seedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != model.RoleAdmin {
			if err := db.Model(&existing).Update("role", model.RoleAdmin).Error; err != nil {
				return err
			}
			log.Printf("Promoted existing user %s to admin", email)
		} else {
			log.Printf("Admin %s already exists, skipping", email)
		}
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := model.User{
		Email:          email,
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Created admin account %s", email)
	return nil
}

// seedWords inserts word/translation pairs directly, bypassing the AI
// pipeline. Lines are TAB separated; blank lines and # comments are skipped.
func seedWords(db *gorm.DB, path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	inserted, skipped := 0, 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		text := strings.TrimSpace(parts[0])
		translation := ""
		if len(parts) == 2 {
			translation = strings.TrimSpace(parts[1])
		}
		normalized := service.Normalize(text)
		if normalized == "" {
			skipped++
			continue
		}

		var count int64
		db.Model(&model.Word{}).Where("normalized = ?", normalized).Count(&count)
		if count > 0 {
			skipped++
			continue
		}

		word := model.Word{
			Text:        text,
			Normalized:  normalized,
			Translation: translation,
			Level:       "beginner",
		}
		if err := db.Create(&word).Error; err != nil {
			log.Printf("Skipping %q: %v", text, err)
			skipped++
			continue
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return inserted, skipped, err
	}
	return inserted, skipped, nil
}
