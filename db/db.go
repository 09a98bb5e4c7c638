package db

import (
	"fmt"
	"log"
	"os"

	"puffpoint-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.ListMember{},
		&models.ListInvite{},
		&models.InviteCounter{},
		&models.SpotPhoto{},
	); err != nil {
		return err
	}

	// 审核队列按状态翻页
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_pending_created_desc
	  ON %s (created_at DESC)
	  WHERE moderation_status = 'pending';
	`, models.PhotoTable, models.PhotoTable)).Error; err != nil {
		return err
	}

	return nil
}
