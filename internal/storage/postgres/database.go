package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Таблицы. Списки ссылок пользователя (posts, comments, followers, followings)
// и поста (comments) не хранятся отдельно, а выводятся из внешних ключей.

type userRow struct {
	ID        string `gorm:"primary_key"`
	Name      string
	Email     string `gorm:"unique_index"`
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type postRow struct {
	ID        string `gorm:"primary_key"`
	Tweet     string
	CreatedBy string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postRow) TableName() string { return "posts" }

type commentRow struct {
	ID        string `gorm:"primary_key"`
	Comment   string
	PostID    string `gorm:"index"`
	CreatedBy string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (commentRow) TableName() string { return "comments" }

type followRow struct {
	FollowerID  string `gorm:"primary_key"`
	FollowingID string `gorm:"primary_key"`
	CreatedAt   time.Time
}

func (followRow) TableName() string { return "follows" }

// Open подключается к базе ("postgres" или "sqlite3")
func Open(dialect, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	log.Printf("Successfully connected to the %s database.", dialect)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&userRow{}, &postRow{}, &commentRow{}, &followRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой данных
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}
