package main

import (
	"context"
	"fmt"
	"log"

	"github.com/VitaminP8/flock/internal/comment"
	"github.com/VitaminP8/flock/internal/config"
	"github.com/VitaminP8/flock/internal/post"
	"github.com/VitaminP8/flock/internal/storage/memory"
	"github.com/VitaminP8/flock/internal/storage/mongodb"
	"github.com/VitaminP8/flock/internal/storage/postgres"
	"github.com/VitaminP8/flock/internal/user"
	"github.com/jinzhu/gorm"
)

const (
	storageMemory   = "memory"
	storageMongo    = "mongo"
	storagePostgres = "postgres"
	storageSQLite   = "sqlite"
)

type stores struct {
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	close    func()
}

func openStores(ctx context.Context, kind string, cfg *config.Config) (*stores, error) {
	switch kind {
	case storageMemory:
		log.Println("Используется in-memory хранилище")
		return &stores{
			users:    memory.NewUserMemoryStorage(),
			posts:    memory.NewPostMemoryStorage(),
			comments: memory.NewCommentMemoryStorage(),
			close:    func() {},
		}, nil

	case storageMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is not set")
		}
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = mongodb.Disconnect(ctx, client)
			return nil, err
		}

		log.Printf("Используется MongoDB хранилище (%s)", cfg.MongoDB)
		return &stores{
			users:    mongodb.NewUserMongoStorage(db),
			posts:    mongodb.NewPostMongoStorage(db),
			comments: mongodb.NewCommentMongoStorage(db),
			close: func() {
				if err := mongodb.Disconnect(context.Background(), client); err != nil {
					log.Printf("mongo disconnect: %v", err)
				}
			},
		}, nil

	case storagePostgres, storageSQLite:
		db, err := openSQL(kind, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			_ = postgres.Close(db)
			return nil, err
		}

		log.Printf("Используется %s хранилище", kind)
		return &stores{
			users:    postgres.NewUserPostgresStorage(db),
			posts:    postgres.NewPostPostgresStorage(db),
			comments: postgres.NewCommentPostgresStorage(db),
			close: func() {
				if err := postgres.Close(db); err != nil {
					log.Printf("close database: %v", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища: %s", kind)
	}
}

func openSQL(kind string, cfg *config.Config) (*gorm.DB, error) {
	if kind == storageSQLite {
		return postgres.Open("sqlite3", cfg.SQLitePath)
	}
	return postgres.Open("postgres", config.PostgresDSN())
}
