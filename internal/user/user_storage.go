package user

import (
	"context"

	"github.com/VitaminP8/flock/models"
)

// UserStorage хранит пользователей и их списки ссылок (posts, comments, followers, followings)
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id models.ID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []models.ID) ([]*models.User, error)

	AddPost(ctx context.Context, userID, postID models.ID) error
	RemovePost(ctx context.Context, userID, postID models.ID) error
	AddComment(ctx context.Context, userID, commentID models.ID) error
	RemoveComment(ctx context.Context, userID, commentID models.ID) error

	// AddFollowing/AddFollower меняют только одну сторону связи, вторую резолвер пишет отдельно
	AddFollowing(ctx context.Context, userID, targetID models.ID) error
	RemoveFollowing(ctx context.Context, userID, targetID models.ID) error
	AddFollower(ctx context.Context, userID, followerID models.ID) error
	RemoveFollower(ctx context.Context, userID, followerID models.ID) error
}
