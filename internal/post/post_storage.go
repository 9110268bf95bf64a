package post

import (
	"context"

	"github.com/VitaminP8/flock/models"
)

type PostStorage interface {
	CreatePost(ctx context.Context, createdBy models.ID, tweet string) (*models.Post, error)
	GetPostByID(ctx context.Context, id models.ID) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []models.ID) ([]*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	UpdatePostTweet(ctx context.Context, id models.ID, tweet string) (*models.Post, error)
	DeletePostByID(ctx context.Context, id models.ID) error

	AddComment(ctx context.Context, postID, commentID models.ID) error
	RemoveComment(ctx context.Context, postID, commentID models.ID) error
}
