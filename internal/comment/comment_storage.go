package comment

import (
	"context"

	"github.com/VitaminP8/flock/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, createdBy, postID models.ID, text string) (*models.Comment, error)
	GetCommentByID(ctx context.Context, id models.ID) (*models.Comment, error)
	GetCommentsByIDs(ctx context.Context, ids []models.ID) ([]*models.Comment, error)
	UpdateCommentText(ctx context.Context, id models.ID, text string) (*models.Comment, error)
	DeleteCommentByID(ctx context.Context, id models.ID) error
}
