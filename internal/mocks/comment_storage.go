package mocks

import (
	"context"

	"github.com/VitaminP8/flock/internal/comment"
	"github.com/VitaminP8/flock/models"
)

type MockCommentStorage struct {
	comment.CommentStorage
	failures
}

func NewMockCommentStorage(inner comment.CommentStorage) *MockCommentStorage {
	return &MockCommentStorage{CommentStorage: inner}
}

func (m *MockCommentStorage) DeleteCommentByID(ctx context.Context, id models.ID) error {
	if err := m.check("DeleteCommentByID"); err != nil {
		return err
	}
	return m.CommentStorage.DeleteCommentByID(ctx, id)
}
