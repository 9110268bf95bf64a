package mocks

import (
	"context"

	"github.com/VitaminP8/flock/internal/post"
	"github.com/VitaminP8/flock/models"
)

type MockPostStorage struct {
	post.PostStorage
	failures
}

func NewMockPostStorage(inner post.PostStorage) *MockPostStorage {
	return &MockPostStorage{PostStorage: inner}
}

func (m *MockPostStorage) DeletePostByID(ctx context.Context, id models.ID) error {
	if err := m.check("DeletePostByID"); err != nil {
		return err
	}
	return m.PostStorage.DeletePostByID(ctx, id)
}

func (m *MockPostStorage) AddComment(ctx context.Context, postID, commentID models.ID) error {
	if err := m.check("AddComment"); err != nil {
		return err
	}
	return m.PostStorage.AddComment(ctx, postID, commentID)
}

func (m *MockPostStorage) RemoveComment(ctx context.Context, postID, commentID models.ID) error {
	if err := m.check("RemoveComment"); err != nil {
		return err
	}
	return m.PostStorage.RemoveComment(ctx, postID, commentID)
}
