package mocks

import (
	"context"

	"github.com/VitaminP8/flock/internal/user"
	"github.com/VitaminP8/flock/models"
)

// MockUserStorage оборачивает настоящее хранилище и позволяет
// заставить отдельные методы вернуть ошибку
type MockUserStorage struct {
	user.UserStorage
	failures
}

func NewMockUserStorage(inner user.UserStorage) *MockUserStorage {
	return &MockUserStorage{UserStorage: inner}
}

func (m *MockUserStorage) AddPost(ctx context.Context, userID, postID models.ID) error {
	if err := m.check("AddPost"); err != nil {
		return err
	}
	return m.UserStorage.AddPost(ctx, userID, postID)
}

func (m *MockUserStorage) RemovePost(ctx context.Context, userID, postID models.ID) error {
	if err := m.check("RemovePost"); err != nil {
		return err
	}
	return m.UserStorage.RemovePost(ctx, userID, postID)
}

func (m *MockUserStorage) AddComment(ctx context.Context, userID, commentID models.ID) error {
	if err := m.check("AddComment"); err != nil {
		return err
	}
	return m.UserStorage.AddComment(ctx, userID, commentID)
}

func (m *MockUserStorage) RemoveComment(ctx context.Context, userID, commentID models.ID) error {
	if err := m.check("RemoveComment"); err != nil {
		return err
	}
	return m.UserStorage.RemoveComment(ctx, userID, commentID)
}

func (m *MockUserStorage) AddFollower(ctx context.Context, userID, followerID models.ID) error {
	if err := m.check("AddFollower"); err != nil {
		return err
	}
	return m.UserStorage.AddFollower(ctx, userID, followerID)
}

func (m *MockUserStorage) RemoveFollower(ctx context.Context, userID, followerID models.ID) error {
	if err := m.check("RemoveFollower"); err != nil {
		return err
	}
	return m.UserStorage.RemoveFollower(ctx, userID, followerID)
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := m.check("GetUserByEmail"); err != nil {
		return nil, err
	}
	return m.UserStorage.GetUserByEmail(ctx, email)
}
