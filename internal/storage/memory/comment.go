package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[models.ID]*models.Comment
}

func NewCommentMemoryStorage() *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[models.ID]*models.Comment),
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, createdBy, postID models.ID, text string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	comment := &models.Comment{
		ID:        models.ID(uuid.NewString()),
		Comment:   text,
		CreatedBy: createdBy,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.comments[comment.ID] = comment
	clone := *comment
	return &clone, nil
}

func (s *CommentMemoryStorage) GetCommentByID(ctx context.Context, id models.ID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, fmt.Errorf("comment %s: %w", id, storage.ErrNotFound)
	}

	clone := *comment
	return &clone, nil
}

func (s *CommentMemoryStorage) GetCommentsByIDs(ctx context.Context, ids []models.ID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		if comment, exists := s.comments[id]; exists {
			clone := *comment
			comments = append(comments, &clone)
		}
	}

	return comments, nil
}

func (s *CommentMemoryStorage) UpdateCommentText(ctx context.Context, id models.ID, text string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, fmt.Errorf("comment %s: %w", id, storage.ErrNotFound)
	}

	comment.Comment = text
	comment.UpdatedAt = time.Now()

	clone := *comment
	return &clone, nil
}

func (s *CommentMemoryStorage) DeleteCommentByID(ctx context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return fmt.Errorf("comment %s: %w", id, storage.ErrNotFound)
	}

	delete(s.comments, id)
	return nil
}
