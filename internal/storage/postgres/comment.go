package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, createdBy, postID models.ID, text string) (*models.Comment, error) {
	row := &commentRow{
		ID:        uuid.NewString(),
		Comment:   text,
		PostID:    string(postID),
		CreatedBy: string(createdBy),
	}

	err := s.db.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return toComment(row), nil
}

func (s *CommentPostgresStorage) GetCommentByID(ctx context.Context, id models.ID) (*models.Comment, error) {
	row, err := s.findRow(id)
	if err != nil {
		return nil, err
	}
	return toComment(row), nil
}

func (s *CommentPostgresStorage) GetCommentsByIDs(ctx context.Context, ids []models.ID) ([]*models.Comment, error) {
	if len(ids) == 0 {
		return []*models.Comment{}, nil
	}

	var rows []commentRow
	err := s.db.Where("id IN (?)", toStrings(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	byID := make(map[string]*commentRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	comments := make([]*models.Comment, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[string(id)]; ok {
			comments = append(comments, toComment(row))
		}
	}

	return comments, nil
}

func (s *CommentPostgresStorage) UpdateCommentText(ctx context.Context, id models.ID, text string) (*models.Comment, error) {
	row, err := s.findRow(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(row).Update("comment", text).Error
	if err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}
	row.Comment = text

	return toComment(row), nil
}

func (s *CommentPostgresStorage) DeleteCommentByID(ctx context.Context, id models.ID) error {
	res := s.db.Where("id = ?", string(id)).Delete(&commentRow{})
	if res.Error != nil {
		return fmt.Errorf("could not delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *CommentPostgresStorage) findRow(id models.ID) (*commentRow, error) {
	var row commentRow
	err := s.db.Where("id = ?", string(id)).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("comment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}
	return &row, nil
}

func toComment(row *commentRow) *models.Comment {
	return &models.Comment{
		ID:        models.ID(row.ID),
		Comment:   row.Comment,
		CreatedBy: models.ID(row.CreatedBy),
		PostID:    models.ID(row.PostID),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
