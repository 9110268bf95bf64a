package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, createdBy models.ID, tweet string) (*models.Post, error) {
	row := &postRow{
		ID:        uuid.NewString(),
		Tweet:     tweet,
		CreatedBy: string(createdBy),
	}

	err := s.db.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return s.toModel(row)
}

func (s *PostPostgresStorage) GetPostByID(ctx context.Context, id models.ID) (*models.Post, error) {
	row, err := s.findRow(id)
	if err != nil {
		return nil, err
	}
	return s.toModel(row)
}

func (s *PostPostgresStorage) GetPostsByIDs(ctx context.Context, ids []models.ID) ([]*models.Post, error) {
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}

	var rows []postRow
	err := s.db.Where("id IN (?)", toStrings(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	byID := make(map[string]*postRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	posts := make([]*models.Post, 0, len(rows))
	for _, id := range ids {
		row, ok := byID[string(id)]
		if !ok {
			continue
		}
		p, err := s.toModel(row)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, nil
}

func (s *PostPostgresStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	var rows []postRow
	err := s.db.Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*models.Post, 0, len(rows))
	for i := range rows {
		p, err := s.toModel(&rows[i])
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}

	return results, nil
}

func (s *PostPostgresStorage) UpdatePostTweet(ctx context.Context, id models.ID, tweet string) (*models.Post, error) {
	row, err := s.findRow(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(row).Update("tweet", tweet).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}
	row.Tweet = tweet

	return s.toModel(row)
}

func (s *PostPostgresStorage) DeletePostByID(ctx context.Context, id models.ID) error {
	res := s.db.Where("id = ?", string(id)).Delete(&postRow{})
	if res.Error != nil {
		return fmt.Errorf("could not delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// Комментарий хранит post_id, поэтому список комментариев поста выводится из таблицы comments

func (s *PostPostgresStorage) AddComment(ctx context.Context, postID, commentID models.ID) error {
	_, err := s.findRow(postID)
	return err
}

func (s *PostPostgresStorage) RemoveComment(ctx context.Context, postID, commentID models.ID) error {
	_, err := s.findRow(postID)
	return err
}

func (s *PostPostgresStorage) findRow(id models.ID) (*postRow, error) {
	var row postRow
	err := s.db.Where("id = ?", string(id)).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return &row, nil
}

func (s *PostPostgresStorage) toModel(row *postRow) (*models.Post, error) {
	comments, err := pluckIDs(s.db, &commentRow{}, "id", "post_id = ?", row.ID)
	if err != nil {
		return nil, err
	}

	return &models.Post{
		ID:        models.ID(row.ID),
		Tweet:     row.Tweet,
		CreatedBy: models.ID(row.CreatedBy),
		Comments:  comments,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
