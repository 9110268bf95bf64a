package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	// проверка - существует ли такой пользователь
	var existUser userRow
	err := s.db.Where("lower(email) = ?", strings.ToLower(user.Email)).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %s: %w", user.Email, storage.ErrDuplicate)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not check email: %w", err)
	}

	row := &userRow{
		ID:       uuid.NewString(),
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}

	err = s.db.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.toModel(row)
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id models.ID) (*models.User, error) {
	row, err := s.findRow(id)
	if err != nil {
		return nil, err
	}
	return s.toModel(row)
}

func (s *UserPostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := s.db.Where("lower(email) = ?", strings.ToLower(email)).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	return s.toModel(&row)
}

func (s *UserPostgresStorage) GetUsersByIDs(ctx context.Context, ids []models.ID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	var rows []userRow
	err := s.db.Where("id IN (?)", toStrings(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	byID := make(map[string]*userRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	users := make([]*models.User, 0, len(rows))
	for _, id := range ids {
		row, ok := byID[string(id)]
		if !ok {
			continue
		}
		u, err := s.toModel(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// Посты и комментарии ссылаются на автора через created_by, отдельная запись не нужна

func (s *UserPostgresStorage) AddPost(ctx context.Context, userID, postID models.ID) error {
	_, err := s.findRow(userID)
	return err
}

func (s *UserPostgresStorage) RemovePost(ctx context.Context, userID, postID models.ID) error {
	_, err := s.findRow(userID)
	return err
}

func (s *UserPostgresStorage) AddComment(ctx context.Context, userID, commentID models.ID) error {
	_, err := s.findRow(userID)
	return err
}

func (s *UserPostgresStorage) RemoveComment(ctx context.Context, userID, commentID models.ID) error {
	_, err := s.findRow(userID)
	return err
}

// Обе стороны подписки - одна строка follows, поэтому запись идемпотентна

func (s *UserPostgresStorage) AddFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.follow(userID, targetID, userID)
}

func (s *UserPostgresStorage) RemoveFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.unfollow(userID, targetID, userID)
}

func (s *UserPostgresStorage) AddFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.follow(followerID, userID, userID)
}

func (s *UserPostgresStorage) RemoveFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.unfollow(followerID, userID, userID)
}

func (s *UserPostgresStorage) follow(followerID, followingID, owner models.ID) error {
	if _, err := s.findRow(owner); err != nil {
		return err
	}

	row := followRow{FollowerID: string(followerID), FollowingID: string(followingID)}
	err := s.db.Where(row).FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("could not follow user: %w", err)
	}
	return nil
}

func (s *UserPostgresStorage) unfollow(followerID, followingID, owner models.ID) error {
	if _, err := s.findRow(owner); err != nil {
		return err
	}

	err := s.db.Where("follower_id = ? AND following_id = ?", string(followerID), string(followingID)).
		Delete(&followRow{}).Error
	if err != nil {
		return fmt.Errorf("could not unfollow user: %w", err)
	}
	return nil
}

func (s *UserPostgresStorage) findRow(id models.ID) (*userRow, error) {
	var row userRow
	err := s.db.Where("id = ?", string(id)).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return &row, nil
}

func (s *UserPostgresStorage) toModel(row *userRow) (*models.User, error) {
	u := &models.User{
		ID:        models.ID(row.ID),
		Name:      row.Name,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	var err error
	if u.Posts, err = s.pluck(&postRow{}, "id", "created_by = ?", row.ID); err != nil {
		return nil, err
	}
	if u.Comments, err = s.pluck(&commentRow{}, "id", "created_by = ?", row.ID); err != nil {
		return nil, err
	}
	if u.Followers, err = s.pluck(&followRow{}, "follower_id", "following_id = ?", row.ID); err != nil {
		return nil, err
	}
	if u.Followings, err = s.pluck(&followRow{}, "following_id", "follower_id = ?", row.ID); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *UserPostgresStorage) pluck(table interface{}, column, where string, arg string) ([]models.ID, error) {
	return pluckIDs(s.db, table, column, where, arg)
}

func pluckIDs(db *gorm.DB, table interface{}, column, where string, arg string) ([]models.ID, error) {
	var values []string
	err := db.Model(table).Where(where, arg).Order("created_at").Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("could not load %s references: %w", column, err)
	}

	ids := make([]models.ID, 0, len(values))
	for _, v := range values {
		ids = append(ids, models.ID(v))
	}
	return ids, nil
}

func toStrings(ids []models.ID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, string(id))
	}
	return result
}
