package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
)

type UserMemoryStorage struct {
	mu     sync.Mutex
	users  map[models.ID]*models.User
	emails map[string]models.ID // lowercase email -> id
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:  make(map[models.ID]*models.User),
		emails: make(map[string]models.ID),
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.emails[email]; exists {
		return nil, fmt.Errorf("user with email %s: %w", user.Email, storage.ErrDuplicate)
	}

	now := time.Now()
	created := &models.User{
		ID:         models.ID(uuid.NewString()),
		Name:       user.Name,
		Email:      user.Email,
		Password:   user.Password,
		Posts:      []models.ID{},
		Comments:   []models.ID{},
		Followers:  []models.ID{},
		Followings: []models.ID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.users[created.ID] = created
	s.emails[email] = created.ID

	return cloneUser(created), nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id models.ID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}

	return cloneUser(user), nil
}

func (s *UserMemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.emails[strings.ToLower(email)]
	if !exists {
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}

	return cloneUser(s.users[id]), nil
}

func (s *UserMemoryStorage) GetUsersByIDs(ctx context.Context, ids []models.ID) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := s.users[id]; exists {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

func (s *UserMemoryStorage) AddPost(ctx context.Context, userID, postID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Posts = models.AppendUnique(u.Posts, postID)
	})
}

func (s *UserMemoryStorage) RemovePost(ctx context.Context, userID, postID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Posts = models.RemoveID(u.Posts, postID)
	})
}

func (s *UserMemoryStorage) AddComment(ctx context.Context, userID, commentID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Comments = models.AppendUnique(u.Comments, commentID)
	})
}

func (s *UserMemoryStorage) RemoveComment(ctx context.Context, userID, commentID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Comments = models.RemoveID(u.Comments, commentID)
	})
}

func (s *UserMemoryStorage) AddFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Followings = models.AppendUnique(u.Followings, targetID)
	})
}

func (s *UserMemoryStorage) RemoveFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Followings = models.RemoveID(u.Followings, targetID)
	})
}

func (s *UserMemoryStorage) AddFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Followers = models.AppendUnique(u.Followers, followerID)
	})
}

func (s *UserMemoryStorage) RemoveFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.update(userID, func(u *models.User) {
		u.Followers = models.RemoveID(u.Followers, followerID)
	})
}

func (s *UserMemoryStorage) update(userID models.ID, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}

	fn(user)
	user.UpdatedAt = time.Now()
	return nil
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Posts = models.CloneIDs(u.Posts)
	clone.Comments = models.CloneIDs(u.Comments)
	clone.Followers = models.CloneIDs(u.Followers)
	clone.Followings = models.CloneIDs(u.Followings)
	return &clone
}
