package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/google/uuid"
)

type PostMemoryStorage struct {
	mu    sync.Mutex
	posts map[models.ID]*models.Post
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts: make(map[models.ID]*models.Post),
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, createdBy models.ID, tweet string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	post := &models.Post{
		ID:        models.ID(uuid.NewString()),
		Tweet:     tweet,
		CreatedBy: createdBy,
		Comments:  []models.ID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.posts[post.ID] = post
	return clonePost(post), nil
}

func (s *PostMemoryStorage) GetPostByID(ctx context.Context, id models.ID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	return clonePost(post), nil
}

func (s *PostMemoryStorage) GetPostsByIDs(ctx context.Context, ids []models.ID) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		if post, exists := s.posts[id]; exists {
			posts = append(posts, clonePost(post))
		}
	}

	return posts, nil
}

// GetAllPosts новые сверху
func (s *PostMemoryStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

func (s *PostMemoryStorage) UpdatePostTweet(ctx context.Context, id models.ID, tweet string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	post.Tweet = tweet
	post.UpdatedAt = time.Now()
	return clonePost(post), nil
}

func (s *PostMemoryStorage) DeletePostByID(ctx context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	delete(s.posts, id)
	return nil
}

func (s *PostMemoryStorage) AddComment(ctx context.Context, postID, commentID models.ID) error {
	return s.update(postID, func(p *models.Post) {
		p.Comments = models.AppendUnique(p.Comments, commentID)
	})
}

func (s *PostMemoryStorage) RemoveComment(ctx context.Context, postID, commentID models.ID) error {
	return s.update(postID, func(p *models.Post) {
		p.Comments = models.RemoveID(p.Comments, commentID)
	})
}

func (s *PostMemoryStorage) update(postID models.ID, fn func(p *models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return fmt.Errorf("post %s: %w", postID, storage.ErrNotFound)
	}

	fn(post)
	post.UpdatedAt = time.Now()
	return nil
}

func clonePost(p *models.Post) *models.Post {
	clone := *p
	clone.Comments = models.CloneIDs(p.Comments)
	return &clone
}
