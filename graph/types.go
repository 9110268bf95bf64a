package graph

import (
	"context"
	"errors"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	graphql "github.com/graph-gophers/graphql-go"
)

// Входные типы схемы

type createUserInput struct {
	Name     string
	Email    string
	Password string
}

type signInInput struct {
	Email    string
	Password string
}

type createPostInput struct {
	Tweet string
}

type updatePostInput struct {
	PostID graphql.ID
	Tweet  string
}

type createCommentInput struct {
	PostID  graphql.ID
	Comment string
}

type updateCommentInput struct {
	CommentID graphql.ID
	Comment   string
}

type followUserInput struct {
	UserID graphql.ID
}

type userResolver struct {
	r    *Resolver
	user *models.User
}

func (u *userResolver) ID() graphql.ID {
	return graphql.ID(u.user.ID)
}

func (u *userResolver) Name() string {
	return u.user.Name
}

func (u *userResolver) Email() string {
	return u.user.Email
}

func (u *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	return u.r.postsByIDs(ctx, u.user.Posts)
}

func (u *userResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	return u.r.commentsByIDs(ctx, u.user.Comments)
}

func (u *userResolver) Followers(ctx context.Context) ([]*userResolver, error) {
	return u.r.usersByIDs(ctx, u.user.Followers)
}

func (u *userResolver) Followings(ctx context.Context) ([]*userResolver, error) {
	return u.r.usersByIDs(ctx, u.user.Followings)
}

func (u *userResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: u.user.CreatedAt}
}

func (u *userResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: u.user.UpdatedAt}
}

type postResolver struct {
	r    *Resolver
	post *models.Post
}

func (p *postResolver) ID() graphql.ID {
	return graphql.ID(p.post.ID)
}

func (p *postResolver) Tweet() string {
	return p.post.Tweet
}

// CreatedBy - nil, если автора уже нет в хранилище
func (p *postResolver) CreatedBy(ctx context.Context) (*userResolver, error) {
	return p.r.optionalUser(ctx, p.post.CreatedBy)
}

func (p *postResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	return p.r.commentsByIDs(ctx, p.post.Comments)
}

func (p *postResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: p.post.CreatedAt}
}

func (p *postResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: p.post.UpdatedAt}
}

type commentResolver struct {
	r       *Resolver
	comment *models.Comment
}

func (c *commentResolver) ID() graphql.ID {
	return graphql.ID(c.comment.ID)
}

func (c *commentResolver) Comment() string {
	return c.comment.Comment
}

func (c *commentResolver) CreatedBy(ctx context.Context) (*userResolver, error) {
	return c.r.optionalUser(ctx, c.comment.CreatedBy)
}

// Post - nil, если пост удален
func (c *commentResolver) Post(ctx context.Context) (*postResolver, error) {
	post, err := c.r.PostStore.GetPostByID(ctx, c.comment.PostID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err, "Post not found")
	}
	return &postResolver{r: c.r, post: post}, nil
}

func (c *commentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: c.comment.CreatedAt}
}

func (c *commentResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: c.comment.UpdatedAt}
}

type signInPayloadResolver struct {
	r      *Resolver
	result *models.SignInResult
}

func (s *signInPayloadResolver) Token() string {
	return s.result.Token
}

func (s *signInPayloadResolver) User() *userResolver {
	return &userResolver{r: s.r, user: s.result.User}
}

func (r *Resolver) optionalUser(ctx context.Context, id models.ID) (*userResolver, error) {
	user, err := r.UserStore.GetUserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err, "User not found")
	}
	return &userResolver{r: r, user: user}, nil
}

func (r *Resolver) usersByIDs(ctx context.Context, ids []models.ID) ([]*userResolver, error) {
	users, err := r.UserStore.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storageError(err, "User not found")
	}
	res := make([]*userResolver, 0, len(users))
	for _, u := range users {
		res = append(res, &userResolver{r: r, user: u})
	}
	return res, nil
}

func (r *Resolver) postsByIDs(ctx context.Context, ids []models.ID) ([]*postResolver, error) {
	posts, err := r.PostStore.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, storageError(err, "Post not found")
	}
	return r.wrapPosts(posts), nil
}

func (r *Resolver) wrapPosts(posts []*models.Post) []*postResolver {
	res := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		res = append(res, &postResolver{r: r, post: p})
	}
	return res
}

func (r *Resolver) commentsByIDs(ctx context.Context, ids []models.ID) ([]*commentResolver, error) {
	comments, err := r.CommentStore.GetCommentsByIDs(ctx, ids)
	if err != nil {
		return nil, storageError(err, "Comment not found")
	}
	res := make([]*commentResolver, 0, len(comments))
	for _, c := range comments {
		res = append(res, &commentResolver{r: r, comment: c})
	}
	return res, nil
}
