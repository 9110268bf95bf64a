package graph

import (
	"context"
	"errors"
	"log"

	"github.com/VitaminP8/flock/internal/apperror"
	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/internal/validation"
	"github.com/VitaminP8/flock/models"
	graphql "github.com/graph-gophers/graphql-go"
)

const msgPostNotFound = "Post not found"

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input createPostInput }) (*postResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.CreatePostRequest{Tweet: args.Input.Tweet}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	post, err := r.PostStore.CreatePost(ctx, userID, req.Tweet)
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}

	if err := r.UserStore.AddPost(ctx, userID, post.ID); err != nil {
		// пост без владельца не оставляем
		if rbErr := r.PostStore.DeletePostByID(ctx, post.ID); rbErr != nil {
			log.Printf("rollback post %s: %v", post.ID, rbErr)
		}
		return nil, storageError(err, msgUserNotFound)
	}

	log.Printf("user %s created post %s", userID, post.ID)
	return &postResolver{r: r, post: post}, nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct{ Input updatePostInput }) (*postResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.UpdatePostRequest{PostID: models.ID(args.Input.PostID), Tweet: args.Input.Tweet}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	post, err := r.PostStore.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}
	if post.CreatedBy != userID {
		return nil, apperror.Forbidden("Not authorized to update this post")
	}

	updated, err := r.PostStore.UpdatePostTweet(ctx, post.ID, req.Tweet)
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}

	return &postResolver{r: r, post: updated}, nil
}

// DeletePost удаляет пост вместе с его комментариями
func (r *Resolver) DeletePost(ctx context.Context, args struct{ PostID graphql.ID }) (bool, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return false, err
	}

	post, err := r.PostStore.GetPostByID(ctx, models.ID(args.PostID))
	if err != nil {
		return false, storageError(err, msgPostNotFound)
	}
	if post.CreatedBy != userID {
		return false, apperror.Forbidden("Not authorized to delete this post")
	}

	if err := r.PostStore.DeletePostByID(ctx, post.ID); err != nil {
		log.Printf("delete post %s: %v", post.ID, err)
		return false, apperror.Internal("Failed to delete post")
	}
	if err := r.UserStore.RemovePost(ctx, userID, post.ID); err != nil {
		log.Printf("remove post %s from user %s: %v", post.ID, userID, err)
		return false, apperror.Internal("Failed to delete post")
	}

	r.deletePostComments(ctx, post.Comments)

	log.Printf("user %s deleted post %s", userID, post.ID)
	return true, nil
}

// deletePostComments - best effort, ошибки только логируются
func (r *Resolver) deletePostComments(ctx context.Context, ids []models.ID) {
	for _, id := range ids {
		c, err := r.CommentStore.GetCommentByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("cascade: get comment %s: %v", id, err)
			continue
		}
		if err := r.CommentStore.DeleteCommentByID(ctx, c.ID); err != nil {
			log.Printf("cascade: delete comment %s: %v", c.ID, err)
			continue
		}
		if err := r.UserStore.RemoveComment(ctx, c.CreatedBy, c.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("cascade: remove comment %s from user %s: %v", c.ID, c.CreatedBy, err)
		}
	}
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	post, err := r.PostStore.GetPostByID(ctx, models.ID(args.ID))
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}
	return &postResolver{r: r, post: post}, nil
}

func (r *Resolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.PostStore.GetAllPosts(ctx)
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}
	return r.wrapPosts(posts), nil
}
