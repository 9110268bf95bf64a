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

const msgCommentNotFound = "Comment not found"

func (r *Resolver) CreateComment(ctx context.Context, args struct{ Input createCommentInput }) (*commentResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.CreateCommentRequest{PostID: models.ID(args.Input.PostID), Comment: args.Input.Comment}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	post, err := r.PostStore.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}

	comment, err := r.CommentStore.CreateComment(ctx, userID, post.ID, req.Comment)
	if err != nil {
		return nil, storageError(err, msgCommentNotFound)
	}

	if err := r.PostStore.AddComment(ctx, post.ID, comment.ID); err != nil {
		r.rollbackComment(ctx, comment, false)
		return nil, storageError(err, msgPostNotFound)
	}
	if err := r.UserStore.AddComment(ctx, userID, comment.ID); err != nil {
		r.rollbackComment(ctx, comment, true)
		return nil, storageError(err, msgUserNotFound)
	}

	if r.SubscriptionManager != nil {
		r.SubscriptionManager.Publish(post.ID, comment)
	}

	log.Printf("user %s commented post %s", userID, post.ID)
	return &commentResolver{r: r, comment: comment}, nil
}

// rollbackComment отменяет уже выполненные шаги создания комментария
func (r *Resolver) rollbackComment(ctx context.Context, comment *models.Comment, linkedToPost bool) {
	if linkedToPost {
		if err := r.PostStore.RemoveComment(ctx, comment.PostID, comment.ID); err != nil {
			log.Printf("rollback: unlink comment %s from post %s: %v", comment.ID, comment.PostID, err)
		}
	}
	if err := r.CommentStore.DeleteCommentByID(ctx, comment.ID); err != nil {
		log.Printf("rollback: delete comment %s: %v", comment.ID, err)
	}
}

func (r *Resolver) UpdateComment(ctx context.Context, args struct{ Input updateCommentInput }) (*commentResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.UpdateCommentRequest{CommentID: models.ID(args.Input.CommentID), Comment: args.Input.Comment}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	comment, err := r.CommentStore.GetCommentByID(ctx, req.CommentID)
	if err != nil {
		return nil, storageError(err, msgCommentNotFound)
	}
	if comment.CreatedBy != userID {
		return nil, apperror.Forbidden("Not authorized to update this comment")
	}

	updated, err := r.CommentStore.UpdateCommentText(ctx, comment.ID, req.Comment)
	if err != nil {
		return nil, storageError(err, msgCommentNotFound)
	}

	return &commentResolver{r: r, comment: updated}, nil
}

func (r *Resolver) DeleteComment(ctx context.Context, args struct{ CommentID graphql.ID }) (bool, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return false, err
	}

	comment, err := r.CommentStore.GetCommentByID(ctx, models.ID(args.CommentID))
	if err != nil {
		return false, storageError(err, msgCommentNotFound)
	}
	if comment.CreatedBy != userID {
		return false, apperror.Forbidden("Not authorized to delete this comment")
	}

	if err := r.CommentStore.DeleteCommentByID(ctx, comment.ID); err != nil {
		log.Printf("delete comment %s: %v", comment.ID, err)
		return false, apperror.Internal("Failed to delete comment")
	}
	if err := r.UserStore.RemoveComment(ctx, userID, comment.ID); err != nil {
		log.Printf("remove comment %s from user %s: %v", comment.ID, userID, err)
		return false, apperror.Internal("Failed to delete comment")
	}
	// пост мог быть удален раньше комментария
	if err := r.PostStore.RemoveComment(ctx, comment.PostID, comment.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("remove comment %s from post %s: %v", comment.ID, comment.PostID, err)
		return false, apperror.Internal("Failed to delete comment")
	}

	log.Printf("user %s deleted comment %s", userID, comment.ID)
	return true, nil
}

// CommentAdded отдает новые комментарии поста, пока клиент подписан
func (r *Resolver) CommentAdded(ctx context.Context, args struct{ PostID graphql.ID }) (<-chan *commentResolver, error) {
	if r.SubscriptionManager == nil {
		return nil, apperror.Internal("Subscriptions are not available")
	}

	post, err := r.PostStore.GetPostByID(ctx, models.ID(args.PostID))
	if err != nil {
		return nil, storageError(err, msgPostNotFound)
	}

	source, cancel := r.SubscriptionManager.Subscribe(post.ID)
	out := make(chan *commentResolver)

	go func() {
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case comment, ok := <-source:
				if !ok {
					return
				}
				select {
				case out <- &commentResolver{r: r, comment: comment}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
