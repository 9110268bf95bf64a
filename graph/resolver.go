package graph

import (
	"context"
	"errors"
	"log"

	"github.com/VitaminP8/flock/internal/apperror"
	"github.com/VitaminP8/flock/internal/auth"
	"github.com/VitaminP8/flock/internal/comment"
	"github.com/VitaminP8/flock/internal/post"
	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/internal/subscription"
	"github.com/VitaminP8/flock/internal/user"
	"github.com/VitaminP8/flock/models"
)

// Resolver служит корневой точкой для всех резолверов.
// Хранилища внедряются снаружи (cmd/server), глобального состояния нет.
type Resolver struct {
	PostStore           post.PostStorage
	CommentStore        comment.CommentStorage
	UserStore           user.UserStorage
	Tokens              *auth.TokenManager
	SubscriptionManager subscription.Manager
}

// currentUserID - идентификатор вызывающего или UNAUTHENTICATED
func currentUserID(ctx context.Context) (models.ID, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return "", apperror.Unauthenticated()
	}
	return userID, nil
}

// storageError переводит ошибку хранилища в ошибку для клиента
func storageError(err error, notFoundMessage string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperror.NotFound(notFoundMessage)
	}
	log.Printf("storage error: %v", err)
	return apperror.Internal("Internal server error")
}
