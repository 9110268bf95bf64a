package graph

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/VitaminP8/flock/internal/apperror"
	"github.com/VitaminP8/flock/internal/auth"
	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/internal/validation"
	"github.com/VitaminP8/flock/models"
	graphql "github.com/graph-gophers/graphql-go"
)

const (
	msgUserExists         = "User already exist with this email, try different email"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input createUserInput }) (*userResolver, error) {
	req := models.SignUpRequest{
		Name:     strings.TrimSpace(args.Input.Name),
		Email:    normalizeEmail(args.Input.Email),
		Password: args.Input.Password,
	}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	_, err := r.UserStore.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperror.Conflict(msgUserExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, storageError(err, msgUserNotFound)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		return nil, apperror.BadUserInput("Password could not be hashed")
	}

	user, err := r.UserStore.CreateUser(ctx, &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, apperror.Conflict(msgUserExists)
	}
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}

	log.Printf("user %s registered", user.ID)
	return &userResolver{r: r, user: user}, nil
}

func (r *Resolver) SignInUser(ctx context.Context, args struct{ Input signInInput }) (*signInPayloadResolver, error) {
	req := models.SignInRequest{
		Email:    normalizeEmail(args.Input.Email),
		Password: args.Input.Password,
	}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	user, err := r.UserStore.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.New(apperror.CodeUnauthenticated, msgInvalidCredentials)
	}
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, apperror.New(apperror.CodeUnauthenticated, msgInvalidCredentials)
	}

	token, err := r.Tokens.IssueToken(user.ID)
	if err != nil {
		log.Printf("issue token for %s: %v", user.ID, err)
		return nil, apperror.Internal("Could not issue token")
	}

	return &signInPayloadResolver{r: r, result: &models.SignInResult{Token: token, User: user}}, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, nil
	}
	return r.optionalUser(ctx, userID)
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	user, err := r.UserStore.GetUserByID(ctx, models.ID(args.ID))
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	return &userResolver{r: r, user: user}, nil
}

func (r *Resolver) GetUserPosts(ctx context.Context, args struct{ UserID graphql.ID }) ([]*postResolver, error) {
	user, err := r.UserStore.GetUserByID(ctx, models.ID(args.UserID))
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if len(user.Posts) == 0 {
		return nil, apperror.NotFound("No posts found for this user")
	}
	return r.postsByIDs(ctx, user.Posts)
}

func (r *Resolver) GetUserComments(ctx context.Context, args struct{ UserID graphql.ID }) ([]*commentResolver, error) {
	user, err := r.UserStore.GetUserByID(ctx, models.ID(args.UserID))
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if len(user.Comments) == 0 {
		return nil, apperror.NotFound("No comments found for this user")
	}
	return r.commentsByIDs(ctx, user.Comments)
}

func (r *Resolver) FollowUser(ctx context.Context, args struct{ Input followUserInput }) (*userResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.FollowRequest{UserID: models.ID(args.Input.UserID)}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	if req.UserID == userID {
		return nil, apperror.BadUserInput("You cannot follow yourself")
	}

	target, err := r.UserStore.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	caller, err := r.UserStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if caller.IsFollowing(target.ID) {
		return nil, apperror.Conflict("Already following this user")
	}

	if err := r.UserStore.AddFollowing(ctx, userID, target.ID); err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if err := r.UserStore.AddFollower(ctx, target.ID, userID); err != nil {
		// откатываем первую половину связи
		if rbErr := r.UserStore.RemoveFollowing(ctx, userID, target.ID); rbErr != nil {
			log.Printf("rollback following %s -> %s: %v", userID, target.ID, rbErr)
		}
		return nil, storageError(err, msgUserNotFound)
	}

	log.Printf("user %s followed %s", userID, target.ID)
	return r.reloadUser(ctx, target.ID)
}

func (r *Resolver) UnfollowUser(ctx context.Context, args struct{ Input followUserInput }) (*userResolver, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := models.FollowRequest{UserID: models.ID(args.Input.UserID)}
	if err := validation.Validate(req); err != nil {
		return nil, apperror.BadUserInput(err.Error())
	}

	target, err := r.UserStore.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	caller, err := r.UserStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if !caller.IsFollowing(target.ID) {
		return nil, apperror.BadUserInput("Not following this user")
	}

	if err := r.UserStore.RemoveFollowing(ctx, userID, target.ID); err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	if err := r.UserStore.RemoveFollower(ctx, target.ID, userID); err != nil {
		if rbErr := r.UserStore.AddFollowing(ctx, userID, target.ID); rbErr != nil {
			log.Printf("rollback unfollow %s -> %s: %v", userID, target.ID, rbErr)
		}
		return nil, storageError(err, msgUserNotFound)
	}

	log.Printf("user %s unfollowed %s", userID, target.ID)
	return r.reloadUser(ctx, target.ID)
}

// reloadUser перечитывает пользователя после изменения связей
func (r *Resolver) reloadUser(ctx context.Context, id models.ID) (*userResolver, error) {
	user, err := r.UserStore.GetUserByID(ctx, id)
	if err != nil {
		return nil, storageError(err, msgUserNotFound)
	}
	return &userResolver{r: r, user: user}, nil
}
