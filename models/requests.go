package models

// Запросы мутаций. Теги validate проверяются в internal/validation до любых записей в хранилище.

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	Tweet string `json:"tweet" validate:"required,min=3"`
}

type UpdatePostRequest struct {
	PostID ID     `json:"postId" validate:"required"`
	Tweet  string `json:"tweet" validate:"required,min=3"`
}

type CreateCommentRequest struct {
	PostID  ID     `json:"postId" validate:"required"`
	Comment string `json:"comment" validate:"required,min=3"`
}

type UpdateCommentRequest struct {
	CommentID ID     `json:"commentId" validate:"required"`
	Comment   string `json:"comment" validate:"required,min=3"`
}

type FollowRequest struct {
	UserID ID `json:"userId" validate:"required"`
}

// SignInResult ответ signInUser
type SignInResult struct {
	Token string
	User  *User
}
