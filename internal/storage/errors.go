package storage

import "errors"

var (
	// ErrNotFound документ не найден
	ErrNotFound = errors.New("not found")
	// ErrDuplicate нарушение уникальности (email)
	ErrDuplicate = errors.New("already exists")
)
