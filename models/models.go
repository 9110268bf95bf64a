package models

import "time"

// ID идентификатор документа (ObjectID hex для mongo, uuid для остальных хранилищ)
type ID string

func (id ID) String() string {
	return string(id)
}

type User struct {
	ID         ID
	Name       string
	Email      string
	Password   string // bcrypt hash, наружу не отдается
	Posts      []ID
	Comments   []ID
	Followers  []ID
	Followings []ID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsFollowing - есть ли target в списке подписок пользователя
func (u *User) IsFollowing(target ID) bool {
	return containsID(u.Followings, target)
}

type Post struct {
	ID        ID
	Tweet     string
	CreatedBy ID
	Comments  []ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        ID
	Comment   string
	CreatedBy ID
	PostID    ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func containsID(ids []ID, target ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// AppendUnique добавляет id, если его еще нет в списке
func AppendUnique(ids []ID, id ID) []ID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// RemoveID возвращает новый список без id
func RemoveID(ids []ID, id ID) []ID {
	result := make([]ID, 0, len(ids))
	for _, cur := range ids {
		if cur != id {
			result = append(result, cur)
		}
	}
	return result
}

// CloneIDs копия списка, чтобы хранилища не отдавали наружу свои слайсы
func CloneIDs(ids []ID) []ID {
	if ids == nil {
		return []ID{}
	}
	result := make([]ID, len(ids))
	copy(result, ids)
	return result
}
