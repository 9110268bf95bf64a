package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendUnique(t *testing.T) {
	ids := []ID{"a", "b"}

	ids = AppendUnique(ids, "c")
	assert.Equal(t, []ID{"a", "b", "c"}, ids)

	ids = AppendUnique(ids, "a")
	assert.Equal(t, []ID{"a", "b", "c"}, ids)
}

func TestRemoveID(t *testing.T) {
	ids := []ID{"a", "b", "c"}

	result := RemoveID(ids, "b")
	assert.Equal(t, []ID{"a", "c"}, result)
	// исходный слайс не меняется
	assert.Equal(t, []ID{"a", "b", "c"}, ids)

	assert.Empty(t, RemoveID([]ID{"x"}, "x"))
}

func TestCloneIDs(t *testing.T) {
	assert.NotNil(t, CloneIDs(nil))

	ids := []ID{"a"}
	clone := CloneIDs(ids)
	clone[0] = "b"
	assert.Equal(t, ID("a"), ids[0])
}

func TestUser_IsFollowing(t *testing.T) {
	u := &User{ID: "1", Followings: []ID{"2", "3"}}

	assert.True(t, u.IsFollowing("2"))
	assert.False(t, u.IsFollowing("4"))
}
