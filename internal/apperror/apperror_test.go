package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := Unauthenticated()
	assert.Equal(t, "User not authenticated", err.Error())
	assert.Equal(t, map[string]interface{}{"code": "UNAUTHENTICATED"}, err.Extensions())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("Post not found")))
	assert.Equal(t, CodeForbidden, CodeOf(fmt.Errorf("wrapped: %w", Forbidden("no"))))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
