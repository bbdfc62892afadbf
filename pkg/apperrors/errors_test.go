package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindPermission, KindOf(PermissionDenied("denied")))
	assert.Equal(t, KindConflict, KindOf(Conflict("conflict")))
	assert.Equal(t, KindInternal, KindOf(Wrap("boom", errors.New("db down"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOfWrappedError(t *testing.T) {
	sentinel := Conflict("already decided")
	wrapped := fmt.Errorf("approve failed: %w", sentinel)

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, sentinel)
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "missing", MessageOf(NotFound("missing")))
	assert.Equal(t, "conflict", MessageOf(Conflict("conflict")))
	// 内部错误细节不外泄
	assert.Equal(t, "internal server error", MessageOf(Wrap("query failed", errors.New("dsn leak"))))
	assert.Equal(t, "internal server error", MessageOf(errors.New("plain")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "missing", NotFound("missing").Error())
	assert.Equal(t, "query failed: db down", Wrap("query failed", errors.New("db down")).Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("db down")
	assert.ErrorIs(t, Wrap("query failed", cause), cause)
}
