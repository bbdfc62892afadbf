package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessID(t *testing.T) {
	id := NewBusinessID("APP")
	assert.True(t, strings.HasPrefix(id, "APP"))
	assert.Greater(t, len(id), 10)

	other := NewBusinessID("REN")
	assert.True(t, strings.HasPrefix(other, "REN"))
}

func TestRandString(t *testing.T) {
	s := RandString(16)
	assert.Len(t, s, 16)
}

func TestRetry(t *testing.T) {
	attempts := 0
	err := Retry(3, 0, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhausted(t *testing.T) {
	attempts := 0
	err := Retry(2, 0, func() error {
		attempts++
		return errors.New("persistent")
	})
	assert.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, int64(35), p.Total)
	assert.Equal(t, int64(4), p.Pages)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestNewPaginationNormalizes(t *testing.T) {
	p := NewPagination(0, 0, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(1, 5000, 10)
	assert.Equal(t, 1000, p.PageSize)
}
