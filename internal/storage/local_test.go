package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveExistsDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/uploads/"})
	require.NoError(t, err)

	key := "resumes/abc.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("%PDF-1.4"), "application/pdf"))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/uploads/resumes/abc.pdf", s.GetURL(key))
	assert.Equal(t, key, KeyFromURL(s, s.GetURL(key)))

	require.NoError(t, s.Delete(ctx, key))
	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_KeyCannotEscapeBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: dir})
	require.NoError(t, err)

	full, err := s.fullPath("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, dir))

	_, err = s.fullPath("")
	assert.Error(t, err)
}
