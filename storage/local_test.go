package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neighborhelp-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "css/style.css", strings.NewReader("body{}")))

	rc, err := s.Open(ctx, "/css/style.css")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))

	_, err = os.Stat(filepath.Join(dir, "css", "style.css"))
	assert.NoError(t, err)
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nope.css")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_OpenDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "css"), 0755))
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "css")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0644))
	root := filepath.Join(parent, "static")
	s, err := NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../secret.txt", "css/../../secret.txt", "..\\secret.txt", ""} {
		_, err := s.Open(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidPath, key)
	}

	assert.ErrorIs(t, s.Upload(ctx, "../evil.txt", strings.NewReader("x")), ErrInvalidPath)
	_, err = os.Stat(filepath.Join(parent, "evil.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_Delete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "a.txt", strings.NewReader("a")))
	require.NoError(t, s.Delete(ctx, "a.txt"))
	require.NoError(t, s.Delete(ctx, "a.txt"))

	_, err = s.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStorageFromConfig(t *testing.T) {
	s, err := NewStorageFromConfig(config.StorageConfig{Type: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorageFromConfig(config.StorageConfig{Type: "s3"})
	assert.Error(t, err)

	_, err = NewStorageFromConfig(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/css; charset=utf-8", ContentType("css/style.css"))
	assert.Equal(t, "image/png", ContentType("LOGO.PNG"))
	assert.Equal(t, "application/octet-stream", ContentType("blob"))
}
