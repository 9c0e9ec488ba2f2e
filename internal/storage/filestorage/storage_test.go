package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"equestrian/internal/storage"
	filestorage "equestrian/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func createTestFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := filestorage.NewLocalFileStorage(dir, "http://test.local/media/", 1024)
	require.NoError(t, err)

	t.Run("successful save", func(t *testing.T) {
		header := createTestFile(t, "horse.png", pngHeader)

		path, size, err := fs.Save(ctx, header, "gallery")
		require.NoError(t, err)
		assert.Equal(t, int64(len(pngHeader)), size)
		assert.True(t, strings.HasPrefix(path, "gallery/"))
		assert.Equal(t, ".png", filepath.Ext(path))
		assert.NotContains(t, path, "horse")

		_, err = os.Stat(fs.GetFullPath(path))
		assert.NoError(t, err)
		assert.Equal(t, "http://test.local/media/"+path, fs.URL(path))
	})

	t.Run("not an image", func(t *testing.T) {
		header := createTestFile(t, "notes.txt", []byte("plain text content"))

		_, _, err := fs.Save(ctx, header, "gallery")
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
	})

	t.Run("too large", func(t *testing.T) {
		content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
		header := createTestFile(t, "big.png", content)

		_, _, err := fs.Save(ctx, header, "gallery")
		assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fs.Save(canceled, createTestFile(t, "horse.png", pngHeader), "gallery")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	ctx := context.Background()
	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "/media", 0)
	require.NoError(t, err)

	path, _, err := fs.Save(ctx, createTestFile(t, "horse.png", pngHeader), "")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, path))
	assert.ErrorIs(t, fs.Delete(ctx, path), storage.ErrFileNotFound)
}

func TestLocalFileStorage_GetFullPathStaysInBaseDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestorage.NewLocalFileStorage(dir, "/media", 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fs.GetFullPath("../../etc/passwd"), dir))
}
