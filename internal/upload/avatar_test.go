package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adudhe01/runroom/internal/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartUpload(t *testing.T, field, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	file, header, err := req.FormFile(field)
	require.NoError(t, err)
	return file, header
}

func TestSave_StoresPNGUnderPublicPath(t *testing.T) {
	store := NewAvatarStore(t.TempDir())
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 128)...)
	file, header := multipartUpload(t, "profilePicture", "me.png", content)
	defer file.Close()

	publicPath, err := store.Save(file, header)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/profile-pictures/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	stored := filepath.Join(store.baseDir, "profile-pictures", filepath.Base(publicPath))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestSave_DistinctNamesForSameFilename(t *testing.T) {
	store := NewAvatarStore(t.TempDir())
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)

	fileA, headerA := multipartUpload(t, "profilePicture", "avatar.png", content)
	defer fileA.Close()
	pathA, err := store.Save(fileA, headerA)
	require.NoError(t, err)

	fileB, headerB := multipartUpload(t, "profilePicture", "avatar.png", content)
	defer fileB.Close()
	pathB, err := store.Save(fileB, headerB)
	require.NoError(t, err)

	assert.NotEqual(t, pathA, pathB)
}

func TestSave_RejectsNonImage(t *testing.T) {
	store := NewAvatarStore(t.TempDir())
	file, header := multipartUpload(t, "profilePicture", "notes.txt", []byte("plain text, not an image"))
	defer file.Close()

	_, err := store.Save(file, header)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_RejectsOversizedUpload(t *testing.T) {
	store := NewAvatarStore(t.TempDir())
	file, header := multipartUpload(t, "profilePicture", "big.png", pngHeader)
	defer file.Close()
	header.Size = MaxAvatarBytes + 1

	_, err := store.Save(file, header)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	store := NewAvatarStore(t.TempDir())
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	file, header := multipartUpload(t, "profilePicture", "avatar.png", content)
	defer file.Close()

	publicPath, err := store.Save(file, header)
	require.NoError(t, err)

	require.NoError(t, store.Remove(publicPath))

	_, statErr := os.Stat(filepath.Join(store.baseDir, "profile-pictures", filepath.Base(publicPath)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemove_IgnoresExternalURLs(t *testing.T) {
	store := NewAvatarStore(t.TempDir())

	assert.NoError(t, store.Remove("https://cdn.example.com/avatar.png"))
	assert.NoError(t, store.Remove("/uploads/profile-pictures/../../etc/passwd"))
	assert.NoError(t, store.Remove(""))
}
