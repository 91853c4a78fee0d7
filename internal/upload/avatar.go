package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/adudhe01/runroom/internal/domain"
)

const (
	// MaxAvatarBytes caps profile picture uploads at 5MB.
	MaxAvatarBytes = 5 << 20

	profilePicturesDir = "profile-pictures"

	// PublicPathPrefix is where the server mounts the upload directory.
	PublicPathPrefix = "/uploads/"
)

// allowedImageTypes maps sniffed content types to stored file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarStore persists profile pictures on local disk under
// <baseDir>/profile-pictures and hands back public URL paths.
type AvatarStore struct {
	baseDir string
}

func NewAvatarStore(baseDir string) *AvatarStore {
	return &AvatarStore{baseDir: baseDir}
}

// Save validates and writes an uploaded image, returning its public path.
// The stored filename is a fresh UUID so uploads never collide or overwrite
// each other.
func (s *AvatarStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxAvatarBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxAvatarBytes)
	}

	// Sniff the real content type instead of trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	ext, ok := allowedImageTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", fmt.Errorf("%w: only image uploads are accepted", domain.ErrInvalidInput)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	dir := filepath.Join(s.baseDir, profilePicturesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxAvatarBytes)); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return PublicPathPrefix + profilePicturesDir + "/" + name, nil
}

// Remove deletes a previously stored avatar by its public path. Paths
// outside the profile picture directory and external URLs are ignored.
func (s *AvatarStore) Remove(publicPath string) error {
	prefix := PublicPathPrefix + profilePicturesDir + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	name := path.Base(strings.TrimPrefix(publicPath, prefix))
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.baseDir, profilePicturesDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove avatar: %w", err)
	}
	return nil
}
