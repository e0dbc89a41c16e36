package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Uploaded photos wider than this get scaled down before storage.
const maxImageWidth = 800

// StoreRecipeImage resizes and persists an uploaded recipe photo and
// returns the path it will be served from. IMAGE_STORAGE selects the
// backend: "local" (default) writes under UPLOADS_DIR, "s3" uploads
// to the configured bucket.
func StoreRecipeImage(data []byte, ext string) (string, error) {
	resized, contentType, err := shrinkImage(data, ext)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + normalizeExt(ext)
	if storageBackend() == "s3" {
		return UploadImageToS3(resized, contentType, name)
	}

	dir := UploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), resized, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/uploads/" + name, nil
}

// RemoveRecipeImage deletes a previously stored image. A file that is
// already gone is not an error; the recipe row is the source of truth.
func RemoveRecipeImage(path string) error {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return DeleteImageFromS3(path)
	}
	if err := os.Remove(filepath.Join(UploadsDir(), filepath.Base(path))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UploadsDir is where the local backend keeps images; the router
// serves it under /uploads.
func UploadsDir() string {
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		return v
	}
	return "uploads"
}

func storageBackend() string {
	if v := os.Getenv("IMAGE_STORAGE"); v != "" {
		return v
	}
	return "local"
}

func shrinkImage(data []byte, ext string) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unreadable image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	switch normalizeExt(ext) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}
