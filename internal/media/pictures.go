// Package media stores user uploaded files in the project's storage bucket.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// downloadTokenKey is the object metadata key Firebase Storage reads download tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// MaxPictureSize bounds a single profile picture upload.
const MaxPictureSize = 5 << 20

// PictureBucket uploads profile pictures to a storage bucket.
type PictureBucket struct {
	bucket *storage.BucketHandle
	name   string
}

func NewPictureBucket(bucket *storage.BucketHandle, name string) *PictureBucket {
	return &PictureBucket{bucket: bucket, name: name}
}

// Upload writes r to profilePictures/{uid}/{filename} and returns a tokenised
// download URL for it.
func (p *PictureBucket) Upload(ctx context.Context, uid, filename, contentType string, r io.Reader) (string, error) {
	object, err := ObjectName(uid, filename)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()

	w := p.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: token}

	n, err := io.Copy(w, io.LimitReader(r, MaxPictureSize+1))
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write %s: %w", object, err)
	}
	if n > MaxPictureSize {
		// Closing would commit the partial object.
		return "", fmt.Errorf("picture exceeds %d bytes", MaxPictureSize)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", object, err)
	}
	return DownloadURL(p.name, object, token), nil
}

// ObjectName places a picture under its owner's folder. Only the base name of
// filename is kept.
func ObjectName(uid, filename string) (string, error) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if uid == "" || base == "" || base == "." || base == "/" {
		return "", fmt.Errorf("invalid picture name %q for user %q", filename, uid)
	}
	return path.Join("profilePictures", uid, base), nil
}

// DownloadURL is the public Firebase Storage URL of object.
func DownloadURL(bucket, object, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(object), url.QueryEscape(token))
}
