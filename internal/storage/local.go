package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"  // register GIF decoder
	_ "image/png"  // register PNG decoder

	"pinboard/internal/models"
	"pinboard/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// DefaultUploadDir is used when no directory is configured.
	DefaultUploadDir = "/tmp/pinboard/uploads/images"
	// DefaultMaxUploadSizeMB bounds uploads when unconfigured.
	DefaultMaxUploadSizeMB = 10

	masterMaxSize = 2048
	thumbMaxSize  = 512
	jpegQuality   = 82
	webpQuality   = 70
)

// LocalStore writes images to a local directory: a JPEG master plus a WebP
// thumbnail per reference.
type LocalStore struct {
	dir          string
	maxSizeBytes int64
}

// NewLocalStore returns a LocalStore rooted at dir. Empty values fall back
// to the defaults.
func NewLocalStore(dir string, maxUploadSizeMB int) *LocalStore {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &LocalStore{
		dir:          dir,
		maxSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Save validates, normalizes, and writes the image, returning its reference.
func (s *LocalStore) Save(_ context.Context, content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return "", models.NewValidationError(
			fmt.Sprintf("File too large (max %dMB)", s.maxSizeBytes/(1024*1024)))
	}

	detected := http.DetectContentType(content)
	if !isAllowedImageMIME(detected) {
		return "", models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(contentType); strings.HasPrefix(provided, "image/") &&
		!isMatchingContentType(provided, detected) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, masterMaxSize, masterMaxSize)
	thumb := resizeToFit(decoded, thumbMaxSize, thumbMaxSize)

	masterJPG, err := encodeJPEG(master, jpegQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	thumbWebP, err := encodeWebP(thumb, webpQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	ref := uuid.NewString()
	if err := writeBytesToFile(s.masterPath(ref), masterJPG); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writeBytesToFile(s.thumbPath(ref), thumbWebP); err != nil {
		// Do not leave a half-written reference behind.
		_ = os.Remove(s.masterPath(ref))
		return "", models.NewInternalError(err)
	}
	observability.ImageBytesStored.Add(float64(len(masterJPG) + len(thumbWebP)))

	return ref, nil
}

// Delete removes the files behind ref. Unknown references are a no-op.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	for _, p := range []string{s.masterPath(ref), s.thumbPath(ref)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Path resolves a reference to the master image file path.
func (s *LocalStore) Path(ref string) string {
	return s.masterPath(ref)
}

func (s *LocalStore) masterPath(ref string) string {
	return filepath.Join(s.dir, ref+".jpg")
}

func (s *LocalStore) thumbPath(ref string) string {
	return filepath.Join(s.dir, ref+".webp")
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
