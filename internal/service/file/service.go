package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	receiptMaxBytes = 300 * 1024
	receiptMinBytes = 60 * 1024
)

type FileService interface {
	// UploadReceipt stores an expense receipt and returns its storage key.
	// Photos are re-encoded as JPEG within the receipt size window.
	UploadReceipt(ctx context.Context, companyID, employeeID string, file io.Reader, filename string) (string, error)

	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

func (s *fileServiceImpl) UploadReceipt(ctx context.Context, companyID, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	month := s.now().Format("2006-01")
	name := fmt.Sprintf("%s-%s", employeeID, uuid.NewString())

	switch ext {
	case ".pdf":
		key := path.Join("receipts", companyID, month, name+".pdf")
		uploaded, err := s.storage.Upload(ctx, file, key, "application/pdf")
		if err != nil {
			return "", fmt.Errorf("failed to upload receipt: %w", err)
		}
		return uploaded, nil

	case ".jpg", ".jpeg", ".png":
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read receipt: %w", err)
		}
		compressed, err := compressImage(buffer, receiptMaxBytes, receiptMinBytes)
		if err != nil {
			return "", fmt.Errorf("failed to compress receipt: %w", err)
		}

		key := path.Join("receipts", companyID, month, name+".jpg")
		uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
		if err != nil {
			return "", fmt.Errorf("failed to upload receipt: %w", err)
		}
		return uploaded, nil
	}

	return "", fmt.Errorf("invalid file type %q: only jpg, jpeg, png, pdf allowed", ext)
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, key)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) GetFileURL(key string) string {
	return s.storage.URL(key)
}

// compressImage re-encodes buffer as JPEG, aiming for a size in [minSize, maxSize].
// Quality drops in steps of 5 down to 50; if that is not enough the image is scaled down.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Already-small JPEGs are kept as they are.
	if format == "jpeg" && len(buffer) <= maxSize {
		return buffer, nil
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	bounds := img.Bounds()
	target := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(target) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 1)
	height := max(int(float64(bounds.Dy())*ratio), 1)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src to width x height with Catmull-Rom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
