package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"rendix/internal/config"
	"rendix/internal/domain"
	"rendix/internal/metrics"
	"rendix/internal/port"
)

// ImageUploadInput is the DTO for image upload requests.
type ImageUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadedImage describes a stored document photo. ImageURL is a presigned
// GET URL usable directly as an extraction input.
type UploadedImage struct {
	Key          string          `json:"key"`
	Location     string          `json:"location"`
	ImageURL     string          `json:"image_url"`
	FileType     domain.FileType `json:"file_type"`
	Size         int64           `json:"size"`
	OriginalName string          `json:"original_name"`
}

// ImageService defines the document photo intake contract.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*UploadedImage, error)
	Delete(ctx context.Context, key string) error
}

type imageService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
	m       *metrics.Metrics
}

// NewImageService creates a new ImageService implementation. A nil metrics
// argument disables instrumentation.
func NewImageService(storage port.ObjectStorage, cfg *config.S3Config, m *metrics.Metrics) ImageService {
	return &imageService{
		storage: storage,
		cfg:     cfg,
		m:       m,
	}
}

func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*UploadedImage, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		s.count("rejected")
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		s.count("rejected")
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	// Validate detected content type
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		s.count("rejected")
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := fmt.Sprintf("images/%s.%s", uuid.New(), ext)
	contentType := domain.AllowedFileTypes[fileType]

	log.Printf("imageService.Upload: uploading %s (%s, %d bytes) as %s",
		input.Header.Filename, contentType, input.Header.Size, key)

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("imageService.Upload: storage upload failed for %s: %v", key, err)
		s.count("failed")
		return nil, domain.ErrUploadFailed
	}

	imageURL, err := s.storage.GetPresignedURL(ctx, key, s.cfg.PresignExpiry)
	if err != nil {
		log.Printf("imageService.Upload: presigning %s failed: %v", key, err)
		return nil, fmt.Errorf("presigning uploaded image: %w", err)
	}

	s.count("ok")
	return &UploadedImage{
		Key:          key,
		Location:     out.Location,
		ImageURL:     imageURL,
		FileType:     fileType,
		Size:         input.Header.Size,
		OriginalName: input.Header.Filename,
	}, nil
}

func (s *imageService) Delete(ctx context.Context, key string) error {
	log.Printf("imageService.Delete: deleting %s", key)
	return s.storage.Delete(ctx, key)
}

func (s *imageService) count(status string) {
	if s.m != nil {
		s.m.UploadsTotal.WithLabelValues(status).Inc()
	}
}
