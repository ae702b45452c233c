package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rendix/internal/config"
	"rendix/internal/domain"
	"rendix/internal/port"
	"rendix/internal/service"
	"rendix/mocks"
)

type testFile struct {
	*bytes.Reader
}

func (testFile) Close() error { return nil }

func newUpload(name string, content []byte) service.ImageUploadInput {
	return service.ImageUploadInput{
		File:   testFile{bytes.NewReader(content)},
		Header: &multipart.FileHeader{Filename: name, Size: int64(len(content))},
	}
}

var jpegContent = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, []byte("JFIF fake body")...)

func testS3Config() *config.S3Config {
	return &config.S3Config{MaxFileSizeMB: 50, PresignExpiry: 3600}
}

func TestUploadJPEG(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	var uploadedKey string
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.HasPrefix(in.Key, "images/") &&
			strings.HasSuffix(in.Key, ".jpg") &&
			in.ContentType == "image/jpeg" &&
			in.Size == int64(len(jpegContent))
	})).Run(func(args mock.Arguments) {
		uploadedKey = args.Get(1).(port.UploadInput).Key
	}).Return(&port.UploadOutput{Location: "https://rendix-uploads.s3.amazonaws.com/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, mock.AnythingOfType("string"), int64(3600)).
		Return("https://rendix-uploads.s3.amazonaws.com/x?firmada", nil)

	svc := service.NewImageService(storage, testS3Config(), nil)
	out, err := svc.Upload(context.Background(), newUpload("boleta.jpg", jpegContent))
	require.NoError(t, err)

	assert.Equal(t, uploadedKey, out.Key)
	assert.Equal(t, "https://rendix-uploads.s3.amazonaws.com/x", out.Location)
	assert.Equal(t, "https://rendix-uploads.s3.amazonaws.com/x?firmada", out.ImageURL)
	assert.Equal(t, domain.FileTypeJPG, out.FileType)
	assert.Equal(t, int64(len(jpegContent)), out.Size)
	assert.Equal(t, "boleta.jpg", out.OriginalName)
	storage.AssertExpectations(t)
}

func TestUploadRejectsExtension(t *testing.T) {
	storage := new(mocks.MockObjectStorage)

	svc := service.NewImageService(storage, testS3Config(), nil)
	_, err := svc.Upload(context.Background(), newUpload("boleta.pdf", jpegContent))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadRejectsOversize(t *testing.T) {
	storage := new(mocks.MockObjectStorage)

	input := newUpload("boleta.jpg", jpegContent)
	input.Header.Size = 51 << 20

	svc := service.NewImageService(storage, testS3Config(), nil)
	_, err := svc.Upload(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadRejectsMismatchedContent(t *testing.T) {
	storage := new(mocks.MockObjectStorage)

	svc := service.NewImageService(storage, testS3Config(), nil)
	_, err := svc.Upload(context.Background(), newUpload("boleta.png", []byte("texto plano, no una imagen")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadStorageError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 caido"))

	svc := service.NewImageService(storage, testS3Config(), nil)
	_, err := svc.Upload(context.Background(), newUpload("boleta.jpg", jpegContent))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestUploadPresignError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).
		Return(&port.UploadOutput{Location: "https://rendix-uploads.s3.amazonaws.com/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, mock.AnythingOfType("string"), int64(3600)).
		Return("", errors.New("firma fallida"))

	svc := service.NewImageService(storage, testS3Config(), nil)
	_, err := svc.Upload(context.Background(), newUpload("boleta.jpg", jpegContent))
	require.Error(t, err)
	assert.ErrorContains(t, err, "presigning uploaded image")
	assert.NotErrorIs(t, err, domain.ErrUploadFailed)
}

func TestDelete(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Delete", mock.Anything, "images/abc.jpg").Return(nil)

	svc := service.NewImageService(storage, testS3Config(), nil)
	assert.NoError(t, svc.Delete(context.Background(), "images/abc.jpg"))
	storage.AssertExpectations(t)
}

func TestDeleteError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	boom := errors.New("s3 caido")
	storage.On("Delete", mock.Anything, "images/abc.jpg").Return(boom)

	svc := service.NewImageService(storage, testS3Config(), nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), "images/abc.jpg"), boom)
}
