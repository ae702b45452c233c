package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rendix/internal/domain"
	"rendix/internal/handler"
	"rendix/internal/service"
	"rendix/mocks"
)

func multipartUpload(t *testing.T, filename string, content []byte) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/images", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return w, c
}

func TestImageHandler_Upload_Success(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.ImageUploadInput")).
		Return(&service.UploadedImage{
			Key:          "images/5f0c6ef3-90cd-4f0e-9f2a-b0846f7c7f11.jpg",
			ImageURL:     "https://rendix-uploads.s3.amazonaws.com/images/5f0c6ef3.jpg?firmada",
			FileType:     domain.FileTypeJPG,
			Size:         20,
			OriginalName: "boleta.jpg",
		}, nil)

	w, c := multipartUpload(t, "boleta.jpg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("fake jpeg body")...))
	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "images/5f0c6ef3-90cd-4f0e-9f2a-b0846f7c7f11.jpg", data["key"])
	assert.Equal(t, "https://rendix-uploads.s3.amazonaws.com/images/5f0c6ef3.jpg?firmada", data["image_url"])
	mockSvc.AssertExpectations(t)
}

func TestImageHandler_Upload_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/images", nil)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImageHandler_Upload_UnsupportedType(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)
	mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	w, c := multipartUpload(t, "boleta.pdf", []byte("%PDF-1.4"))
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestImageHandler_Upload_FileTooLarge(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)
	mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrFileTooLarge)

	w, c := multipartUpload(t, "boleta.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	h.Upload(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
}

func TestImageHandler_Upload_StorageFailure(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)
	mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUploadFailed)

	w, c := multipartUpload(t, "boleta.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	h.Upload(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UPLOAD_FAILED", resp.Error.Code)
}

func TestImageHandler_Delete_Success(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)
	mockSvc.On("Delete", mock.Anything, "images/abc.jpg").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/images/images/abc.jpg", nil)
	c.Params = gin.Params{{Key: "key", Value: "/images/abc.jpg"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestImageHandler_Delete_MissingKey(t *testing.T) {
	mockSvc := new(mocks.MockImageService)
	h := handler.NewImageHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/images/", nil)
	c.Params = gin.Params{{Key: "key", Value: "/"}}

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_KEY", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
