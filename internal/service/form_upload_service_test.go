package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/response"
)

const testMaxFileSize = 10 * 1024 * 1024

func TestCreatePresignedUpload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	design := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "file", Label: "Desain", FileAccept: strPtr(".pdf,image/*")})
	anyFile := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "file", Label: "Lampiran"})
	name := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "Nama"})

	svc := NewFormUploadService(env.elementRepo, env.uploadRepo, client.NewMockS3Client(), time.Hour, testMaxFileSize, zap.NewNop())
	user := uuid.New()

	tests := []struct {
		name     string
		req      dto.PresignedURLRequest
		wantCode string
	}{
		{
			name: "성공: PDF 업로드",
			req:  dto.PresignedURLRequest{ElementID: design, FileName: "desain.pdf", ContentType: "application/pdf", FileSize: 2048},
		},
		{
			name: "성공: 이미지 타입 와일드카드",
			req:  dto.PresignedURLRequest{ElementID: design, FileName: "desain.png", ContentType: "image/png", FileSize: 2048},
		},
		{
			name: "성공: 제한 없는 요소",
			req:  dto.PresignedURLRequest{ElementID: anyFile, FileName: "catatan.docx", ContentType: "application/octet-stream", FileSize: 10},
		},
		{
			name:     "실패: 허용되지 않는 형식",
			req:      dto.PresignedURLRequest{ElementID: design, FileName: "desain.zip", ContentType: "application/zip", FileSize: 2048},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 파일 크기 초과",
			req:      dto.PresignedURLRequest{ElementID: design, FileName: "desain.pdf", ContentType: "application/pdf", FileSize: testMaxFileSize + 1},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 파일 요소가 아님",
			req:      dto.PresignedURLRequest{ElementID: name, FileName: "desain.pdf", ContentType: "application/pdf", FileSize: 2048},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 없는 요소",
			req:      dto.PresignedURLRequest{ElementID: uuid.New(), FileName: "desain.pdf", ContentType: "application/pdf", FileSize: 2048},
			wantCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CreatePresignedUpload(ctx, &user, &tt.req)
			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, resp.UploadURL, resp.FileKey)
			assert.Contains(t, resp.FileURL, resp.FileKey)
			assert.Equal(t, int(client.DefaultPresignExpiry.Seconds()), resp.ExpiresIn)

			stored, err := env.uploadRepo.FindByID(ctx, resp.UploadID)
			require.NoError(t, err)
			assert.Equal(t, domain.UploadStatusTemp, stored.Status)
			assert.Equal(t, tt.req.ElementID, stored.ElementID)
			assert.Equal(t, user, stored.UploadedBy)
			require.NotNil(t, stored.ExpiresAt)
			assert.True(t, stored.ExpiresAt.After(time.Now()))
		})
	}
}

func TestCreatePresignedUpload_StorageUnavailable(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFormUploadService(env.elementRepo, env.uploadRepo, nil, time.Hour, testMaxFileSize, zap.NewNop())

	_, err := svc.CreatePresignedUpload(context.Background(), nil, &dto.PresignedURLRequest{
		ElementID: uuid.New(), FileName: "a.pdf", ContentType: "application/pdf", FileSize: 1,
	})
	requireAppError(t, err, response.ErrCodeUnavailable)
}

func TestCreatePresignedUpload_PresignFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Yasin", nil)
	cover := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "file", Label: "Foto"})

	s3 := client.NewMockS3Client()
	s3.GeneratePresignedURLFunc = func(ctx context.Context, elementID, fileName, contentType string) (string, string, error) {
		return "", "", errors.New("credentials expired")
	}
	svc := NewFormUploadService(env.elementRepo, env.uploadRepo, s3, time.Hour, testMaxFileSize, zap.NewNop())

	_, err := svc.CreatePresignedUpload(ctx, nil, &dto.PresignedURLRequest{
		ElementID: cover, FileName: "foto.jpg", ContentType: "image/jpeg", FileSize: 100,
	})
	requireAppError(t, err, response.ErrCodeInternal)
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		accept      string
		fileName    string
		contentType string
		want        bool
	}{
		{".pdf", "desain.PDF", "application/pdf", true},
		{".pdf", "desain.ai", "application/postscript", false},
		{"image/*", "foto.jpg", "image/jpeg", true},
		{"image/*", "foto.pdf", "application/pdf", false},
		{"application/pdf", "x", "application/pdf; charset=binary", true},
		{" .ai , .cdr ", "logo.cdr", "application/octet-stream", true},
		{"", "apa.saja", "text/plain", true},
		{" , ", "apa.saja", "text/plain", true},
	}

	for _, tt := range tests {
		t.Run(tt.accept+"|"+tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, accepts(tt.accept, tt.fileName, tt.contentType))
		})
	}
}
