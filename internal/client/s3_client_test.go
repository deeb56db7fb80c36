package client

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"form-template-api/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3Client(t *testing.T, endpoint string) *S3Client {
	t.Helper()
	client, err := NewS3Client(&config.S3Config{
		Bucket:    "test-bucket",
		Region:    "ap-southeast-3",
		Endpoint:  endpoint,
		AccessKey: "test-access-key",
		SecretKey: "test-secret-key",
	})
	require.NoError(t, err)
	return client
}

func TestGenerateFileKey(t *testing.T) {
	client := newTestS3Client(t, "")
	elementID := uuid.New().String()

	tests := []struct {
		name      string
		elementID string
		fileExt   string
		wantExt   string
		wantErr   bool
	}{
		{name: "성공: pdf", elementID: elementID, fileExt: ".pdf", wantExt: ".pdf"},
		{name: "성공: 대문자 확장자", elementID: elementID, fileExt: ".PNG", wantExt: ".png"},
		{name: "성공: 확장자 없음", elementID: elementID, fileExt: "", wantExt: ""},
		{name: "실패: 잘못된 element id", elementID: "not-a-uuid", fileExt: ".pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := client.GenerateFileKey(tt.elementID, tt.fileExt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			// form/uploads/{elementId}/{year}/{month}/{uuid}_{timestamp}.ext
			parts := strings.Split(key, "/")
			require.Len(t, parts, 6)
			assert.Equal(t, "form", parts[0])
			assert.Equal(t, "uploads", parts[1])
			assert.Equal(t, tt.elementID, parts[2])
			assert.Len(t, parts[3], 4)
			assert.Len(t, parts[4], 2)
			assert.True(t, strings.HasSuffix(parts[5], tt.wantExt))
			assert.Contains(t, parts[5], "_")
		})
	}
}

func TestGenerateFileKey_DateFormatting(t *testing.T) {
	elementID := uuid.New().String()
	key, err := buildFileKey(elementID, ".jpg", time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "form/uploads/"+elementID+"/2024/03/"))
}

func TestGeneratePresignedURL(t *testing.T) {
	client := newTestS3Client(t, "")
	elementID := uuid.New().String()

	presigned, key, err := client.GeneratePresignedURL(context.Background(), elementID, "design.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	u, err := url.Parse(presigned)
	require.NoError(t, err)
	assert.Contains(t, u.Path, key)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, 300, client.ExpiresIn())
}

func TestGeneratePresignedURL_MinIOHostRewrite(t *testing.T) {
	client := newTestS3Client(t, "http://localhost:9000")
	assert.Equal(t, "http://localhost:9000/test-bucket/k?x=1", client.externalURL("http://minio:9000/test-bucket/k?x=1"))
}

func TestGeneratePresignedURL_ConcurrentCalls(t *testing.T) {
	client := newTestS3Client(t, "")
	elementID := uuid.New().String()

	var wg sync.WaitGroup
	var mu sync.Mutex
	keys := make(map[string]bool)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, key, err := client.GeneratePresignedURL(context.Background(), elementID, "a.png", "image/png")
			assert.NoError(t, err)
			mu.Lock()
			keys[key] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, keys, 10)
}

func TestNewS3Client_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.S3Config
	}{
		{name: "bucket 없음", cfg: &config.S3Config{Region: "ap-southeast-3"}},
		{name: "region 없음", cfg: &config.S3Config{Bucket: "b"}},
		{name: "MinIO 자격 증명 없음", cfg: &config.S3Config{Bucket: "b", Region: "r", Endpoint: "http://localhost:9000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewS3Client(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "https://test-bucket.s3.ap-southeast-3.amazonaws.com/form/x.pdf",
		newTestS3Client(t, "").GetFileURL("form/x.pdf"))
	assert.Equal(t, "http://localhost:9000/test-bucket/form/x.pdf",
		newTestS3Client(t, "http://localhost:9000/").GetFileURL("form/x.pdf"))
}

func TestMockS3Client_RecordsDeletes(t *testing.T) {
	m := NewMockS3Client()
	require.NoError(t, m.DeleteFile(context.Background(), "a"))
	require.NoError(t, m.DeleteFile(context.Background(), "b"))
	assert.Equal(t, []string{"a", "b"}, m.Deleted)
}
