package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type s3Request struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// fakeS3 - минимальный S3 endpoint в path-style: хранит объекты в памяти,
// ключи с префиксом denied/ отвечают 403
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]string
	requests []s3Request
}

func newFakeS3(t *testing.T) (*fakeS3, *httptest.Server) {
	f := &fakeS3{objects: make(map[string]string)}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeS3) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, s3Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})

	if strings.Contains(r.URL.Path, "/denied/") {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		if r.Method != http.MethodHead {
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		f.objects[r.URL.Path] = string(body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if _, ok := f.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) last() s3Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestS3Storage(t *testing.T, endpoint string) *S3Storage {
	t.Helper()

	s, err := NewS3Storage(context.Background(), Config{
		Bucket:    "resumes-bucket",
		Region:    "us-east-1",
		AccessKey: "test-key",
		SecretKey: "test-secret",
		Endpoint:  endpoint,
	})
	require.NoError(t, err)
	return s
}

func TestS3Storage_SaveExistsDelete(t *testing.T) {
	fake, srv := newFakeS3(t)
	s := newTestS3Storage(t, srv.URL)
	ctx := context.Background()

	key := "resumes/u1/cv.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("%PDF-1.4 resume"), "application/pdf"))

	put := fake.last()
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "/resumes-bucket/resumes/u1/cv.pdf", put.Path)
	assert.Equal(t, "application/pdf", put.ContentType)
	assert.Contains(t, put.Body, "%PDF-1.4 resume")

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, key))
	assert.Equal(t, http.MethodDelete, fake.last().Method)

	// 404 на HEAD - файла нет, а не ошибка
	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3Storage_ErrorMapping(t *testing.T) {
	_, srv := newFakeS3(t)
	s := newTestS3Storage(t, srv.URL)
	ctx := context.Background()

	err := s.Save(ctx, "denied/cv.pdf", strings.NewReader("x"), "application/pdf")
	assert.ErrorContains(t, err, "failed to upload to s3")

	err = s.Delete(ctx, "denied/cv.pdf")
	assert.ErrorContains(t, err, "failed to delete from s3")

	ok, err := s.Exists(ctx, "denied/cv.pdf")
	assert.ErrorContains(t, err, "failed to stat s3 object")
	assert.False(t, ok)
}

func TestS3Storage_URLs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "public base url",
			cfg:  Config{Bucket: "b", Region: "auto", BaseURL: "https://cdn.example.com/files/", Endpoint: "https://acc.r2.cloudflarestorage.com"},
			want: "https://cdn.example.com/files/resumes/cv.pdf",
		},
		{
			name: "custom endpoint",
			cfg:  Config{Bucket: "b", Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/b/resumes/cv.pdf",
		},
		{
			name: "aws default",
			cfg:  Config{Bucket: "b", Region: "eu-west-1"},
			want: "https://b.s3.eu-west-1.amazonaws.com/resumes/cv.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewS3Storage(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.GetURL("resumes/cv.pdf"))
			assert.Equal(t, "resumes/cv.pdf", KeyFromURL(s, tt.want))
		})
	}

	_, err := NewS3Storage(context.Background(), Config{})
	assert.ErrorContains(t, err, "bucket is required")

	st, err := NewStorage(context.Background(), Config{Type: "s3", Bucket: "b", Region: "eu-west-1"})
	require.NoError(t, err)
	assert.IsType(t, &S3Storage{}, st)
}
