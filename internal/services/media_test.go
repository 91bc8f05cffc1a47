package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"
)

// fakeBlobStore 记录上传调用的内存实现
type fakeBlobStore struct {
	lastPath        string
	lastContentType string
	failUpload      bool
}

func (f *fakeBlobStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if f.failUpload {
		return errors.New("connection reset")
	}
	f.lastPath = path
	f.lastContentType = contentType
	return nil
}

func (f *fakeBlobStore) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

// nopFile 让 bytes.Reader 满足 multipart.File
type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }

func testHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "photo.jpg",
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     size,
	}
}

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	want := fmt.Sprintf("items/%d_%d", now.UnixMilli(), 42)
	if got := ObjectPath(now, 42); got != want {
		t.Errorf("ObjectPath = %q, want %q", got, want)
	}
}

func TestMediaUpload(t *testing.T) {
	store := &fakeBlobStore{}
	u := NewMediaUploader(store)

	file := nopFile{bytes.NewReader([]byte("jpegdata"))}
	url, err := u.Upload(context.Background(), file, testHeader("image/jpeg", 8), 7)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(store.lastPath, "items/") || !strings.HasSuffix(store.lastPath, "_7") {
		t.Errorf("unexpected object path %q", store.lastPath)
	}
	if store.lastContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", store.lastContentType)
	}
	if url != "https://cdn.example.com/"+store.lastPath {
		t.Errorf("unexpected public URL %q", url)
	}
}

func TestMediaUploadFailure(t *testing.T) {
	// 传输失败不重试，直接报上传失败
	u := NewMediaUploader(&fakeBlobStore{failUpload: true})

	file := nopFile{bytes.NewReader([]byte("jpegdata"))}
	_, err := u.Upload(context.Background(), file, testHeader("image/jpeg", 8), 7)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestMediaUploadUnconfigured(t *testing.T) {
	// 对象存储未配置时同样按上传失败处理
	u := NewMediaUploader(nil)

	file := nopFile{bytes.NewReader([]byte("jpegdata"))}
	_, err := u.Upload(context.Background(), file, testHeader("image/jpeg", 8), 7)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}
