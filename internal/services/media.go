package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"ecosort/internal/blob"
)

// MediaUploader 把本地图片传到对象存储并返回公开 URL
type MediaUploader struct {
	store blob.Store
}

func NewMediaUploader(store blob.Store) *MediaUploader {
	return &MediaUploader{store: store}
}

// ObjectPath 生成防碰撞的存储路径：items/{毫秒时间戳}_{用户ID}
func ObjectPath(now time.Time, ownerID uint) string {
	return fmt.Sprintf("items/%d_%d", now.UnixMilli(), ownerID)
}

// Upload 单次尝试上传，失败不重试，由用户重新操作。
// 存储未配置时同样按上传失败处理。
func (u *MediaUploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, ownerID uint) (string, error) {
	if u == nil || u.store == nil {
		log.Println("图片上传失败: 对象存储未配置")
		return "", ErrUploadFailed
	}

	contentType := ""
	if header != nil {
		contentType = header.Header.Get("Content-Type")
	}
	size := int64(-1)
	if header != nil {
		size = header.Size
	}

	path := ObjectPath(time.Now(), ownerID)
	if err := u.store.Upload(ctx, path, file, size, contentType); err != nil {
		log.Printf("图片上传失败 (path=%s): %v", path, err)
		return "", ErrUploadFailed
	}

	return u.store.PublicURL(path), nil
}
