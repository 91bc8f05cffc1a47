package blob

import (
	"context"
	"io"
)

// Store 对象存储抽象：上传一个对象并拿到可公开访问的 URL。
// 图片等二进制内容全部走这里，业务代码不关心底层是哪家存储。
type Store interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	PublicURL(path string) string
}
