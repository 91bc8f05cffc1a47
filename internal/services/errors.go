package services

import "errors"

// 业务错误分类。Handler 层统一映射为用户可见的提示和 HTTP 状态码，
// 任何一类都不会让进程退出。
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrQueryFailed        = errors.New("query failed")
	ErrPersistFailed      = errors.New("persist failed")
	ErrUploadFailed       = errors.New("upload failed")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
