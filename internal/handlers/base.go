package handlers

import (
	"errors"
	"net/http"

	"ecosort/internal/services"

	"github.com/gin-gonic/gin"
)

// OK 输出成功响应，统一带 success 标记
func OK(c *gin.Context, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(http.StatusOK, obj)
}

// Fail 输出用户可见的错误提示
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

// FailFromErr 把业务错误映射为提示文案和状态码。
// 所有外部调用失败都走这里转为响应，不向上抛。
func FailFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		Fail(c, http.StatusBadRequest, "请完整填写必填内容")
	case errors.Is(err, services.ErrNotAuthenticated):
		Fail(c, http.StatusUnauthorized, "请先登录")
	case errors.Is(err, services.ErrNotFound):
		Fail(c, http.StatusNotFound, "内容不存在")
	case errors.Is(err, services.ErrAlreadyExists):
		Fail(c, http.StatusConflict, "邮箱已注册")
	case errors.Is(err, services.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "邮箱或密码错误")
	case errors.Is(err, services.ErrUploadFailed):
		Fail(c, http.StatusInternalServerError, "图片上传失败，请稍后重试")
	case errors.Is(err, services.ErrQueryFailed):
		Fail(c, http.StatusInternalServerError, "加载失败，请稍后重试")
	case errors.Is(err, services.ErrPersistFailed):
		Fail(c, http.StatusInternalServerError, "保存失败，请稍后重试")
	default:
		Fail(c, http.StatusInternalServerError, "操作失败，请稍后重试")
	}
}
