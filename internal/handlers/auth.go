package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"ecosort/internal/db"
	"ecosort/internal/middleware"
	"ecosort/internal/models"
	"ecosort/internal/services"
	"ecosort/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	mailService    *services.MailService
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		mailService:    services.NewMailService(),
		captchaService: services.NewCaptchaService(),
	}
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}

// Captcha 下发算术验证码 (GET /captcha?type=signup|reset)
func (h *AuthHandler) Captcha(c *gin.Context) {
	captchaType := c.Query("type")
	question, answer := h.captchaService.GenerateMathProblem()

	session := sessions.Default(c)
	if captchaType == "reset" {
		session.Set("reset_captcha_answer", answer)
	} else {
		session.Set("captcha_answer", answer)
	}
	session.Save()

	OK(c, gin.H{"captcha": question})
}

// createUser 创建新用户的通用函数
func (h *AuthHandler) createUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// signupError 区分邮箱唯一索引冲突和其他写库失败：
// 只有冲突才提示"已注册"，数据库不可用时不能误导用户换邮箱
func signupError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrAlreadyExists
	}
	return services.ErrPersistFailed
}

// Register 注册并直接建立会话 (POST /signup)
func (h *AuthHandler) Register(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	captchaInput := c.PostForm("captcha")

	// Validate Captcha
	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expectedAnswer {
		Fail(c, http.StatusBadRequest, "验证码错误")
		return
	}
	// Clear captcha after use
	session.Delete("captcha_answer")
	session.Save()

	// Extract username from email
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		Fail(c, http.StatusBadRequest, "邮箱格式不正确")
		return
	}
	username := parts[0]

	if len(password) < 6 {
		Fail(c, http.StatusBadRequest, "密码至少6位")
		return
	}

	user, err := h.createUser(username, email, password)
	if err != nil {
		log.Printf("创建用户失败 (email=%s): %v", email, err)
		FailFromErr(c, signupError(err))
		return
	}

	h.mailService.SendWelcomeEmail(email)

	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": userJSON(user)})
}

// Login 登录 (POST /login)
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		// 不区分"用户不存在"和"密码错误"
		FailFromErr(c, services.ErrInvalidCredentials)
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		FailFromErr(c, services.ErrInvalidCredentials)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": userJSON(&user)})
}

// Logout 退出登录 (GET /logout)
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, nil)
}

// Me 返回当前会话用户，未登录时 user 为 null (GET /me)
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		OK(c, gin.H{"user": nil})
		return
	}
	OK(c, gin.H{"user": userJSON(user)})
}

// ForgotPassword 发送密码重置验证码 (POST /forgot-password)
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	captchaInput := c.PostForm("captcha")

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("reset_captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expectedAnswer {
		Fail(c, http.StatusBadRequest, "验证码错误")
		return
	}
	session.Delete("reset_captcha_answer")
	session.Save()

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		// 不暴露邮箱是否注册过
		OK(c, gin.H{"message": "如果邮箱存在，验证码已发送，请查收。"})
		return
	}

	// 验证码必须先落库再发信，否则用户收到的码永远校验不过
	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	if err := db.DB.Save(&user).Error; err != nil {
		log.Printf("保存重置验证码失败 (email=%s): %v", email, err)
		FailFromErr(c, services.ErrPersistFailed)
		return
	}
	h.mailService.SendPasswordResetEmail(email, code)

	OK(c, gin.H{"message": "如果邮箱存在，验证码已发送，请查收。"})
}

// ResetPassword 用验证码重置密码 (POST /reset-password)
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	code := c.PostForm("code")
	newPassword := c.PostForm("password")

	if len(newPassword) < 6 {
		Fail(c, http.StatusBadRequest, "密码至少6位")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Fail(c, http.StatusBadRequest, "验证码错误或已失效")
		return
	}

	if user.VerifyCode == "" || user.VerifyCode != code {
		Fail(c, http.StatusBadRequest, "验证码错误或已失效")
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		FailFromErr(c, services.ErrPersistFailed)
		return
	}
	user.Password = hash
	user.VerifyCode = "" // Clear code
	if err := db.DB.Save(&user).Error; err != nil {
		log.Printf("保存新密码失败 (email=%s): %v", email, err)
		FailFromErr(c, services.ErrPersistFailed)
		return
	}

	OK(c, gin.H{"message": "密码重置成功，请登录"})
}
