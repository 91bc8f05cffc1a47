package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// MailService 发送密码重置等通知邮件。
// SMTP 环境变量不全时自动禁用，调用方无感知。
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: EcoSort <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("发送邮件失败 (to=%s): %v", strings.Join(to, ","), err)
		}
	}()
}

// SendWelcomeEmail 注册成功后的欢迎邮件
func (s *MailService) SendWelcomeEmail(to string) {
	body := `<p>欢迎加入 EcoSort！</p>
<p>在这里你可以查询、分享身边物品的可回收信息，也可以为别人的条目投票，帮助大家一起做对分类。</p>`
	s.sendAsync([]string{to}, "欢迎加入 EcoSort", body)
}

// SendPasswordResetEmail 发送密码重置验证码
func (s *MailService) SendPasswordResetEmail(to string, code string) {
	body := fmt.Sprintf(`<p>您正在重置 EcoSort 账号密码。</p>
<p>验证码：<strong>%s</strong></p>
<p>如果不是您本人操作，请忽略本邮件。</p>`, code)
	s.sendAsync([]string{to}, "EcoSort 密码重置", body)
}
