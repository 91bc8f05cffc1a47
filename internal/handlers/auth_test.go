package handlers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ecosort/internal/db"
	"ecosort/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestSignupErrorMapping(t *testing.T) {
	// 只有唯一索引冲突才提示"已注册"
	if got := signupError(gorm.ErrDuplicatedKey); !errors.Is(got, services.ErrAlreadyExists) {
		t.Errorf("duplicated key: got %v, want ErrAlreadyExists", got)
	}
	// 其他写库失败不能误导用户换邮箱重试
	if got := signupError(errors.New("connection refused")); !errors.Is(got, services.ErrPersistFailed) {
		t.Errorf("generic failure: got %v, want ErrPersistFailed", got)
	}
}

// readOnlyConnector 查询返回单个用户行、写入一律失败的存根驱动，
// 模拟"读到了用户但写库失败"的数据库
type readOnlyConnector struct{}

func (readOnlyConnector) Connect(context.Context) (driver.Conn, error) { return &readOnlyConn{}, nil }
func (readOnlyConnector) Driver() driver.Driver                        { return readOnlyDriver{} }

type readOnlyDriver struct{}

func (readOnlyDriver) Open(string) (driver.Conn, error) { return &readOnlyConn{}, nil }

type readOnlyConn struct{}

func (c *readOnlyConn) Prepare(query string) (driver.Stmt, error) {
	return &readOnlyStmt{query: query}, nil
}
func (c *readOnlyConn) Close() error              { return nil }
func (c *readOnlyConn) Begin() (driver.Tx, error) { return readOnlyTx{}, nil }

type readOnlyTx struct{}

func (readOnlyTx) Commit() error   { return nil }
func (readOnlyTx) Rollback() error { return nil }

type readOnlyStmt struct{ query string }

func (s *readOnlyStmt) Close() error  { return nil }
func (s *readOnlyStmt) NumInput() int { return -1 }

func (s *readOnlyStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("disk full")
}

func (s *readOnlyStmt) Query([]driver.Value) (driver.Rows, error) {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s.query)), "SELECT") {
		return &singleUserRows{}, nil
	}
	return nil, errors.New("disk full")
}

type singleUserRows struct{ done bool }

func (r *singleUserRows) Columns() []string {
	return []string{"id", "username", "email", "password", "verify_code", "created_at", "updated_at"}
}

func (r *singleUserRows) Close() error { return nil }

func (r *singleUserRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	now := time.Now()
	dest[0] = int64(1)
	dest[1] = "tester"
	dest[2] = "tester@example.com"
	dest[3] = "x"
	dest[4] = ""
	dest[5] = now
	dest[6] = now
	return nil
}

// 验证码落库失败时必须报错返回，而不是把一个数据库里不存在的码发给用户
func TestForgotPasswordPersistFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sql.OpenDB(readOnlyConnector{})}),
		&gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	oldDB := db.DB
	db.DB = gormDB
	defer func() { db.DB = oldDB }()

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	h := NewAuthHandler()
	// 预置会话里的验证码答案，替代先请求 /captcha 再解题
	r.GET("/seed", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("reset_captcha_answer", 7)
		session.Save()
		c.Status(http.StatusOK)
	})
	r.POST("/forgot-password", h.ForgotPassword)

	seed := httptest.NewRecorder()
	r.ServeHTTP(seed, httptest.NewRequest("GET", "/seed", nil))

	form := url.Values{"email": {"tester@example.com"}, "captcha": {"7"}}
	req := httptest.NewRequest("POST", "/forgot-password", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range seed.Result().Cookies() {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected failure response when the code cannot be persisted")
	}
}
