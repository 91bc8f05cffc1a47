package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecosort/internal/services"

	"github.com/gin-gonic/gin"
)

func TestSearchEmptyQuerySkipsStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// service 的 db 为 nil：空白查询必须在触库前返回，否则 panic
	h := NewItemHandler(services.NewItemService(nil, nil), services.NewVoteLedger(nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?q=%20%20", nil)

	h.Search(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Items   []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Error("expected success response")
	}
	if len(resp.Items) != 0 {
		t.Errorf("expected empty items, got %d", len(resp.Items))
	}
}
