package handlers

import (
	"net/http"
	"strings"
	"time"

	"ecosort/internal/middleware"
	"ecosort/internal/models"
	"ecosort/internal/services"
	"ecosort/internal/utils"

	"github.com/gin-gonic/gin"
)

const recentCacheKey = "items:recent"

type ItemHandler struct {
	items  *services.ItemService
	ledger *services.VoteLedger
}

func NewItemHandler(items *services.ItemService, ledger *services.VoteLedger) *ItemHandler {
	return &ItemHandler{items: items, ledger: ledger}
}

// List 最近添加的物品 (GET /items?limit=N)
func (h *ItemHandler) List(c *gin.Context) {
	limit := utils.StringToInt(c.Query("limit"))

	// 只缓存默认条数的首屏列表，创建新物品时失效
	useCache := limit <= 0
	if useCache {
		if cached := utils.GetCache().Get(recentCacheKey); cached != nil {
			if items, ok := cached.([]models.Item); ok {
				OK(c, gin.H{"items": items})
				return
			}
		}
	}

	items, err := h.items.ListRecent(limit)
	if err != nil {
		// 调用方应渲染空列表加错误提示，而不是崩溃
		FailFromErr(c, err)
		return
	}

	if useCache {
		utils.GetCache().Set(recentCacheKey, items, 1*time.Minute)
	}

	OK(c, gin.H{"items": items})
}

// Search 按名称前缀搜索 (GET /search?q=)
func (h *ItemHandler) Search(c *gin.Context) {
	query := c.Query("q")

	items, err := h.items.SearchByNamePrefix(query)
	if err != nil {
		FailFromErr(c, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	OK(c, gin.H{"items": items, "query": strings.TrimSpace(query)})
}

// Detail 物品详情 (GET /items/:iid)
// 附带渲染后的描述 HTML 和当前用户的投票状态
func (h *ItemHandler) Detail(c *gin.Context) {
	item, err := h.items.GetByIid(c.Param("iid"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	state := services.VoteNone
	if user := middleware.CurrentUser(c); user != nil {
		state = h.ledger.LoadVote(user.ID, item.ID)
	}

	OK(c, gin.H{
		"item":             item,
		"description_html": utils.RenderMarkdown(item.Description),
		"vote":             voteStateString(state),
	})
}

// Create 创建物品 (POST /items, multipart, 需登录)
func (h *ItemHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	input := services.CreateItemInput{
		Name:                c.PostForm("name"),
		Description:         c.PostForm("description"),
		RecyclabilityStatus: c.PostForm("recyclability_status"),
	}

	// 图片可选
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		file, header = nil, nil
	} else {
		defer file.Close()

		// 验证文件类型
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			Fail(c, http.StatusBadRequest, "只允许上传图片文件")
			return
		}

		// 验证文件大小（限制 10MB）
		if header.Size > 10*1024*1024 {
			Fail(c, http.StatusBadRequest, "图片大小不能超过 10MB")
			return
		}
	}

	item, err := h.items.Create(c.Request.Context(), user, input, file, header)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	// 主动失效首屏列表缓存
	utils.GetCache().Delete(recentCacheKey)

	OK(c, gin.H{"item": item})
}
