package handlers

import (
	"net/http"

	"ecosort/internal/middleware"
	"ecosort/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	ledger *services.VoteLedger
	items  *services.ItemService
}

func NewVoteHandler(ledger *services.VoteLedger, items *services.ItemService) *VoteHandler {
	return &VoteHandler{ledger: ledger, items: items}
}

// voteStateString 对外的状态表示：空值记录显示为 "none"
func voteStateString(v services.VoteValue) string {
	if v == services.VoteNone {
		return "none"
	}
	return string(v)
}

func parseTarget(s string) (services.VoteValue, bool) {
	switch s {
	case "up":
		return services.VoteUp, true
	case "down":
		return services.VoteDown, true
	}
	return services.VoteNone, false
}

// Cast 投票/撤票 (POST /items/:iid/vote, 需登录)
// 响应带 delta，由客户端应用到展示计数；失败时不返回 delta，
// 客户端保持原计数即完成回滚。物品表的冗余计数不在此处更新。
func (h *VoteHandler) Cast(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		FailFromErr(c, services.ErrNotAuthenticated)
		return
	}

	item, err := h.items.GetByIid(c.Param("iid"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	target, ok := parseTarget(c.PostForm("target"))
	if !ok {
		Fail(c, http.StatusBadRequest, "无效的投票类型")
		return
	}

	state, delta, err := h.ledger.CastVote(user.ID, item.ID, target)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	OK(c, gin.H{
		"state": voteStateString(state),
		"delta": delta,
	})
}

// Current 当前用户在该物品上的投票状态 (GET /items/:iid/vote)
// 未登录或读取失败都按未投票返回，不打断浏览
func (h *VoteHandler) Current(c *gin.Context) {
	item, err := h.items.GetByIid(c.Param("iid"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	state := services.VoteNone
	if user := middleware.CurrentUser(c); user != nil {
		state = h.ledger.LoadVote(user.ID, item.ID)
	}

	OK(c, gin.H{"state": voteStateString(state)})
}
