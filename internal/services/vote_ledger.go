package services

import (
	"errors"
	"log"

	"ecosort/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteValue 用户对单个物品的当前立场
type VoteValue string

const (
	VoteNone VoteValue = ""     // 未投票或已撤销
	VoteUp   VoteValue = "up"   // 赞成（可回收）
	VoteDown VoteValue = "down" // 反对
)

// ValidTarget 投票目标只能是 up 或 down；撤销通过重复投相同票实现
func ValidTarget(v VoteValue) bool {
	return v == VoteUp || v == VoteDown
}

// CounterDelta 一次投票对展示计数的净变化。
// 只作用于展示层的副本，不回写 items 表的冗余计数（两者允许漂移）。
type CounterDelta struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// ResolveVote 计算投票状态机的一次转移。
// 状态 {None, Up, Down}，输入 cast(target)：
//   - 重复投相同票视为撤销（Up -> None / Down -> None）
//   - 换边时旧计数 -1、新计数 +1
func ResolveVote(current, target VoteValue) (VoteValue, CounterDelta) {
	var delta CounterDelta

	// 撤销
	if current == target {
		if target == VoteUp {
			delta.Upvotes = -1
		} else {
			delta.Downvotes = -1
		}
		return VoteNone, delta
	}

	// 新投或换边
	if target == VoteUp {
		delta.Upvotes = 1
		if current == VoteDown {
			delta.Downvotes = -1
		}
	} else {
		delta.Downvotes = 1
		if current == VoteUp {
			delta.Upvotes = -1
		}
	}
	return target, delta
}

// voteStore 台账的持久化层。按 (user, item) 读单条记录，
// 不存在时返回 gorm.ErrRecordNotFound。
type voteStore interface {
	find(userID, itemID uint) (*models.Vote, error)
	upsert(vote *models.Vote) error
}

type gormVoteStore struct {
	db *gorm.DB
}

func (s gormVoteStore) find(userID, itemID uint) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s gormVoteStore) upsert(vote *models.Vote) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(vote).Error
}

// VoteLedger 维护 (user, item) 为键的投票台账
type VoteLedger struct {
	store voteStore
}

func NewVoteLedger(db *gorm.DB) *VoteLedger {
	return &VoteLedger{store: gormVoteStore{db: db}}
}

func newVoteLedgerWithStore(store voteStore) *VoteLedger {
	return &VoteLedger{store: store}
}

// LoadVote 查询用户在某物品上的当前投票。
// 读失败只记日志并按"未投票"处理，不打断浏览流程——代价是偶发的
// 真实投票在界面上显示为未投，属于可接受的降级。
func (l *VoteLedger) LoadVote(userID, itemID uint) VoteValue {
	if userID == 0 {
		return VoteNone
	}

	vote, err := l.store.find(userID, itemID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("加载投票记录失败 (user=%d item=%d): %v", userID, itemID, err)
		}
		return VoteNone
	}
	return VoteValue(vote.Value)
}

// CastVote 执行一次投票动作，返回新状态和展示计数的增量。
// 记录先落库再返回；落库失败时调用方不得应用增量（两阶段乐观更新的回滚路径）。
func (l *VoteLedger) CastVote(userID, itemID uint, target VoteValue) (VoteValue, CounterDelta, error) {
	if userID == 0 {
		return VoteNone, CounterDelta{}, ErrNotAuthenticated
	}
	if !ValidTarget(target) {
		return VoteNone, CounterDelta{}, ErrValidation
	}

	// 读取现有记录；无记录与 Value 为空等价于 None
	current := VoteNone
	existing, err := l.store.find(userID, itemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("读取投票记录失败 (user=%d item=%d): %v", userID, itemID, err)
		return VoteNone, CounterDelta{}, ErrQueryFailed
	}
	if err == nil {
		current = VoteValue(existing.Value)
	}

	next, delta := ResolveVote(current, target)

	// 撤销也显式写入空值记录，而不是删除行
	vote := models.Vote{
		UserID: userID,
		ItemID: itemID,
		Value:  string(next),
	}
	if err := l.store.upsert(&vote); err != nil {
		log.Printf("写入投票记录失败 (user=%d item=%d): %v", userID, itemID, err)
		return VoteNone, CounterDelta{}, ErrPersistFailed
	}

	return next, delta, nil
}
