package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"ecosort/internal/models"
	"ecosort/internal/utils"

	"gorm.io/gorm"
)

const (
	// DefaultRecentLimit 首页"最近添加"的默认条数
	DefaultRecentLimit = 10
	maxListLimit       = 50
	maxNameLen         = 100
	maxDescriptionLen  = 500
)

// ItemService 物品集合的查询与创建
type ItemService struct {
	db    *gorm.DB
	media *MediaUploader
}

func NewItemService(db *gorm.DB, media *MediaUploader) *ItemService {
	return &ItemService{db: db, media: media}
}

// CreateItemInput 新物品的用户输入
type CreateItemInput struct {
	Name                string
	Description         string
	RecyclabilityStatus string
}

// ValidateItemInput 校验必填字段与长度限制
func ValidateItemInput(in CreateItemInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return ErrValidation
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return ErrValidation
	}
	if !models.ValidStatus(in.RecyclabilityStatus) {
		return ErrValidation
	}
	return nil
}

// ListRecent 按创建时间倒序返回最近添加的物品
func (s *ItemService) ListRecent(limit int) ([]models.Item, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var items []models.Item
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		log.Printf("查询最近物品失败: %v", err)
		return nil, ErrQueryFailed
	}
	return items, nil
}

// SearchUpperBound 返回前缀匹配的半开区间上界：末位字符 +1。
// 例如 "Bot" -> "Bou"，查询条件即 name >= "Bot" AND name < "Bou"。
func SearchUpperBound(prefix string) string {
	runes := []rune(prefix)
	if len(runes) == 0 {
		return ""
	}
	runes[len(runes)-1]++
	return string(runes)
}

// 区间比较和排序强制按字节序（COLLATE "C"）执行：
// 数据库默认 locale（如 en_US.UTF-8）先按字母后按大小写排序，
// 会让 "bottle" 落进 ["Bot", "Bou") 区间，破坏大小写敏感的前缀语义。
const (
	searchWhereExpr = `name COLLATE "C" >= ? AND name COLLATE "C" < ?`
	searchOrderExpr = `name COLLATE "C" ASC`
)

// SearchByNamePrefix 按名称前缀搜索，名称按字节序升序。
// 大小写敏感是区间匹配的天然结果，保留现状并在文档中注明。
// 空白查询直接返回空结果，不发起查询。
func (s *ItemService) SearchByNamePrefix(prefix string) ([]models.Item, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}

	var items []models.Item
	err := s.db.Where(searchWhereExpr, prefix, SearchUpperBound(prefix)).
		Order(searchOrderExpr).
		Limit(maxListLimit).
		Find(&items).Error
	if err != nil {
		log.Printf("搜索物品失败 (prefix=%q): %v", prefix, err)
		return nil, ErrQueryFailed
	}
	return items, nil
}

// GetByIid 按短 ID 查询单个物品
func (s *ItemService) GetByIid(iid string) (*models.Item, error) {
	var item models.Item
	err := s.db.Where("iid = ?", iid).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("查询物品失败 (iid=%s): %v", iid, err)
		return nil, ErrQueryFailed
	}
	return &item, nil
}

// Create 创建新物品。带图片时先上传图片，上传失败则整体失败，
// 不会产生没有图片的"半成品"记录。
func (s *ItemService) Create(ctx context.Context, user *models.User, in CreateItemInput, file multipart.File, header *multipart.FileHeader) (*models.Item, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateItemInput(in); err != nil {
		return nil, err
	}

	imageURL := ""
	if file != nil {
		url, err := s.media.Upload(ctx, file, header, user.ID)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	item := models.Item{
		Iid:                 utils.RandStringBytesMaskImpr(8),
		UserID:              user.ID,
		UserEmail:           user.Email,
		Name:                strings.TrimSpace(in.Name),
		Description:         strings.TrimSpace(in.Description),
		RecyclabilityStatus: in.RecyclabilityStatus,
		ImageURL:            imageURL,
		Upvotes:             0,
		Downvotes:           0,
	}

	if err := s.db.Create(&item).Error; err != nil {
		log.Printf("创建物品失败: %v", err)
		return nil, ErrPersistFailed
	}
	return &item, nil
}
