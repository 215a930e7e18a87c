package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/types"
)

// TagService 标签业务逻辑.
type TagService struct {
	db *gorm.DB
}

// NewTagService 创建标签服务.
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create 创建标签. 同一用户下名称唯一（大小写敏感），重名返回 Conflict.
func (s *TagService) Create(ctx context.Context, ownerID uint, req *types.CreateTagRequest) (*types.TagSummary, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("owner_id = ? AND name = ?", ownerID, req.Name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, NewConflict("tag already exists")
	}

	tag := model.Tag{
		Name:    req.Name,
		OwnerID: ownerID,
	}

	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}

	out := types.NewTagSummary(&tag, 0)

	return &out, nil
}

// List 列出当前用户的全部标签，按名称升序，附带文件数统计.
func (s *TagService) List(ctx context.Context, ownerID uint) ([]types.TagSummary, error) {
	var tags []model.Tag

	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	out := make([]types.TagSummary, 0, len(tags))

	for i := range tags {
		count, err := s.countFiles(ctx, tags[i].ID)
		if err != nil {
			return nil, err
		}

		out = append(out, types.NewTagSummary(&tags[i], count))
	}

	return out, nil
}

// Get 取单个标签详情，内嵌打了该标签的文件.
func (s *TagService) Get(ctx context.Context, ownerID, tagID uint) (*types.TagDetail, error) {
	tag, err := fetchOwned[model.Tag](s.db.WithContext(ctx), tagID, ownerID, "tag")
	if err != nil {
		return nil, err
	}

	var files []model.File

	err = s.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN file_tags ON file_tags.file_id = files.id").
		Where("file_tags.tag_id = ?", tag.ID).
		Order("files.created_at desc").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	detail := types.TagDetail{
		TagSummary: types.NewTagSummary(tag, int64(len(files))),
		Files:      make([]types.FileSummary, 0, len(files)),
	}

	for i := range files {
		detail.Files = append(detail.Files, types.NewFileSummary(&files[i]))
	}

	return &detail, nil
}

// Delete 删除标签. 关联记录一并清除，文件本身不受影响.
func (s *TagService) Delete(ctx context.Context, ownerID, tagID uint) error {
	tag, err := fetchOwned[model.Tag](s.db.WithContext(ctx), tagID, ownerID, "tag")
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&model.FileTag{}).Error; err != nil {
			return err
		}

		return tx.Delete(tag).Error
	})
}

func (s *TagService) countFiles(ctx context.Context, tagID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&model.FileTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error

	return count, err
}
