package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/storage/blob"
	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	"github.com/yeisme/assetvault/pkg/internal/types"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/queue"
)

// FileService 文件元数据与内容的业务逻辑.
type FileService struct {
	db       *gorm.DB
	blob     blob.Store
	bus      *mq.Client
	maxBytes int64
}

// NewFileService 创建文件服务. maxBytes 是单次上传大小上限.
func NewFileService(db *gorm.DB, store blob.Store, bus *mq.Client, maxBytes int64) *FileService {
	return &FileService{db: db, blob: store, bus: bus, maxBytes: maxBytes}
}

// Get 取单个文件（带所有权校验），预加载关联.
func (s *FileService) Get(ctx context.Context, ownerID, fileID uint) (*types.FileSummary, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file", "Tags", "Folder", "Owner")
	if err != nil {
		return nil, err
	}

	out := types.NewFileSummary(file)

	return &out, nil
}

// GetPublic 无认证地取文件记录，用于公开预览. 只区分存在与否.
func (s *FileService) GetPublic(ctx context.Context, fileID uint) (*model.File, error) {
	var file model.File

	if err := s.db.WithContext(ctx).First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("file not found")
		}

		return nil, err
	}

	return &file, nil
}

// Open 打开文件内容流（带所有权校验）.
func (s *FileService) Open(ctx context.Context, ownerID, fileID uint) (*model.File, *blob.Object, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.blob.Get(ctx, file.ObjectKey)
	if err != nil {
		return nil, nil, NewNotFound("file content not found")
	}

	return file, obj, nil
}

// OpenPublic 无认证地打开文件内容流，用于公开预览.
func (s *FileService) OpenPublic(ctx context.Context, fileID uint) (*model.File, *blob.Object, error) {
	file, err := s.GetPublic(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.blob.Get(ctx, file.ObjectKey)
	if err != nil {
		return nil, nil, NewNotFound("file content not found")
	}

	return file, obj, nil
}

// List 按过滤条件列出当前用户的文件. 所有过滤条件取交集，
// search 大小写不敏感，结果按创建时间降序分页.
func (s *FileService) List(ctx context.Context, ownerID uint, q *types.ListFilesQuery) (*types.ListFilesResponse, error) {
	q.Normalize()

	base := s.db.WithContext(ctx).
		Model(&model.File{}).
		Where("files.owner_id = ?", ownerID)

	if q.Search != "" {
		base = base.Where("LOWER(files.name) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}

	if q.Type != "" {
		base = base.Where("files.type = ?", q.Type)
	}

	if q.FolderID != nil {
		base = base.Where("files.folder_id = ?", *q.FolderID)
	}

	if q.TagID != nil {
		base = base.
			Joins("JOIN file_tags ON file_tags.file_id = files.id").
			Where("file_tags.tag_id = ?", *q.TagID)
	}

	// base 会被执行两次（Count + Find），用 Session 保证链可复用
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var files []model.File

	err := base.
		Preload("Tags").
		Preload("Folder").
		Order("files.created_at desc").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	resp := types.ListFilesResponse{
		Files: make([]types.FileSummary, 0, len(files)),
		Pagination: types.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: int((total + int64(q.Limit) - 1) / int64(q.Limit)),
		},
	}

	for i := range files {
		resp.Files = append(resp.Files, types.NewFileSummary(&files[i]))
	}

	return &resp, nil
}

// Move 移动文件到文件夹（或移出，folderID 为 nil）. 目标文件夹必须属于当前用户.
func (s *FileService) Move(ctx context.Context, ownerID, fileID uint, folderID *uint) (*types.FileSummary, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		if _, err := fetchOwned[model.Folder](s.db.WithContext(ctx), *folderID, ownerID, "folder"); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(file).Update("folder_id", folderID).Error; err != nil {
		return nil, err
	}

	return s.Get(ctx, ownerID, fileID)
}

// MoveToFolder 把文件移入指定文件夹. 先校验文件夹所有权，再校验文件.
func (s *FileService) MoveToFolder(ctx context.Context, ownerID, folderID, fileID uint) (*types.FileSummary, error) {
	if _, err := fetchOwned[model.Folder](s.db.WithContext(ctx), folderID, ownerID, "folder"); err != nil {
		return nil, err
	}

	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(file).Update("folder_id", folderID).Error; err != nil {
		return nil, err
	}

	return s.Get(ctx, ownerID, fileID)
}

// Delete 删除文件：先尽力删除 blob（失败只记录日志），再删数据库记录和标签关联.
func (s *FileService) Delete(ctx context.Context, ownerID, fileID uint) (*types.DeleteFileResponse, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, err
	}

	if err := s.blob.Delete(ctx, file.ObjectKey); err != nil {
		alog.Logger().Warn().Err(err).Str("key", file.ObjectKey).Msg("删除 blob 失败，继续删除记录")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileTag{}).Error; err != nil {
			return err
		}

		return tx.Delete(file).Error
	})
	if err != nil {
		return nil, err
	}

	s.publishDeleted(ctx, file)

	return &types.DeleteFileResponse{Deleted: true}, nil
}

// AddTag 给文件打标签. 文件和标签都必须属于当前用户；重复打同一标签是幂等操作.
func (s *FileService) AddTag(ctx context.Context, ownerID, fileID, tagID uint) (*types.FileSummary, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, err
	}

	if _, err := fetchOwned[model.Tag](s.db.WithContext(ctx), tagID, ownerID, "tag"); err != nil {
		return nil, err
	}

	var count int64

	err = s.db.WithContext(ctx).
		Model(&model.FileTag{}).
		Where("file_id = ? AND tag_id = ?", file.ID, tagID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count == 0 {
		if err := s.db.WithContext(ctx).Create(&model.FileTag{FileID: file.ID, TagID: tagID}).Error; err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, ownerID, fileID)
}

// RemoveTag 移除文件上的标签. 关联不存在时返回 NotFound.
func (s *FileService) RemoveTag(ctx context.Context, ownerID, fileID, tagID uint) (*types.FileSummary, error) {
	file, err := fetchOwned[model.File](s.db.WithContext(ctx), fileID, ownerID, "file")
	if err != nil {
		return nil, err
	}

	if _, err := fetchOwned[model.Tag](s.db.WithContext(ctx), tagID, ownerID, "tag"); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Where("file_id = ? AND tag_id = ?", file.ID, tagID).
		Delete(&model.FileTag{})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, NewNotFound("tag is not attached to this file")
	}

	return s.Get(ctx, ownerID, fileID)
}

// publishDeleted 发布删除事件. 发布失败只记录日志.
func (s *FileService) publishDeleted(ctx context.Context, file *model.File) {
	msg, err := queue.NewMessage(queue.TopicFileDeleted, queue.FileDeleted{
		FileID:   file.ID,
		FileName: file.Name,
		OwnerID:  file.OwnerID,
	})
	if err != nil {
		alog.Logger().Error().Err(err).Msg("编码删除事件失败")

		return
	}

	if err := s.bus.Publish(ctx, queue.TopicFileDeleted, msg); err != nil {
		alog.Logger().Warn().Err(err).Uint("file", file.ID).Msg("发布删除事件失败")
	}
}
