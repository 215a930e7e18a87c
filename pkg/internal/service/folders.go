package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/types"
)

// FolderService 文件夹业务逻辑.
type FolderService struct {
	db *gorm.DB
}

// NewFolderService 创建文件夹服务.
func NewFolderService(db *gorm.DB) *FolderService {
	return &FolderService{db: db}
}

// Create 创建文件夹. 同名文件夹允许存在.
func (s *FolderService) Create(ctx context.Context, ownerID uint, req *types.CreateFolderRequest) (*types.FolderSummary, error) {
	folder := model.Folder{
		Name:    req.Name,
		OwnerID: ownerID,
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, err
	}

	out := types.NewFolderSummary(&folder, 0)

	return &out, nil
}

// List 列出当前用户的全部文件夹，按创建时间降序，附带文件数统计.
func (s *FolderService) List(ctx context.Context, ownerID uint) ([]types.FolderSummary, error) {
	var folders []model.Folder

	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}

	out := make([]types.FolderSummary, 0, len(folders))

	for i := range folders {
		count, err := s.countFiles(ctx, folders[i].ID)
		if err != nil {
			return nil, err
		}

		out = append(out, types.NewFolderSummary(&folders[i], count))
	}

	return out, nil
}

// Get 取单个文件夹详情，内嵌其中的文件.
func (s *FolderService) Get(ctx context.Context, ownerID, folderID uint) (*types.FolderDetail, error) {
	folder, err := fetchOwned[model.Folder](s.db.WithContext(ctx), folderID, ownerID, "folder")
	if err != nil {
		return nil, err
	}

	var files []model.File

	err = s.db.WithContext(ctx).
		Preload("Tags").
		Where("folder_id = ?", folder.ID).
		Order("created_at desc").
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	detail := types.FolderDetail{
		FolderSummary: types.NewFolderSummary(folder, int64(len(files))),
		Files:         make([]types.FileSummary, 0, len(files)),
	}

	for i := range files {
		detail.Files = append(detail.Files, types.NewFileSummary(&files[i]))
	}

	return &detail, nil
}

// Rename 重命名文件夹.
func (s *FolderService) Rename(ctx context.Context, ownerID, folderID uint, req *types.RenameFolderRequest) (*types.FolderSummary, error) {
	folder, err := fetchOwned[model.Folder](s.db.WithContext(ctx), folderID, ownerID, "folder")
	if err != nil {
		return nil, err
	}

	// Update 会同时把新值写回 folder.Name，响应直接复用
	if err := s.db.WithContext(ctx).Model(folder).Update("name", req.Name).Error; err != nil {
		return nil, err
	}

	count, err := s.countFiles(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	out := types.NewFolderSummary(folder, count)

	return &out, nil
}

// Delete 删除文件夹. 其中的文件不删除，只把 folder_id 置空，
// 返回受影响的文件数. 两步在同一事务里完成.
func (s *FolderService) Delete(ctx context.Context, ownerID, folderID uint) (*types.DeleteFolderResponse, error) {
	folder, err := fetchOwned[model.Folder](s.db.WithContext(ctx), folderID, ownerID, "folder")
	if err != nil {
		return nil, err
	}

	var moved int64

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.File{}).
			Where("folder_id = ?", folder.ID).
			Update("folder_id", nil)
		if res.Error != nil {
			return res.Error
		}

		moved = res.RowsAffected

		return tx.Delete(folder).Error
	})
	if err != nil {
		return nil, err
	}

	return &types.DeleteFolderResponse{Deleted: true, FilesMoved: moved}, nil
}

func (s *FolderService) countFiles(ctx context.Context, folderID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&model.File{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error

	return count, err
}
