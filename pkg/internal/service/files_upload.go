package service

import (
	"context"
	"io"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/types"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/metrics"
	"github.com/yeisme/assetvault/pkg/queue"
)

// UploadInput 上传文件的输入.
type UploadInput struct {
	// Name 原始文件名
	Name string
	// MimeType 客户端声明的 Content-Type
	MimeType string
	Size     int64
	Content  io.Reader
	// FolderID 可选的目标文件夹
	FolderID *uint
}

// Upload 保存文件：大小校验 -> 目标文件夹归属校验 -> 写 blob -> 写记录 -> 发事件.
// 超过大小上限在写入任何东西之前拒绝.
func (s *FileService) Upload(ctx context.Context, ownerID uint, in *UploadInput) (*types.FileSummary, error) {
	if in.Name == "" {
		return nil, NewValidation("file name is required")
	}

	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, NewTooLarge("file exceeds the upload size limit")
	}

	var folder *model.Folder

	if in.FolderID != nil {
		var err error

		folder, err = fetchOwned[model.Folder](s.db.WithContext(ctx), *in.FolderID, ownerID, "folder")
		if err != nil {
			return nil, err
		}
	}

	key, etag, err := s.blob.Put(ctx, in.Name, in.Content, in.Size)
	if err != nil {
		return nil, err
	}

	fileType := model.ClassifyMIME(in.MimeType)

	file := model.File{
		Name:      in.Name,
		ObjectKey: key,
		MimeType:  in.MimeType,
		Type:      fileType,
		Size:      in.Size,
		ETag:      etag,
		OwnerID:   ownerID,
		FolderID:  in.FolderID,
	}

	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		// 记录写入失败时回收已写入的 blob
		if derr := s.blob.Delete(ctx, key); derr != nil {
			alog.Logger().Warn().Err(derr).Str("key", key).Msg("回收孤立 blob 失败")
		}

		return nil, err
	}

	file.Folder = folder

	metrics.UploadCounter.WithLabelValues(string(fileType)).Inc()
	metrics.UploadBytes.Observe(float64(in.Size))

	s.publishUploaded(ctx, &file)

	// 响应内嵌 owner 和 folder
	return s.Get(ctx, ownerID, file.ID)
}

// publishUploaded 发布上传事件. 发布失败只记录日志.
func (s *FileService) publishUploaded(ctx context.Context, file *model.File) {
	var owner model.User
	if err := s.db.WithContext(ctx).First(&owner, file.OwnerID).Error; err != nil {
		alog.Logger().Warn().Err(err).Uint("owner", file.OwnerID).Msg("读取上传者失败，跳过事件")

		return
	}

	msg, err := queue.NewMessage(queue.TopicFileUploaded, queue.FileUploaded{
		FileID:     file.ID,
		FileName:   file.Name,
		FileType:   string(file.Type),
		Size:       file.Size,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		OwnerName:  owner.Name,
	})
	if err != nil {
		alog.Logger().Error().Err(err).Msg("编码上传事件失败")

		return
	}

	if err := s.bus.Publish(ctx, queue.TopicFileUploaded, msg); err != nil {
		alog.Logger().Warn().Err(err).Uint("file", file.ID).Msg("发布上传事件失败")
	}
}
