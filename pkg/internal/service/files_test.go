package service_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/service"
	"github.com/yeisme/assetvault/pkg/internal/types"
)

func TestUploadClassifiesAndEmbeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "up@example.com", "Uploader")

	folder, err := env.folders.Create(ctx, owner, &types.CreateFolderRequest{Name: "Docs"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	file := env.mustUpload(t, owner, "notes.txt", "text/plain", "hello world", &folder.ID)

	if file.Type != model.FileTypeDocument {
		t.Errorf("type = %q, want document", file.Type)
	}

	if file.Size != int64(len("hello world")) {
		t.Errorf("size = %d", file.Size)
	}

	if file.Owner == nil || file.Owner.ID != owner {
		t.Error("upload response should embed the owner")
	}

	if file.Folder == nil || file.Folder.ID != folder.ID {
		t.Error("upload response should embed the folder")
	}
}

func TestUploadOversizeRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "big@example.com", "Big")

	_, err := env.files.Upload(ctx, owner, &service.UploadInput{
		Name:     "huge.bin",
		MimeType: "application/octet-stream",
		Size:     testMaxUpload + 1,
		Content:  strings.NewReader(""),
	})

	se := svcError(t, err)
	if se.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", se.Status)
	}

	if se.Code != "FILE_TOO_LARGE" {
		t.Errorf("code = %q", se.Code)
	}

	// 没有记录写入
	list, err := env.files.List(ctx, owner, &types.ListFilesQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if list.Pagination.Total != 0 {
		t.Errorf("total = %d, want 0", list.Pagination.Total)
	}
}

func TestUploadToForeignFolderForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustRegister(t, "fa@example.com", "Alice")
	mallory := env.mustRegister(t, "fm@example.com", "Mallory")

	folder, err := env.folders.Create(ctx, alice, &types.CreateFolderRequest{Name: "Private"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	_, err = env.files.Upload(ctx, mallory, &service.UploadInput{
		Name:     "sneak.txt",
		MimeType: "text/plain",
		Size:     1,
		Content:  strings.NewReader("x"),
		FolderID: &folder.ID,
	})

	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", se.Status)
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "list@example.com", "Lister")

	for i := 0; i < 25; i++ {
		env.mustUpload(t, owner, fmt.Sprintf("report-%02d.txt", i), "text/plain", "data", nil)
	}

	env.mustUpload(t, owner, "photo.png", "image/png", "png", nil)

	// 第二页：25 个 document，limit 20 -> 第二页 5 个
	resp, err := env.files.List(ctx, owner, &types.ListFilesQuery{Type: "document", Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Files) != 5 {
		t.Errorf("page 2 len = %d, want 5", len(resp.Files))
	}

	if resp.Pagination.Total != 25 || resp.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}

	// search 大小写不敏感
	resp, err = env.files.List(ctx, owner, &types.ListFilesQuery{Search: "PHOTO"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Files) != 1 || resp.Files[0].Name != "photo.png" {
		t.Errorf("search result = %+v", resp.Files)
	}

	// 过滤条件取交集
	resp, err = env.files.List(ctx, owner, &types.ListFilesQuery{Search: "photo", Type: "document"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Files) != 0 {
		t.Errorf("conjunctive filters should match nothing, got %d", len(resp.Files))
	}
}

func TestListByFolderAndTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "ft@example.com", "Filters")

	folder, err := env.folders.Create(ctx, owner, &types.CreateFolderRequest{Name: "Inbox"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	tag, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "starred"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	inFolder := env.mustUpload(t, owner, "inside.txt", "text/plain", "a", &folder.ID)
	loose := env.mustUpload(t, owner, "loose.txt", "text/plain", "b", nil)

	if _, err := env.files.AddTag(ctx, owner, loose.ID, tag.ID); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	byFolder, err := env.files.List(ctx, owner, &types.ListFilesQuery{FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("list by folder: %v", err)
	}

	if len(byFolder.Files) != 1 || byFolder.Files[0].ID != inFolder.ID {
		t.Errorf("byFolder = %+v", byFolder.Files)
	}

	byTag, err := env.files.List(ctx, owner, &types.ListFilesQuery{TagID: &tag.ID})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}

	if len(byTag.Files) != 1 || byTag.Files[0].ID != loose.ID {
		t.Errorf("byTag = %+v", byTag.Files)
	}
}

func TestAddTagIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "idem@example.com", "Idem")

	tag, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "once"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	file := env.mustUpload(t, owner, "z.txt", "text/plain", "z", nil)

	for i := 0; i < 3; i++ {
		if _, err := env.files.AddTag(ctx, owner, file.ID, tag.ID); err != nil {
			t.Fatalf("add tag: %v", err)
		}
	}

	got, err := env.files.Get(ctx, owner, file.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got.Tags) != 1 {
		t.Errorf("tags = %d, want 1", len(got.Tags))
	}
}

func TestRemoveTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "rm@example.com", "Remover")

	tag, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "gone"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	file := env.mustUpload(t, owner, "r.txt", "text/plain", "r", nil)

	// 未关联时移除 -> 404
	_, err = env.files.RemoveTag(ctx, owner, file.ID, tag.ID)
	if se := svcError(t, err); se.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", se.Status)
	}

	if _, err := env.files.AddTag(ctx, owner, file.ID, tag.ID); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	got, err := env.files.RemoveTag(ctx, owner, file.ID, tag.ID)
	if err != nil {
		t.Fatalf("remove tag: %v", err)
	}

	if len(got.Tags) != 0 {
		t.Errorf("tags = %d, want 0", len(got.Tags))
	}
}

func TestDeleteFileRemovesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "del@example.com", "Deleter")

	file := env.mustUpload(t, owner, "bye.txt", "text/plain", "goodbye", nil)

	resp, err := env.files.Delete(ctx, owner, file.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if !resp.Deleted {
		t.Error("deleted should be true")
	}

	_, err = env.files.Get(ctx, owner, file.ID)
	if se := svcError(t, err); se.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", se.Status)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "open@example.com", "Opener")

	content := "stream me"
	file := env.mustUpload(t, owner, "s.txt", "text/plain", content, nil)

	meta, obj, err := env.files.Open(ctx, owner, file.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer obj.Reader.Close()

	if meta.Name != "s.txt" {
		t.Errorf("name = %q", meta.Name)
	}

	data, err := io.ReadAll(obj.Reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}
}

func TestOpenPublicNeedsNoOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "pub@example.com", "Public")

	file := env.mustUpload(t, owner, "pub.png", "image/png", "pngbytes", nil)

	meta, obj, err := env.files.OpenPublic(ctx, file.ID)
	if err != nil {
		t.Fatalf("open public: %v", err)
	}
	obj.Reader.Close()

	if meta.Type != model.FileTypeImage {
		t.Errorf("type = %q, want image", meta.Type)
	}

	_, _, err = env.files.OpenPublic(ctx, 9999)
	if se := svcError(t, err); se.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", se.Status)
	}
}

func TestMoveFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "move@example.com", "Mover")

	folder, err := env.folders.Create(ctx, owner, &types.CreateFolderRequest{Name: "Dest"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	file := env.mustUpload(t, owner, "m.txt", "text/plain", "m", nil)

	moved, err := env.files.Move(ctx, owner, file.ID, &folder.ID)
	if err != nil {
		t.Fatalf("move in: %v", err)
	}

	if moved.FolderID == nil || *moved.FolderID != folder.ID {
		t.Errorf("folderId = %v, want %d", moved.FolderID, folder.ID)
	}

	out, err := env.files.Move(ctx, owner, file.ID, nil)
	if err != nil {
		t.Fatalf("move out: %v", err)
	}

	if out.FolderID != nil {
		t.Errorf("folderId = %v, want nil", *out.FolderID)
	}
}

func TestMoveToFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "mtf@example.com", "Mover")
	other := env.mustRegister(t, "mtf2@example.com", "Other")

	folder, err := env.folders.Create(ctx, owner, &types.CreateFolderRequest{Name: "Dest"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	file := env.mustUpload(t, owner, "mv.txt", "text/plain", "mv", nil)

	moved, err := env.files.MoveToFolder(ctx, owner, folder.ID, file.ID)
	if err != nil {
		t.Fatalf("move to folder: %v", err)
	}

	if moved.Folder == nil || moved.Folder.ID != folder.ID {
		t.Errorf("folder = %+v, want %d embedded", moved.Folder, folder.ID)
	}

	// 别人的文件夹 -> 403，文件夹不存在 -> 404
	foreign, err := env.folders.Create(ctx, other, &types.CreateFolderRequest{Name: "Theirs"})
	if err != nil {
		t.Fatalf("create foreign folder: %v", err)
	}

	_, err = env.files.MoveToFolder(ctx, owner, foreign.ID, file.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("foreign folder status = %d, want 403", se.Status)
	}

	_, err = env.files.MoveToFolder(ctx, owner, 9999, file.ID)
	if se := svcError(t, err); se.Status != http.StatusNotFound {
		t.Errorf("missing folder status = %d, want 404", se.Status)
	}
}

func TestFileOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustRegister(t, "oa@example.com", "Alice")
	mallory := env.mustRegister(t, "om@example.com", "Mallory")

	file := env.mustUpload(t, alice, "own.txt", "text/plain", "own", nil)

	_, err := env.files.Get(ctx, mallory, file.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("get status = %d, want 403", se.Status)
	}

	_, err = env.files.Delete(ctx, mallory, file.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("delete status = %d, want 403", se.Status)
	}

	// mallory 自己的标签也不能贴到 alice 的文件上
	tag, err := env.tags.Create(ctx, mallory, &types.CreateTagRequest{Name: "mine"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	_, err = env.files.AddTag(ctx, mallory, file.ID, tag.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("addTag status = %d, want 403", se.Status)
	}
}
