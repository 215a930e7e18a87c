package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/service"
	"github.com/yeisme/assetvault/pkg/internal/storage/blob"
	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	"github.com/yeisme/assetvault/pkg/internal/types"
	"github.com/yeisme/assetvault/pkg/token"
)

// testEnv 测试用的完整服务环境：内存数据库、临时目录 blob 和进程内消息总线.
type testEnv struct {
	db      *gorm.DB
	blob    blob.Store
	bus     *mq.Client
	auth    *service.AuthService
	folders *service.FolderService
	tags    *service.TagService
	files   *service.FileService
}

const testMaxUpload = 10 << 20

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	bus := mq.New()
	t.Cleanup(func() { bus.Close() })

	tokens := token.NewManager("test-secret", time.Hour, "assetvault")

	return &testEnv{
		db:      db,
		blob:    store,
		bus:     bus,
		auth:    service.NewAuthService(db, bus, tokens, 4), // 低 cost 加速测试
		folders: service.NewFolderService(db),
		tags:    service.NewTagService(db),
		files:   service.NewFileService(db, store, bus, testMaxUpload),
	}
}

// mustRegister 注册一个测试用户并返回其 ID.
func (e *testEnv) mustRegister(t *testing.T, email, name string) uint {
	t.Helper()

	user, err := e.auth.Register(context.Background(), &types.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     name,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}

	return user.ID
}

// mustUpload 上传一个小文件并返回其条目.
func (e *testEnv) mustUpload(t *testing.T, ownerID uint, name, mimeType, content string, folderID *uint) *types.FileSummary {
	t.Helper()

	f, err := e.files.Upload(context.Background(), ownerID, &service.UploadInput{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
		FolderID: folderID,
	})
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}

	return f
}

// svcError 断言错误是业务错误并返回它.
func svcError(t *testing.T, err error) *service.Error {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error")
	}

	se, ok := err.(*service.Error)
	if !ok {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}

	return se
}
