package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/assetvault/pkg/api"
	"github.com/yeisme/assetvault/pkg/configs"
	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/storage"
	"github.com/yeisme/assetvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/assetvault/pkg/internal/storage/db"
	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	"github.com/yeisme/assetvault/pkg/token"
)

// newTestServer 组装一个完整的 API 引擎：内存数据库、临时目录 blob、进程内总线.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := gdb.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	bus := mq.New()
	t.Cleanup(func() { bus.Close() })

	mgr := &storage.Manager{
		DB:   &dbc.Client{DB: gdb},
		Blob: store,
		MQ:   bus,
	}

	cfg := &configs.AppConfig{
		Auth:   configs.AuthConfig{BcryptCost: 4},
		Upload: configs.UploadConfig{MaxBytes: 10 << 20},
	}

	tokens := token.NewManager("test-secret", time.Hour, "assetvault")

	engine := gin.New()
	api.RegisterRoutes(engine, mgr, cfg, tokens)

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}

		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// registerUser 注册后登录，返回访问令牌.
func registerUser(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", w.Code, w.Body.String())
	}

	// 注册只返回公开资料，不含密码也不含令牌
	var user struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	decode(t, w, &user)

	if user.Email != email || user.Password != "" {
		t.Fatalf("register body = %s", w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}

	decode(t, w, &resp)

	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}

	return resp.AccessToken
}

// uploadFile 上传 multipart 文件并返回其 ID.
func uploadFile(t *testing.T, engine *gin.Engine, bearer, name, mimeType, content, folderID string) uint {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, name)},
		"Content-Type":        {mimeType},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}

	if folderID != "" {
		if err := mw.WriteField("folderId", folderID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}

	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearer)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID uint `json:"id"`
	}

	decode(t, w, &resp)

	return resp.ID
}

func TestAuthFlow(t *testing.T) {
	engine := newTestServer(t)

	bearer := registerUser(t, engine, "flow@example.com")

	w := doJSON(t, engine, http.MethodGet, "/auth/me", bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d", w.Code)
	}

	var me struct {
		Email string `json:"email"`
	}

	decode(t, w, &me)

	if me.Email != "flow@example.com" {
		t.Errorf("email = %q", me.Email)
	}

	// 无令牌 -> 401
	w = doJSON(t, engine, http.MethodGet, "/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	// 错误密码 -> 401
	w = doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "flow@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestUploadListAndFolderFlow(t *testing.T) {
	engine := newTestServer(t)
	bearer := registerUser(t, engine, "files@example.com")

	// 创建文件夹
	w := doJSON(t, engine, http.MethodPost, "/folders", bearer, gin.H{"name": "Docs"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create folder: status %d body %s", w.Code, w.Body.String())
	}

	var folder struct {
		ID uint `json:"id"`
	}

	decode(t, w, &folder)

	// 上传到文件夹
	fileID := uploadFile(t, engine, bearer, "a.txt", "text/plain", "hello", fmt.Sprint(folder.ID))

	// 按文件夹过滤列表
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/files?folderId=%d", folder.ID), bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}

	var list struct {
		Files []struct {
			ID   uint   `json:"id"`
			Type string `json:"type"`
		} `json:"files"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}

	decode(t, w, &list)

	if len(list.Files) != 1 || list.Files[0].ID != fileID {
		t.Fatalf("list = %+v", list)
	}

	// text/plain 归类为 document
	if list.Files[0].Type != "document" {
		t.Errorf("type = %q, want document", list.Files[0].Type)
	}

	// 散落的文件通过文件夹路由移入
	looseID := uploadFile(t, engine, bearer, "b.txt", "text/plain", "world", "")

	w = doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/folders/%d/move/%d", folder.ID, looseID), bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("move: status %d body %s", w.Code, w.Body.String())
	}

	var moved struct {
		Folder struct {
			ID uint `json:"id"`
		} `json:"folder"`
	}

	decode(t, w, &moved)

	if moved.Folder.ID != folder.ID {
		t.Errorf("moved folder = %d, want %d", moved.Folder.ID, folder.ID)
	}

	// 文件夹列表带 _count
	w = doJSON(t, engine, http.MethodGet, "/folders", bearer, nil)

	var folders []struct {
		Count struct {
			Files int64 `json:"files"`
		} `json:"_count"`
	}

	decode(t, w, &folders)

	if len(folders) != 1 || folders[0].Count.Files != 2 {
		t.Errorf("folders = %+v", folders)
	}
}

func TestPublicViewAndDownload(t *testing.T) {
	engine := newTestServer(t)
	bearer := registerUser(t, engine, "view@example.com")

	content := "png-bytes"
	fileID := uploadFile(t, engine, bearer, "pic.png", "image/png", content, "")

	// 公开预览：无需认证，固定类别 Content-Type
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/files/%d/view", fileID), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("view: status %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("view content-type = %q, want image/jpeg", ct)
	}

	if w.Body.String() != content {
		t.Errorf("view body = %q", w.Body.String())
	}

	// 下载需要认证
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/files/%d/download", fileID), nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauth download status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/files/%d/download", fileID), nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("download: status %d", w.Code)
	}

	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="pic.png"` {
		t.Errorf("content-disposition = %q", cd)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("download content-type = %q, want octet-stream", ct)
	}
}

func TestTagRoutes(t *testing.T) {
	engine := newTestServer(t)
	bearer := registerUser(t, engine, "tags@example.com")

	w := doJSON(t, engine, http.MethodPost, "/tags", bearer, gin.H{"name": "starred"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create tag: status %d body %s", w.Code, w.Body.String())
	}

	var tag struct {
		ID uint `json:"id"`
	}

	decode(t, w, &tag)

	fileID := uploadFile(t, engine, bearer, "t.txt", "text/plain", "t", "")

	// 静态段 upload 与 :id 并存，标签路径两级参数
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/files/%d/tags/%d", fileID, tag.ID), bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("add tag: status %d body %s", w.Code, w.Body.String())
	}

	var file struct {
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}

	decode(t, w, &file)

	if len(file.Tags) != 1 || file.Tags[0].Name != "starred" {
		t.Errorf("tags = %+v", file.Tags)
	}

	// 重名 -> 409
	w = doJSON(t, engine, http.MethodPost, "/tags", bearer, gin.H{"name": "starred"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate tag status = %d, want 409", w.Code)
	}

	// 移除标签
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/files/%d/tags/%d", fileID, tag.ID), bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove tag: status %d", w.Code)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	engine := newTestServer(t)
	alice := registerUser(t, engine, "alice@example.com")
	mallory := registerUser(t, engine, "mallory@example.com")

	fileID := uploadFile(t, engine, alice, "private.txt", "text/plain", "secret", "")

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/files/%d", fileID), mallory, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign get status = %d, want 403", w.Code)
	}

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/files/%d", fileID), mallory, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete status = %d, want 403", w.Code)
	}

	// 不存在的资源 -> 404
	w = doJSON(t, engine, http.MethodGet, "/files/99999", mallory, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing get status = %d, want 404", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
}
