package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/yeisme/assetvault/pkg/internal/types"
)

func TestTagCreateAndUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustRegister(t, "a@example.com", "Alice")
	bob := env.mustRegister(t, "b@example.com", "Bob")

	if _, err := env.tags.Create(ctx, alice, &types.CreateTagRequest{Name: "work"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// 同一用户重名 -> 409
	_, err := env.tags.Create(ctx, alice, &types.CreateTagRequest{Name: "work"})
	if se := svcError(t, err); se.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", se.Status)
	}

	// 名称大小写敏感，Work 与 work 不同
	if _, err := env.tags.Create(ctx, alice, &types.CreateTagRequest{Name: "Work"}); err != nil {
		t.Errorf("case-different name should be allowed: %v", err)
	}

	// 其他用户可以用同名标签
	if _, err := env.tags.Create(ctx, bob, &types.CreateTagRequest{Name: "work"}); err != nil {
		t.Errorf("same name for another user should be allowed: %v", err)
	}
}

func TestTagListSortedWithCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "t@example.com", "Tagger")

	urgent, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "urgent"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "archive"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	file := env.mustUpload(t, owner, "x.txt", "text/plain", "x", nil)
	if _, err := env.files.AddTag(ctx, owner, file.ID, urgent.ID); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	list, err := env.tags.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	if list[0].Name != "archive" || list[1].Name != "urgent" {
		t.Errorf("order = %q, %q", list[0].Name, list[1].Name)
	}

	if list[1].Count.Files != 1 {
		t.Errorf("urgent count = %d, want 1", list[1].Count.Files)
	}
}

func TestTagDeleteDetachesFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "d@example.com", "Deleter")

	tag, err := env.tags.Create(ctx, owner, &types.CreateTagRequest{Name: "temp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	file := env.mustUpload(t, owner, "y.txt", "text/plain", "y", nil)
	if _, err := env.files.AddTag(ctx, owner, file.ID, tag.ID); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	if err := env.tags.Delete(ctx, owner, tag.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// 文件不受影响，标签引用消失
	got, err := env.files.Get(ctx, owner, file.ID)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}

	if len(got.Tags) != 0 {
		t.Errorf("file still has %d tags", len(got.Tags))
	}
}

func TestTagOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustRegister(t, "ga@example.com", "Alice")
	mallory := env.mustRegister(t, "gm@example.com", "Mallory")

	tag, err := env.tags.Create(ctx, alice, &types.CreateTagRequest{Name: "secret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = env.tags.Get(ctx, mallory, tag.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", se.Status)
	}

	err = env.tags.Delete(ctx, mallory, tag.ID)
	if se := svcError(t, err); se.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", se.Status)
	}
}
