package content

import (
	"context"
	"testing"

	"github.com/yungbote/eduadmin/internal/data/repos/testutil"
	"github.com/yungbote/eduadmin/internal/domain"
)

func TestEducationLevelRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewEducationLevelRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*domain.EducationLevel{
		{ID: "L1", Name: "Primary"},
		{ID: "L2", Name: "Secondary"},
		{ID: "L3", Name: "Tertiary"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("Create: expected 3 rows, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, "L2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Secondary" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, "nope")
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil, got %+v", missing)
	}

	limited, err := repo.List(ctx, tx, ListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("List(limit): %v", err)
	}
	if len(limited) != 2 || limited[0].Name != "Primary" || limited[1].Name != "Secondary" {
		t.Fatalf("List(limit): unexpected result: %+v", limited)
	}

	filtered, err := repo.List(ctx, tx, ListQuery{Name: "ondar"})
	if err != nil {
		t.Fatalf("List(name): %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "L2" {
		t.Fatalf("List(name): unexpected result: %+v", filtered)
	}

	found, err := repo.UpdateFields(ctx, tx, "L1", map[string]any{"description": "Grades 1-6"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if !found {
		t.Fatalf("UpdateFields: expected row to exist")
	}
	got, err = repo.GetByID(ctx, tx, "L1")
	if err != nil {
		t.Fatalf("GetByID(after update): %v", err)
	}
	if got.Description != "Grades 1-6" || got.Name != "Primary" {
		t.Fatalf("UpdateFields: unexpected row: %+v", got)
	}

	found, err = repo.UpdateFields(ctx, tx, "nope", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("UpdateFields(missing): %v", err)
	}
	if found {
		t.Fatalf("UpdateFields(missing): expected not found")
	}

	deleted, err := repo.Delete(ctx, tx, "L3")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("Delete: expected a row to be removed")
	}
	deleted, err = repo.Delete(ctx, tx, "L3")
	if err != nil {
		t.Fatalf("Delete(again): %v", err)
	}
	if deleted {
		t.Fatalf("Delete(again): expected nothing to be removed")
	}

	if _, err := repo.ListByParent(ctx, tx, "L1"); err == nil {
		t.Fatalf("ListByParent: expected error for a root resource")
	}
}

func TestClassRepoListByParent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	l1 := testutil.SeedLevel(t, ctx, tx, "Primary")
	l2 := testutil.SeedLevel(t, ctx, tx, "Secondary")
	testutil.SeedClass(t, ctx, tx, l1.ID, "Grade 2")
	testutil.SeedClass(t, ctx, tx, l1.ID, "Grade 1")
	testutil.SeedClass(t, ctx, tx, l2.ID, "Form 1")

	repo := NewClassRepo(db, testutil.Logger(t))

	got, err := repo.ListByParent(ctx, tx, l1.ID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Grade 1" || got[1].Name != "Grade 2" {
		t.Fatalf("ListByParent: unexpected result: %+v", got)
	}

	empty, err := repo.ListByParent(ctx, tx, "unknown")
	if err != nil {
		t.Fatalf("ListByParent(unknown): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("ListByParent(unknown): expected empty non-nil slice, got %+v", empty)
	}
}

func TestClassRepoHasChildrenOf(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	l1 := testutil.SeedLevel(t, ctx, tx, "Primary")
	l2 := testutil.SeedLevel(t, ctx, tx, "Secondary")
	testutil.SeedClass(t, ctx, tx, l1.ID, "Grade 1")

	repo := NewClassRepo(db, testutil.Logger(t))
	if ok, err := repo.HasChildrenOf(ctx, tx, l1.ID); err != nil || !ok {
		t.Fatalf("HasChildrenOf(%s): got %v, %v", l1.ID, ok, err)
	}
	if ok, err := repo.HasChildrenOf(ctx, tx, l2.ID); err != nil || ok {
		t.Fatalf("HasChildrenOf(%s): got %v, %v", l2.ID, ok, err)
	}
	if _, err := NewEducationLevelRepo(db, testutil.Logger(t)).HasChildrenOf(ctx, tx, "x"); err == nil {
		t.Fatalf("HasChildrenOf: expected error for a root resource")
	}
}
