package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/data/repos/testutil"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
)

func requireStatus(t *testing.T, err error, status int) *apierr.Error {
	t.Helper()
	e, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %v", err)
	require.Equal(t, status, e.Status)
	return e
}

func TestClassServiceCreateValidates(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	metrics := observability.NewMetrics()

	levels := repos.NewEducationLevelRepo(db, log)
	svc := NewClassService(log, metrics, repos.NewClassRepo(db, log), levels, repos.NewSubjectRepo(db, log))

	_, err := svc.Create(ctx, &domain.Class{})
	e := requireStatus(t, err, http.StatusUnprocessableEntity)
	require.Equal(t, "Name is required", e.Fields["name"])
	require.Equal(t, "Education level is required", e.Fields["level_id"])

	_, err = svc.Create(ctx, &domain.Class{Name: "Grade 1", LevelID: "missing"})
	e = requireStatus(t, err, http.StatusNotFound)
	require.Equal(t, "Education level not found", e.Error())

	level := testutil.SeedLevel(t, ctx, db, "Primary")
	created, err := svc.Create(ctx, &domain.Class{Name: "Grade 1", LevelID: level.ID})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 1.0, metrics.MutationCount("class", "create"))

	_, err = svc.Create(ctx, &domain.Class{ID: created.ID, Name: "Dup", LevelID: level.ID})
	requireStatus(t, err, http.StatusConflict)
}

func TestClassServiceUpdateAndDelete(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	l1 := testutil.SeedLevel(t, ctx, db, "Primary")
	l2 := testutil.SeedLevel(t, ctx, db, "Secondary")
	class := testutil.SeedClass(t, ctx, db, l1.ID, "Grade 1")

	svc := NewClassService(log, nil, repos.NewClassRepo(db, log), repos.NewEducationLevelRepo(db, log), repos.NewSubjectRepo(db, log))

	updated, err := svc.Update(ctx, class.ID, map[string]any{
		"name":     "Grade One",
		"level_id": l2.ID,
		"id":       "ignored",
		"unknown":  "ignored",
	})
	require.NoError(t, err)
	require.Equal(t, class.ID, updated.ID)
	require.Equal(t, "Grade One", updated.Name)
	require.Equal(t, l2.ID, updated.LevelID)

	_, err = svc.Update(ctx, class.ID, map[string]any{"level_id": "missing"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Update(ctx, class.ID, map[string]any{"name": "", "tagline": 3})
	e := requireStatus(t, err, http.StatusUnprocessableEntity)
	require.Contains(t, e.Fields, "name")
	require.Contains(t, e.Fields, "tagline")

	_, err = svc.Update(ctx, "missing", map[string]any{"name": "x"})
	requireStatus(t, err, http.StatusNotFound)

	require.NoError(t, svc.Delete(ctx, class.ID))
	requireStatus(t, svc.Delete(ctx, class.ID), http.StatusNotFound)
}

func TestContentServiceDeleteRefusesWithChildren(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	level := testutil.SeedLevel(t, ctx, db, "Primary")
	class := testutil.SeedClass(t, ctx, db, level.ID, "Grade 1")
	subject := testutil.SeedSubject(t, ctx, db, class.ID, "Maths")

	levelRepo := repos.NewEducationLevelRepo(db, log)
	classRepo := repos.NewClassRepo(db, log)
	subjectRepo := repos.NewSubjectRepo(db, log)
	chapterRepo := repos.NewChapterRepo(db, log)
	metrics := observability.NewMetrics()
	levels := NewEducationLevelService(log, metrics, levelRepo, classRepo)
	classes := NewClassService(log, metrics, classRepo, levelRepo, subjectRepo)
	subjects := NewSubjectService(log, metrics, subjectRepo, classRepo, chapterRepo)

	e := requireStatus(t, levels.Delete(ctx, level.ID), http.StatusConflict)
	require.Equal(t, "Cannot delete education level with existing classes", e.Error())
	e = requireStatus(t, classes.Delete(ctx, class.ID), http.StatusConflict)
	require.Equal(t, "Cannot delete class with existing subjects", e.Error())
	require.Equal(t, 0.0, metrics.MutationCount("education level", "delete"))

	_, err := levels.Get(ctx, level.ID)
	require.NoError(t, err)

	// Bottom-up deletion succeeds.
	require.NoError(t, subjects.Delete(ctx, subject.ID))
	require.NoError(t, classes.Delete(ctx, class.ID))
	require.NoError(t, levels.Delete(ctx, level.ID))
	require.Equal(t, 1.0, metrics.MutationCount("education level", "delete"))
}

func TestContentServiceListByParent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	level := testutil.SeedLevel(t, ctx, db, "Primary")
	class := testutil.SeedClass(t, ctx, db, level.ID, "Grade 1")
	subject := testutil.SeedSubject(t, ctx, db, class.ID, "Maths")
	testutil.SeedChapter(t, ctx, db, subject.ID, "Fractions")

	chapters := NewChapterService(log, nil, repos.NewChapterRepo(db, log), repos.NewSubjectRepo(db, log), repos.NewTopicRepo(db, log))
	rows, err := chapters.ListByParent(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Fractions", rows[0].Name)

	rows, err = chapters.ListByParent(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, rows)

	levels := NewEducationLevelService(log, nil, repos.NewEducationLevelRepo(db, log), repos.NewClassRepo(db, log))
	_, err = levels.ListByParent(ctx, "x")
	requireStatus(t, err, http.StatusNotFound)

	got, err := levels.Get(ctx, level.ID)
	require.NoError(t, err)
	require.Equal(t, "Primary", got.Name)

	list, err := levels.List(ctx, repos.ListQuery{Limit: 10, Name: "prim"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}
