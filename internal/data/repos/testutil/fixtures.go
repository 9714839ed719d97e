package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/domain"
)

func seed[T any](tb testing.TB, ctx context.Context, tx *gorm.DB, what string, row *T) *T {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed %s: %v", what, err)
	}
	return row
}

func SeedLevel(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.EducationLevel {
	tb.Helper()
	return seed(tb, ctx, tx, "education level", &domain.EducationLevel{
		ID:          uuid.NewString(),
		Name:        name,
		Description: name + " description",
	})
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, levelID, name string) *domain.Class {
	tb.Helper()
	return seed(tb, ctx, tx, "class", &domain.Class{
		ID:      uuid.NewString(),
		Name:    name,
		Tagline: "tagline",
		LevelID: levelID,
	})
}

func SeedSubject(tb testing.TB, ctx context.Context, tx *gorm.DB, classID, name string) *domain.Subject {
	tb.Helper()
	return seed(tb, ctx, tx, "subject", &domain.Subject{
		ID:      uuid.NewString(),
		Name:    name,
		ClassID: classID,
	})
}

func SeedChapter(tb testing.TB, ctx context.Context, tx *gorm.DB, subjectID, name string) *domain.Chapter {
	tb.Helper()
	return seed(tb, ctx, tx, "chapter", &domain.Chapter{
		ID:        uuid.NewString(),
		Name:      name,
		SubjectID: subjectID,
	})
}

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, chapterID, name string) *domain.Topic {
	tb.Helper()
	return seed(tb, ctx, tx, "topic", &domain.Topic{
		ID:        uuid.NewString(),
		Name:      name,
		Details:   "details",
		ChapterID: chapterID,
	})
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, email string) *domain.User {
	tb.Helper()
	return seed(tb, ctx, tx, "user", &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: "pw",
	})
}
