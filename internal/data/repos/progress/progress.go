package progress

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type UserProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.UserProgress) ([]*domain.UserProgress, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.UserProgress, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.UserProgress, error)
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	repoLog := baseLog.With("repo", "UserProgressRepo")
	return &userProgressRepo{db: db, log: repoLog}
}

func (r *userProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.UserProgress) ([]*domain.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*domain.UserProgress{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userProgressRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.UserProgress{}
	if err := transaction.WithContext(ctx).
		Order("user_id ASC").Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userProgressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.UserProgress{}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
