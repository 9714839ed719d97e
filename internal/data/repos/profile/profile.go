package profile

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Profile) ([]*domain.Profile, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Profile) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*domain.Profile{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *profileRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.Profile{}
	if err := transaction.WithContext(ctx).
		Order("name ASC").Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
