package content

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

// Row is any hierarchy record stored in its own table.
type Row interface {
	domain.EducationLevel | domain.Class | domain.Subject | domain.Chapter | domain.Topic
}

type ListQuery struct {
	// Limit <= 0 means no limit.
	Limit int
	// Name filters by case-insensitive substring.
	Name string
}

type Repo[E Row] interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*E) ([]*E, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*E, error)
	List(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*E, error)
	ListByParent(ctx context.Context, tx *gorm.DB, parentID string) ([]*E, error)
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	HasChildrenOf(ctx context.Context, tx *gorm.DB, parentID string) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id string, updates map[string]any) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type repo[E Row] struct {
	db *gorm.DB
	// parentColumn is empty for education levels.
	parentColumn string
	log          *logger.Logger
}

func newRepo[E Row](db *gorm.DB, baseLog *logger.Logger, name, parentColumn string) Repo[E] {
	repoLog := baseLog.With("repo", name)
	return &repo[E]{db: db, parentColumn: parentColumn, log: repoLog}
}

func NewEducationLevelRepo(db *gorm.DB, baseLog *logger.Logger) Repo[domain.EducationLevel] {
	return newRepo[domain.EducationLevel](db, baseLog, "EducationLevelRepo", "")
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) Repo[domain.Class] {
	return newRepo[domain.Class](db, baseLog, "ClassRepo", "level_id")
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) Repo[domain.Subject] {
	return newRepo[domain.Subject](db, baseLog, "SubjectRepo", "class_id")
}

func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) Repo[domain.Chapter] {
	return newRepo[domain.Chapter](db, baseLog, "ChapterRepo", "subject_id")
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) Repo[domain.Topic] {
	return newRepo[domain.Topic](db, baseLog, "TopicRepo", "chapter_id")
}

func (r *repo[E]) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repo[E]) Create(ctx context.Context, tx *gorm.DB, rows []*E) ([]*E, error) {
	if len(rows) == 0 {
		return []*E{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns nil, nil when no row matches.
func (r *repo[E]) GetByID(ctx context.Context, tx *gorm.DB, id string) (*E, error) {
	var out E
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo[E]) List(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*E, error) {
	query := r.conn(tx).WithContext(ctx).Model(new(E))
	if name := strings.ToLower(strings.TrimSpace(q.Name)); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	results := []*E{}
	if err := query.Order("name ASC").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repo[E]) ListByParent(ctx context.Context, tx *gorm.DB, parentID string) ([]*E, error) {
	if r.parentColumn == "" {
		return nil, errors.New("resource has no parent")
	}
	results := []*E{}
	if err := r.conn(tx).WithContext(ctx).
		Where(r.parentColumn+" = ?", parentID).
		Order("name ASC").Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repo[E]) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(new(E)).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasChildrenOf reports whether any row points at parentID.
func (r *repo[E]) HasChildrenOf(ctx context.Context, tx *gorm.DB, parentID string) (bool, error) {
	if r.parentColumn == "" {
		return false, errors.New("resource has no parent")
	}
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(new(E)).
		Where(r.parentColumn+" = ?", parentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFields reports whether a row with id existed.
func (r *repo[E]) UpdateFields(ctx context.Context, tx *gorm.DB, id string, updates map[string]any) (bool, error) {
	if len(updates) == 0 {
		return r.Exists(ctx, tx, id)
	}
	res := r.conn(tx).WithContext(ctx).
		Model(new(E)).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Updates with unchanged values affect no rows on some drivers.
	return r.Exists(ctx, tx, id)
}

func (r *repo[E]) Delete(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	res := r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(new(E))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
