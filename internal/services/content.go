package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/data/repos/content"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/validate"
)

// ContentService manages one level of the content hierarchy.
type ContentService[E content.Row] interface {
	List(ctx context.Context, q repos.ListQuery) ([]*E, error)
	ListByParent(ctx context.Context, parentID string) ([]*E, error)
	Get(ctx context.Context, id string) (*E, error)
	Create(ctx context.Context, draft *E) (*E, error)
	Update(ctx context.Context, id string, patch map[string]any) (*E, error)
	Delete(ctx context.Context, id string) error
}

// contentKind binds a row type to its validation rules.
type contentKind[E content.Row] struct {
	label      string
	parentKey  string
	parentName string
	// childPlural names the next level down; empty for topics.
	childPlural string
	// columns lists the fields a PUT may change.
	columns []string
	setID   func(*E, string)
}

// lookup answers a yes/no question about another table by id.
type lookup func(ctx context.Context, id string) (bool, error)

type contentService[E content.Row] struct {
	kind     contentKind[E]
	repo     content.Repo[E]
	parents  lookup
	children lookup
	metrics  *observability.Metrics
	log      *logger.Logger
}

func newContentService[E content.Row](
	log *logger.Logger,
	metrics *observability.Metrics,
	repo content.Repo[E],
	kind contentKind[E],
	parents lookup,
	children lookup,
) ContentService[E] {
	return &contentService[E]{
		kind:     kind,
		repo:     repo,
		parents:  parents,
		children: children,
		metrics:  metrics,
		log:      log.With("service", "ContentService", "resource", kind.label),
	}
}

func NewEducationLevelService(log *logger.Logger, m *observability.Metrics, levels repos.EducationLevelRepo, classes repos.ClassRepo) ContentService[domain.EducationLevel] {
	return newContentService(log, m, levels, contentKind[domain.EducationLevel]{
		label:       "education level",
		childPlural: "classes",
		columns:     []string{"name", "description"},
		setID:       func(e *domain.EducationLevel, id string) { e.ID = id },
	}, nil, childrenIn(classes))
}

func NewClassService(log *logger.Logger, m *observability.Metrics, classes repos.ClassRepo, levels repos.EducationLevelRepo, subjects repos.SubjectRepo) ContentService[domain.Class] {
	return newContentService(log, m, classes, contentKind[domain.Class]{
		label:       "class",
		parentKey:   domain.LevelEducation.ParentKey(),
		parentName:  "education level",
		childPlural: "subjects",
		columns:     []string{"name", "tagline", "image_link", "level_id"},
		setID:       func(e *domain.Class, id string) { e.ID = id },
	}, existsIn(levels), childrenIn(subjects))
}

func NewSubjectService(log *logger.Logger, m *observability.Metrics, subjects repos.SubjectRepo, classes repos.ClassRepo, chapters repos.ChapterRepo) ContentService[domain.Subject] {
	return newContentService(log, m, subjects, contentKind[domain.Subject]{
		label:       "subject",
		parentKey:   domain.LevelClass.ParentKey(),
		parentName:  "class",
		childPlural: "chapters",
		columns:     []string{"name", "tagline", "image_link", "image_prompt", "class_id"},
		setID:       func(e *domain.Subject, id string) { e.ID = id },
	}, existsIn(classes), childrenIn(chapters))
}

func NewChapterService(log *logger.Logger, m *observability.Metrics, chapters repos.ChapterRepo, subjects repos.SubjectRepo, topics repos.TopicRepo) ContentService[domain.Chapter] {
	return newContentService(log, m, chapters, contentKind[domain.Chapter]{
		label:       "chapter",
		parentKey:   domain.LevelSubject.ParentKey(),
		parentName:  "subject",
		childPlural: "topics",
		columns:     []string{"name", "tagline", "image_link", "subject_id"},
		setID:       func(e *domain.Chapter, id string) { e.ID = id },
	}, existsIn(subjects), childrenIn(topics))
}

func NewTopicService(log *logger.Logger, m *observability.Metrics, topics repos.TopicRepo, chapters repos.ChapterRepo) ContentService[domain.Topic] {
	return newContentService(log, m, topics, contentKind[domain.Topic]{
		label:      "topic",
		parentKey:  domain.LevelChapter.ParentKey(),
		parentName: "chapter",
		columns:    []string{"name", "tagline", "image_link", "details", "chapter_id"},
		setID:      func(e *domain.Topic, id string) { e.ID = id },
	}, existsIn(chapters), nil)
}

func existsIn[P content.Row](parent content.Repo[P]) lookup {
	return func(ctx context.Context, id string) (bool, error) {
		return parent.Exists(ctx, nil, id)
	}
}

func childrenIn[C content.Row](child content.Repo[C]) lookup {
	return func(ctx context.Context, id string) (bool, error) {
		return child.HasChildrenOf(ctx, nil, id)
	}
}

func (s *contentService[E]) List(ctx context.Context, q repos.ListQuery) ([]*E, error) {
	rows, err := s.repo.List(ctx, nil, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.label, err)
	}
	return rows, nil
}

// ListByParent answers an unknown parent with an empty list.
func (s *contentService[E]) ListByParent(ctx context.Context, parentID string) ([]*E, error) {
	if s.kind.parentKey == "" {
		return nil, apierr.NotFound("Not Found")
	}
	rows, err := s.repo.ListByParent(ctx, nil, strings.TrimSpace(parentID))
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", s.kind.label, s.kind.parentKey, err)
	}
	return rows, nil
}

func (s *contentService[E]) Get(ctx context.Context, id string) (*E, error) {
	row, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.kind.label, err)
	}
	if row == nil {
		return nil, s.notFound()
	}
	return row, nil
}

func (s *contentService[E]) Create(ctx context.Context, draft *E) (*E, error) {
	if draft == nil {
		return nil, apierr.BadRequest("Request body is required")
	}
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, parentOf(*draft)); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(idOf(*draft))
	if id == "" {
		id = uuid.NewString()
	} else {
		exists, err := s.repo.Exists(ctx, nil, id)
		if err != nil {
			return nil, fmt.Errorf("check %s id: %w", s.kind.label, err)
		}
		if exists {
			return nil, apierr.Conflict(fmt.Sprintf("%s %s already exists", capitalize(s.kind.label), id))
		}
	}
	s.kind.setID(draft, id)

	created, err := s.repo.Create(ctx, nil, []*E{draft})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind.label, err)
	}
	s.metrics.IncMutation(s.kind.label, "create")
	s.log.Debug("Created", "id", id)
	return created[0], nil
}

func (s *contentService[E]) Update(ctx context.Context, id string, patch map[string]any) (*E, error) {
	updates, fields := s.updatesFrom(patch)
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}
	if parentID, ok := updates[s.kind.parentKey].(string); ok && s.kind.parentKey != "" {
		if err := s.checkParent(ctx, parentID); err != nil {
			return nil, err
		}
	}

	found, err := s.repo.UpdateFields(ctx, nil, id, updates)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.kind.label, err)
	}
	if !found {
		return nil, s.notFound()
	}
	s.metrics.IncMutation(s.kind.label, "update")
	return s.Get(ctx, id)
}

// Delete refuses to orphan rows one level down.
func (s *contentService[E]) Delete(ctx context.Context, id string) error {
	if s.children != nil {
		has, err := s.children(ctx, id)
		if err != nil {
			return fmt.Errorf("check %s: %w", s.kind.childPlural, err)
		}
		if has {
			return apierr.Conflict(fmt.Sprintf("Cannot delete %s with existing %s", s.kind.label, s.kind.childPlural))
		}
	}
	deleted, err := s.repo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.kind.label, err)
	}
	if !deleted {
		return s.notFound()
	}
	s.metrics.IncMutation(s.kind.label, "delete")
	return nil
}

func (s *contentService[E]) checkParent(ctx context.Context, parentID string) error {
	if s.parents == nil {
		return nil
	}
	ok, err := s.parents(ctx, parentID)
	if err != nil {
		return fmt.Errorf("check %s: %w", s.kind.parentName, err)
	}
	if !ok {
		return apierr.NotFound(capitalize(s.kind.parentName) + " not found")
	}
	return nil
}

// updatesFrom keeps the known columns of patch. Unknown keys are ignored;
// id can never change.
func (s *contentService[E]) updatesFrom(patch map[string]any) (map[string]any, map[string]string) {
	allowed := make(map[string]struct{}, len(s.kind.columns))
	for _, c := range s.kind.columns {
		allowed[c] = struct{}{}
	}
	updates := map[string]any{}
	fields := map[string]string{}
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := allowed[k]; !ok {
			continue
		}
		v := patch[k]
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			fields[k] = "Must be a string"
			continue
		}
		if (k == "name" || k == s.kind.parentKey) && validate.Blank(str) {
			fields[k] = "Must not be empty"
			continue
		}
		updates[k] = str
	}
	return updates, fields
}

func (s *contentService[E]) notFound() error {
	return apierr.NotFound(capitalize(s.kind.label) + " not found")
}

func idOf[E content.Row](row E) string {
	if e, ok := any(row).(domain.Entity); ok {
		return e.GetID()
	}
	return ""
}

func parentOf[E content.Row](row E) string {
	if c, ok := any(row).(domain.Child); ok {
		return c.ParentID()
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
