package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/validate"
)

type ProgressService interface {
	List(ctx context.Context, userID string) ([]*domain.UserProgress, error)
	Create(ctx context.Context, p *domain.UserProgress) (*domain.UserProgress, error)
}

type progressService struct {
	log          *logger.Logger
	progressRepo repos.UserProgressRepo
	userRepo     repos.UserRepo
	chapterRepo  repos.ChapterRepo
	topicRepo    repos.TopicRepo
	metrics      *observability.Metrics
}

func NewProgressService(
	log *logger.Logger,
	progressRepo repos.UserProgressRepo,
	userRepo repos.UserRepo,
	chapterRepo repos.ChapterRepo,
	topicRepo repos.TopicRepo,
	metrics *observability.Metrics,
) ProgressService {
	return &progressService{
		log:          log.With("service", "ProgressService"),
		progressRepo: progressRepo,
		userRepo:     userRepo,
		chapterRepo:  chapterRepo,
		topicRepo:    topicRepo,
		metrics:      metrics,
	}
}

// List returns every record, or one user's when userID is set.
func (ps *progressService) List(ctx context.Context, userID string) ([]*domain.UserProgress, error) {
	var (
		rows []*domain.UserProgress
		err  error
	)
	if userID = strings.TrimSpace(userID); userID != "" {
		rows, err = ps.progressRepo.ListByUser(ctx, nil, userID)
	} else {
		rows, err = ps.progressRepo.List(ctx, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("list user progress: %w", err)
	}
	return rows, nil
}

// Create requires a user and exactly one of chapter or topic.
func (ps *progressService) Create(ctx context.Context, p *domain.UserProgress) (*domain.UserProgress, error) {
	if p == nil {
		return nil, apierr.BadRequest("Request body is required")
	}
	p.UserID = strings.TrimSpace(p.UserID)
	p.ChapterID = strings.TrimSpace(p.ChapterID)
	p.TopicID = strings.TrimSpace(p.TopicID)

	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	users, err := ps.userRepo.GetByIDs(ctx, nil, []string{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("User not found")
	}
	if p.ChapterID != "" {
		ok, err := ps.chapterRepo.Exists(ctx, nil, p.ChapterID)
		if err != nil {
			return nil, fmt.Errorf("check chapter: %w", err)
		}
		if !ok {
			return nil, apierr.NotFound("Chapter not found")
		}
	}
	if p.TopicID != "" {
		ok, err := ps.topicRepo.Exists(ctx, nil, p.TopicID)
		if err != nil {
			return nil, fmt.Errorf("check topic: %w", err)
		}
		if !ok {
			return nil, apierr.NotFound("Topic not found")
		}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	created, err := ps.progressRepo.Create(ctx, nil, []*domain.UserProgress{p})
	if err != nil {
		return nil, fmt.Errorf("create user progress: %w", err)
	}
	ps.metrics.IncMutation("user progress", "create")
	return created[0], nil
}
