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

type ProfileService interface {
	List(ctx context.Context) ([]*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	userRepo    repos.UserRepo
	metrics     *observability.Metrics
}

func NewProfileService(log *logger.Logger, profileRepo repos.ProfileRepo, userRepo repos.UserRepo, metrics *observability.Metrics) ProfileService {
	return &profileService{
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
		userRepo:    userRepo,
		metrics:     metrics,
	}
}

func (ps *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := ps.profileRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return rows, nil
}

// Create links the profile to a user only when user_id is given.
func (ps *profileService) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p == nil {
		return nil, apierr.BadRequest("Request body is required")
	}
	p.UserID = strings.TrimSpace(p.UserID)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	if p.UserID != "" {
		users, err := ps.userRepo.GetByIDs(ctx, nil, []string{p.UserID})
		if err != nil {
			return nil, fmt.Errorf("check user: %w", err)
		}
		if len(users) == 0 {
			return nil, apierr.NotFound("User not found")
		}
	}

	if p.ID = strings.TrimSpace(p.ID); p.ID == "" {
		p.ID = uuid.NewString()
	}
	created, err := ps.profileRepo.Create(ctx, nil, []*domain.Profile{p})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	ps.metrics.IncMutation("profile", "create")
	return created[0], nil
}
