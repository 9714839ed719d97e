package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/validate"
)

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	metrics  *observability.Metrics
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, metrics *observability.Metrics) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		metrics:  metrics,
	}
}

// List never returns password hashes.
func (us *userService) List(ctx context.Context) ([]domain.User, error) {
	rows, err := us.userRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, u.Redacted())
	}
	return out, nil
}

func (us *userService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, apierr.BadRequest("Request body is required")
	}
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := validate.Struct(user); err != nil {
		return nil, err
	}

	if exists, err := us.userRepo.UsernameExists(ctx, nil, user.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, apierr.Conflict("Username already taken")
	}
	if exists, err := us.userRepo.EmailExists(ctx, nil, user.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if exists {
		return nil, apierr.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	row := &domain.User{
		ID:       strings.TrimSpace(user.ID),
		Username: user.Username,
		Email:    user.Email,
		Password: string(hash),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if _, err := us.userRepo.Create(ctx, nil, []*domain.User{row}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	us.metrics.IncMutation("user", "create")
	out := row.Redacted()
	return &out, nil
}
