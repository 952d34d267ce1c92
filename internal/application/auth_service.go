package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/mailer"
	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

// TokenScheme prefixes every token handed out by Login.
const TokenScheme = "Bearer"

type AuthService struct {
	Users  repo.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	// Jobs is optional; nil disables the welcome email.
	Jobs   JobPublisher
	Config *config.Config
	Logger *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, jobs JobPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		Hasher: hasher,
		Tokens: tokens,
		Jobs:   jobs,
		Config: cfg,
		Logger: logger,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginResult struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Register creates a user. The email lookup is only a fast path; the store's
// unique constraint decides concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)

	_, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := entity.NewUser(email, strings.TrimSpace(in.Name), digest)
	if err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishWelcome(ctx, u)
	return u, nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil || s.Config == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Config, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish welcome email failed", err, logrus.Fields{"user_id": u.ID})
	}
}

// Login checks credentials and mints a token. An unknown email still pays for
// one bcrypt comparison so both failure paths take about the same time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.Verify(password, s.dummyDigest())
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{UserID: u.ID, Token: TokenScheme + " " + token, ExpiresAt: exp}, nil
}

func (s *AuthService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		d, err := s.Hasher.Hash("timing-equalizer")
		if err != nil {
			helpers.LogWarn(s.Logger, "dummy hash failed", err, nil)
			return
		}
		s.dummyHash = d
	})
	return s.dummyHash
}
