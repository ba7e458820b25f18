package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Name                       *string `json:"name" validate:"omitempty,min=2,max=100"`
	PreferredInterfaceLanguage *string `json:"preferredInterfaceLanguage" validate:"omitempty,oneof=pl en"`
	IndustryContext            *string `json:"industryContext" validate:"omitempty,oneof=it finance office general"`
	AvatarURL                  *string `json:"avatarUrl" validate:"omitempty,url"`
}

// AccountService covers registration, login and the profile.
type AccountService struct {
	repo         *repository.Repository
	gamification *GamificationService
	log          *utils.Logger
}

func NewAccountService(repo *repository.Repository, gamification *GamificationService, baseLog *utils.Logger) *AccountService {
	return &AccountService{repo: repo, gamification: gamification, log: baseLog.With("service", "AccountService")}
}

// Register creates a learner together with the default daily goal.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &models.PersistenceError{Op: "hash password", Err: err}
	}

	user := &models.User{
		Name:                       strings.TrimSpace(in.Name),
		Email:                      in.Email,
		PasswordHash:               string(hash),
		Role:                       models.RoleUser,
		PreferredInterfaceLanguage: "pl",
		IndustryContext:            "general",
	}
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Users.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.gamification.CreateDefaultGoal(ctx, tx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login returns models.ErrInvalidCredentials for an unknown email or a wrong password.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.repo.Users.GetByEmail(ctx, nil, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.repo.Users.GetByID(ctx, nil, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.PreferredInterfaceLanguage != nil {
		updates["preferred_interface_language"] = *in.PreferredInterfaceLanguage
	}
	if in.IndustryContext != nil {
		updates["industry_context"] = *in.IndustryContext
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	return s.repo.Users.UpdateProfile(ctx, nil, userID, updates)
}
