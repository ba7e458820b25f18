package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB) ([]models.User, error)
	ListByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.User, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.User, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, id uint, role string) (*models.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *utils.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, err := r.GetByEmail(ctx, tx, user.Email); err == nil {
		return models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if err := conn(r.db, tx).WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return wrap("create user", "user", nil, err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := conn(r.db, tx).WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap("get user", "user", id, err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := conn(r.db, tx).WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap("get user by email", "user", email, err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, tx *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := conn(r.db, tx).WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, wrap("list users", "user", nil, err)
	}
	return users, nil
}

func (r *userRepo) ListByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := conn(r.db, tx).WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrap("list users by ids", "user", nil, err)
	}
	return users, nil
}

func (r *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, wrap("count users", "user", nil, err)
	}
	return count, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := conn(r.db, tx).WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, wrap("update profile", "user", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *userRepo) UpdateRole(ctx context.Context, tx *gorm.DB, id uint, role string) (*models.User, error) {
	return r.UpdateProfile(ctx, tx, id, map[string]interface{}{"role": role})
}
