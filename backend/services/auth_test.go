package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/testutil"
)

func newAccountService(t *testing.T) (*AccountService, *repository.Repository) {
	t.Helper()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	gam := NewGamificationService(repo, nil, NewClock(time.UTC), GoalDefaults{XPPerDay: 40, LessonsPerDay: 2}, utils.NopLogger())
	return NewAccountService(repo, gam, utils.NopLogger()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAccountService(t)

	user, err := svc.Register(ctx, RegisterInput{Name: " Ania ", Email: "Ania@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Ania", user.Name)
	assert.Equal(t, "ania@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	goal, err := repo.Goals.Get(ctx, nil, user.ID)
	require.NoError(t, err)
	require.NotNil(t, goal, "default goal stored on registration")
	assert.Equal(t, 40, goal.TargetXPPerDay)
	assert.Equal(t, 2, goal.TargetLessonsPerDay)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ania 2", Email: "ania@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.ErrorIs(t, err, models.ErrConflict)

	logged, err := svc.Login(ctx, LoginInput{Email: "ANIA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "ania@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)
	user, err := svc.Register(ctx, RegisterInput{Name: "Piotr", Email: "piotr@example.com", Password: "secret123"})
	require.NoError(t, err)

	lang, industry := "en", "finance"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{PreferredInterfaceLanguage: &lang, IndustryContext: &industry})
	require.NoError(t, err)
	assert.Equal(t, "Piotr", updated.Name)
	assert.Equal(t, "en", updated.PreferredInterfaceLanguage)
	assert.Equal(t, "finance", updated.IndustryContext)

	_, err = svc.UpdateProfile(ctx, 999, ProfileInput{PreferredInterfaceLanguage: &lang})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
