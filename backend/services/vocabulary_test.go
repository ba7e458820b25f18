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

func TestVocabularyService(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc := NewVocabularyService(repo, NewClockFunc(testutil.FixedNow(now), time.UTC), utils.NopLogger())
	user := testutil.SeedUser(t, db, "ewa", models.RoleUser)

	word := &models.VocabularyItem{EnglishWordOrPhrase: "invoice", Translation: "faktura", IndustryTag: "finance"}
	require.NoError(t, repo.Content.CreateVocabulary(ctx, nil, word))

	added, err := svc.Add(ctx, user.ID, word.ID)
	require.NoError(t, err)
	assert.True(t, added.AddedManually)
	assert.Equal(t, 0, added.Strength)
	assert.Equal(t, "invoice", added.VocabularyItem.EnglishWordOrPhrase)

	again, err := svc.Add(ctx, user.ID, word.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, again.ID, "adding twice keeps one entry")

	_, err = svc.Add(ctx, user.ID, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// strength moves by one per review and stays within [0, 5]
	reviews := []struct {
		correct  bool
		strength int
	}{
		{false, 0}, {true, 1}, {true, 2}, {true, 3}, {true, 4},
		{true, 5}, {true, 5}, {true, 5}, {false, 4},
	}
	for i, r := range reviews {
		item, err := svc.Review(ctx, user.ID, word.ID, r.correct)
		require.NoError(t, err)
		assert.Equal(t, r.strength, item.Strength, "review %d", i)
		require.NotNil(t, item.LastSeenAt)
		assert.True(t, item.LastSeenAt.Equal(now))
	}

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Remove(ctx, user.ID, word.ID))
	list, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, svc.Remove(ctx, user.ID, word.ID), models.ErrNotFound)

	_, err = svc.Review(ctx, user.ID, word.ID, true)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// removal is a hard delete, so the word can be added again
	_, err = svc.Add(ctx, user.ID, word.ID)
	require.NoError(t, err)
}
