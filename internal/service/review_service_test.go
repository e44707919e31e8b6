package service

import (
	"testing"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReviewService(t *testing.T) *ReviewService {
	t.Helper()
	svc := NewReviewService(
		repository.NewLearningRepository(t.TempDir()),
		writeContentFixture(t),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func seedRecord(t *testing.T, repo *repository.LearningRepository, character string, mastery float64, due *time.Time) {
	t.Helper()
	_, err := repo.Update("user1", testNow, func(data *model.UserLearningData) error {
		record := model.NewHanjaLearningRecord(character)
		record.MasteryLevel = mastery
		record.NextReviewDue = due
		data.Characters[character] = record
		return nil
	})
	require.NoError(t, err)
}

func TestDueReviews(t *testing.T) {
	t.Run("unseen user gets an empty list", func(t *testing.T) {
		svc := newTestReviewService(t)
		items, err := svc.DueReviews("nobody")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("only elapsed due dates appear", func(t *testing.T) {
		svc := newTestReviewService(t)
		past := testNow.Add(-48 * time.Hour)
		future := testNow.Add(48 * time.Hour)

		seedRecord(t, svc.LearningRepo, "水", 35, &past)
		seedRecord(t, svc.LearningRepo, "火", 80, &future)
		seedRecord(t, svc.LearningRepo, "木", 50, nil)

		items, err := svc.DueReviews("user1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "水", items[0].Character)
		assert.Equal(t, "물 수", items[0].Meaning)
		assert.Equal(t, 1, items[0].Level)
		assert.Equal(t, 35.0, items[0].MasteryLevel)
	})

	t.Run("exactly-now due dates count as elapsed", func(t *testing.T) {
		svc := newTestReviewService(t)
		due := testNow
		seedRecord(t, svc.LearningRepo, "水", 35, &due)

		items, err := svc.DueReviews("user1")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("sorted ascending by due date", func(t *testing.T) {
		svc := newTestReviewService(t)
		older := testNow.Add(-72 * time.Hour)
		newer := testNow.Add(-24 * time.Hour)

		seedRecord(t, svc.LearningRepo, "火", 30, &newer)
		seedRecord(t, svc.LearningRepo, "水", 30, &older)

		items, err := svc.DueReviews("user1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "水", items[0].Character)
		assert.Equal(t, "火", items[1].Character)
	})

	t.Run("characters without content metadata get a placeholder meaning", func(t *testing.T) {
		svc := newTestReviewService(t)
		past := testNow.Add(-time.Hour)
		seedRecord(t, svc.LearningRepo, "龍", 10, &past)

		items, err := svc.DueReviews("user1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "의미 없음", items[0].Meaning)
		assert.Equal(t, 0, items[0].Level)
	})

	t.Run("read does not mutate the stored document", func(t *testing.T) {
		svc := newTestReviewService(t)
		past := testNow.Add(-time.Hour)
		seedRecord(t, svc.LearningRepo, "水", 35, &past)

		_, err := svc.DueReviews("user1")
		require.NoError(t, err)

		data, err := svc.LearningRepo.Load("user1")
		require.NoError(t, err)
		require.NotNil(t, data.Characters["水"].NextReviewDue)
		assert.Equal(t, past.Unix(), data.Characters["水"].NextReviewDue.Unix())
	})
}
