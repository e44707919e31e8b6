package service

import (
	"testing"
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

// 2025-06-02 is a Monday.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newTestProgressService(t *testing.T) *ProgressService {
	t.Helper()
	svc := NewProgressService(
		repository.NewLearningRepository(t.TempDir()),
		config.LearningConfig{
			ReviewIntervals:    []int{1, 3, 7, 14, 30},
			DailyGoal:          10,
			StudyCreditMinutes: 5,
		},
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCalculateMastery(t *testing.T) {
	t.Run("learned adds 20", func(t *testing.T) {
		assert.Equal(t, 20.0, CalculateMastery(0, model.EventLearned, nil))
	})

	t.Run("reviewed adds 10", func(t *testing.T) {
		assert.Equal(t, 40.0, CalculateMastery(30, model.EventReviewed, nil))
	})

	t.Run("quiz correct uses score/5", func(t *testing.T) {
		assert.Equal(t, 16.0, CalculateMastery(0, model.EventQuizCorrect, score(80)))
	})

	t.Run("quiz correct without score adds 15", func(t *testing.T) {
		assert.Equal(t, 15.0, CalculateMastery(0, model.EventQuizCorrect, nil))
	})

	t.Run("quiz incorrect penalty grows as score shrinks", func(t *testing.T) {
		// score 0 is provided and is the maximum penalty
		assert.Equal(t, 30.0, CalculateMastery(50, model.EventQuizIncorrect, score(0)))
		// score 100 is no penalty at all
		assert.Equal(t, 50.0, CalculateMastery(50, model.EventQuizIncorrect, score(100)))
	})

	t.Run("quiz incorrect without score subtracts 10", func(t *testing.T) {
		assert.Equal(t, 40.0, CalculateMastery(50, model.EventQuizIncorrect, nil))
	})

	t.Run("practice uses score/10", func(t *testing.T) {
		assert.Equal(t, 7.5, CalculateMastery(0, model.EventPractice, score(75)))
	})

	t.Run("practice without score adds 5", func(t *testing.T) {
		assert.Equal(t, 5.0, CalculateMastery(0, model.EventPractice, nil))
	})

	t.Run("unknown event type leaves mastery unchanged", func(t *testing.T) {
		assert.Equal(t, 42.5, CalculateMastery(42.5, model.StudyEventType("bogus"), score(100)))
	})

	t.Run("clamped to [0,100]", func(t *testing.T) {
		assert.Equal(t, 100.0, CalculateMastery(95, model.EventLearned, nil))
		assert.Equal(t, 0.0, CalculateMastery(5, model.EventQuizIncorrect, score(0)))
	})

	t.Run("fractional values survive", func(t *testing.T) {
		got := CalculateMastery(10, model.EventQuizCorrect, score(33))
		assert.InDelta(t, 16.6, got, 1e-9)
	})

	t.Run("stays in [0,100] over arbitrary sequences", func(t *testing.T) {
		events := []struct {
			typ model.StudyEventType
			sc  *float64
		}{
			{model.EventLearned, nil},
			{model.EventLearned, nil},
			{model.EventQuizCorrect, score(100)},
			{model.EventLearned, nil},
			{model.EventReviewed, nil},
			{model.EventQuizIncorrect, score(0)},
			{model.EventQuizIncorrect, score(0)},
			{model.EventQuizIncorrect, nil},
			{model.EventQuizIncorrect, score(0)},
			{model.EventPractice, score(100)},
		}
		mastery := 0.0
		for _, ev := range events {
			mastery = CalculateMastery(mastery, ev.typ, ev.sc)
			assert.GreaterOrEqual(t, mastery, 0.0)
			assert.LessOrEqual(t, mastery, 100.0)
		}
	})
}

func TestCalculateStatus(t *testing.T) {
	now := testNow

	t.Run("nil record is not started", func(t *testing.T) {
		assert.Equal(t, model.StatusNotStarted, CalculateStatus(nil, now))
	})

	t.Run("elapsed review date overrides mastery", func(t *testing.T) {
		due := now.Add(-time.Hour)
		record := &model.HanjaLearningRecord{MasteryLevel: 95, NextReviewDue: &due}
		assert.Equal(t, model.StatusNeedsReview, CalculateStatus(record, now))
	})

	t.Run("exactly due counts as elapsed", func(t *testing.T) {
		due := now
		record := &model.HanjaLearningRecord{MasteryLevel: 95, NextReviewDue: &due}
		assert.Equal(t, model.StatusNeedsReview, CalculateStatus(record, now))
	})

	t.Run("mastery bands", func(t *testing.T) {
		future := now.Add(24 * time.Hour)
		cases := []struct {
			mastery float64
			want    model.LearningStatus
		}{
			{0, model.StatusNotStarted},
			{0.5, model.StatusInProgress},
			{39.9, model.StatusInProgress},
			{40, model.StatusReviewing},
			{89.9, model.StatusReviewing},
			{90, model.StatusCompleted},
			{100, model.StatusCompleted},
		}
		for _, c := range cases {
			record := &model.HanjaLearningRecord{MasteryLevel: c.mastery, NextReviewDue: &future}
			assert.Equal(t, c.want, CalculateStatus(record, now), "mastery %v", c.mastery)
		}
	})
}

func TestNextReviewDate(t *testing.T) {
	intervals := []int{1, 3, 7, 14, 30}

	t.Run("walks the ladder", func(t *testing.T) {
		for i, days := range intervals {
			got := NextReviewDate(i, intervals, testNow)
			assert.Equal(t, testNow.AddDate(0, 0, days), got)
		}
	})

	t.Run("caps at the last rung", func(t *testing.T) {
		assert.Equal(t, testNow.AddDate(0, 0, 30), NextReviewDate(5, intervals, testNow))
		assert.Equal(t, testNow.AddDate(0, 0, 30), NextReviewDate(100, intervals, testNow))
	})

	t.Run("empty ladder falls back to the defaults", func(t *testing.T) {
		assert.Equal(t, testNow.AddDate(0, 0, 1), NextReviewDate(0, nil, testNow))
	})

	t.Run("intervals never shrink as the count grows", func(t *testing.T) {
		prev := NextReviewDate(0, intervals, testNow)
		for i := 1; i < 10; i++ {
			next := NextReviewDate(i, intervals, testNow)
			assert.False(t, next.Before(prev), "count %d", i)
			prev = next
		}
	})
}

func TestUpdateStreak(t *testing.T) {
	t.Run("first study starts at 1", func(t *testing.T) {
		data := model.NewUserLearningData("u", testNow)
		UpdateStreak(data, testNow)
		assert.Equal(t, 1, data.Streak.Current)
		assert.Equal(t, "2025-06-02", data.Streak.LastStudyDate)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		data := model.NewUserLearningData("u", testNow)
		UpdateStreak(data, testNow)
		UpdateStreak(data, testNow.Add(5*time.Hour))
		assert.Equal(t, 1, data.Streak.Current)
	})

	t.Run("consecutive day increments and tracks longest", func(t *testing.T) {
		data := model.NewUserLearningData("u", testNow)
		UpdateStreak(data, testNow)
		UpdateStreak(data, testNow.AddDate(0, 0, 1))
		UpdateStreak(data, testNow.AddDate(0, 0, 2))
		assert.Equal(t, 3, data.Streak.Current)
		assert.Equal(t, 3, data.Streak.Longest)
	})

	t.Run("gap resets current but keeps longest", func(t *testing.T) {
		data := model.NewUserLearningData("u", testNow)
		UpdateStreak(data, testNow)
		UpdateStreak(data, testNow.AddDate(0, 0, 1))
		UpdateStreak(data, testNow.AddDate(0, 0, 5))
		assert.Equal(t, 1, data.Streak.Current)
		assert.Equal(t, 2, data.Streak.Longest)
	})
}

func TestApplyStudyEvent_Learned(t *testing.T) {
	svc := newTestProgressService(t)

	record, err := svc.ApplyStudyEvent("user1", ProgressRequest{
		Character: "水",
		EventType: model.EventLearned,
	})
	require.NoError(t, err)

	assert.Equal(t, "水", record.Character)
	assert.Equal(t, 20.0, record.MasteryLevel)
	assert.Equal(t, model.StatusInProgress, record.Status)
	require.NotNil(t, record.NextReviewDue)
	assert.Equal(t, testNow.AddDate(0, 0, 1), *record.NextReviewDue)
	assert.Len(t, record.StudyHistory, 1)

	// 문서가 디스크에 남았는지 확인
	data, err := svc.LearningRepo.Load("user1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 1, data.Statistics.TotalCharactersStudied)
	assert.Equal(t, 5, data.Statistics.TotalStudyTime)
	assert.Equal(t, 5, data.Statistics.WeeklyStudyTime[int(testNow.Weekday())])
	assert.Equal(t, 1, data.Streak.Current)
}

func TestApplyStudyEvent_QuizIncorrectZeroScore(t *testing.T) {
	svc := newTestProgressService(t)

	_, err := svc.ApplyStudyEvent("user1", ProgressRequest{
		Character: "水",
		EventType: model.EventLearned,
	})
	require.NoError(t, err)

	record, err := svc.ApplyStudyEvent("user1", ProgressRequest{
		Character: "水",
		EventType: model.EventQuizIncorrect,
		Score:     score(0),
	})
	require.NoError(t, err)

	// 점수 0은 최대 감점 20 → 20 - 20 = 0
	assert.Equal(t, 0.0, record.MasteryLevel)
	assert.Equal(t, model.StatusNotStarted, record.Status)
	assert.Equal(t, 1, record.IncorrectCount)
	assert.Equal(t, 0, record.CorrectCount)

	data, err := svc.LearningRepo.Load("user1")
	require.NoError(t, err)
	assert.Equal(t, 1, data.Statistics.TotalQuizzesTaken)
	assert.Equal(t, 0.0, data.Statistics.AverageQuizScore)
	// 같은 글자의 두 번째 이벤트는 학습 글자 수를 늘리지 않는다
	assert.Equal(t, 1, data.Statistics.TotalCharactersStudied)
}

func TestApplyStudyEvent_ReviewLadderUsesPriorCount(t *testing.T) {
	svc := newTestProgressService(t)

	first, err := svc.ApplyStudyEvent("user1", ProgressRequest{Character: "火", EventType: model.EventLearned})
	require.NoError(t, err)
	require.NotNil(t, first.NextReviewDue)
	assert.Equal(t, testNow.AddDate(0, 0, 1), *first.NextReviewDue)

	// 두 번째 learned/reviewed 이벤트는 이전 1건 기준으로 intervals[1]=3일
	second, err := svc.ApplyStudyEvent("user1", ProgressRequest{Character: "火", EventType: model.EventReviewed})
	require.NoError(t, err)
	require.NotNil(t, second.NextReviewDue)
	assert.Equal(t, testNow.AddDate(0, 0, 3), *second.NextReviewDue)
}

func TestApplyStudyEvent_QuizAverageIsRunning(t *testing.T) {
	svc := newTestProgressService(t)

	_, err := svc.ApplyStudyEvent("user1", ProgressRequest{
		Character: "水", EventType: model.EventQuizCorrect, Score: score(80),
	})
	require.NoError(t, err)
	_, err = svc.ApplyStudyEvent("user1", ProgressRequest{
		Character: "火", EventType: model.EventQuizIncorrect, Score: score(60),
	})
	require.NoError(t, err)

	data, err := svc.LearningRepo.Load("user1")
	require.NoError(t, err)
	assert.Equal(t, 2, data.Statistics.TotalQuizzesTaken)
	assert.InDelta(t, 70.0, data.Statistics.AverageQuizScore, 1e-9)
}

func TestApplyStudyEvent_CustomLadderFromSettings(t *testing.T) {
	svc := newTestProgressService(t)

	_, err := svc.UpdateSettings("user1", model.LearnerSettings{
		ReviewInterval: []int{2, 5},
		DailyGoal:      20,
		Notifications:  false,
	})
	require.NoError(t, err)

	record, err := svc.ApplyStudyEvent("user1", ProgressRequest{Character: "木", EventType: model.EventLearned})
	require.NoError(t, err)
	require.NotNil(t, record.NextReviewDue)
	assert.Equal(t, testNow.AddDate(0, 0, 2), *record.NextReviewDue)
}

func TestGetRecord(t *testing.T) {
	svc := newTestProgressService(t)

	t.Run("unseen user yields nil", func(t *testing.T) {
		record, err := svc.GetRecord("nobody", "水")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("unstudied character yields nil", func(t *testing.T) {
		_, err := svc.ApplyStudyEvent("user1", ProgressRequest{Character: "水", EventType: model.EventLearned})
		require.NoError(t, err)

		record, err := svc.GetRecord("user1", "火")
		require.NoError(t, err)
		assert.Nil(t, record)
	})
}

func TestGetSummary(t *testing.T) {
	svc := newTestProgressService(t)

	t.Run("fresh user gets an empty summary", func(t *testing.T) {
		summary, err := svc.GetSummary("fresh")
		require.NoError(t, err)
		assert.Equal(t, 0, summary.TotalCharacters)
		assert.Equal(t, 0.0, summary.AverageMastery)
	})

	t.Run("statuses are re-derived at read time", func(t *testing.T) {
		_, err := svc.ApplyStudyEvent("user1", ProgressRequest{Character: "水", EventType: model.EventLearned})
		require.NoError(t, err)

		// 복습 예정일(+1일)이 지난 시점에서 조회
		svc.now = func() time.Time { return testNow.AddDate(0, 0, 2) }
		defer func() { svc.now = func() time.Time { return testNow } }()

		summary, err := svc.GetSummary("user1")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalCharacters)
		assert.Equal(t, 1, summary.StatusCounts[model.StatusNeedsReview])
		assert.Equal(t, 20.0, summary.AverageMastery)
	})
}

func TestUpdateSettings(t *testing.T) {
	svc := newTestProgressService(t)

	t.Run("rejects empty ladder", func(t *testing.T) {
		_, err := svc.UpdateSettings("user1", model.LearnerSettings{ReviewInterval: nil})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive intervals", func(t *testing.T) {
		_, err := svc.UpdateSettings("user1", model.LearnerSettings{ReviewInterval: []int{1, 0, 7}})
		assert.Error(t, err)
	})

	t.Run("persists valid settings", func(t *testing.T) {
		updated, err := svc.UpdateSettings("user1", model.LearnerSettings{
			ReviewInterval: []int{1, 2, 4},
			DailyGoal:      15,
			Notifications:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4}, updated.ReviewInterval)

		data, err := svc.LearningRepo.Load("user1")
		require.NoError(t, err)
		assert.Equal(t, 15, data.Settings.DailyGoal)
	})
}
