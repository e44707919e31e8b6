// Package service implements the learning domain on top of the JSON-file
// repositories.
package service

import (
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"
	"hanja_edu_backend/pkg/logger"
	"hanja_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ProgressRequest is one incoming study event.
type ProgressRequest struct {
	Character string               `json:"character"`
	EventType model.StudyEventType `json:"eventType"`
	Score     *float64             `json:"score,omitempty"`
	Details   string               `json:"details,omitempty"`
}

// ProgressSummary is the aggregate view returned without the character map.
type ProgressSummary struct {
	UserID          string                       `json:"userId"`
	TotalCharacters int                          `json:"totalCharacters"`
	StatusCounts    map[model.LearningStatus]int `json:"statusCounts"`
	AverageMastery  float64                      `json:"averageMastery"`
	Streak          model.StreakInfo             `json:"streak"`
	Statistics      model.Statistics             `json:"statistics"`
	LastActive      time.Time                    `json:"lastActive"`
}

// ProgressService applies study events to per-user learning documents.
type ProgressService struct {
	LearningRepo *repository.LearningRepository
	Learning     config.LearningConfig

	now func() time.Time
}

func NewProgressService(learningRepo *repository.LearningRepository, learning config.LearningConfig) *ProgressService {
	return &ProgressService{
		LearningRepo: learningRepo,
		Learning:     learning,
		now:          time.Now,
	}
}

// CalculateMastery applies one event's mastery delta, clamped to [0,100].
// No rounding; mastery may be fractional. A present score of 0 counts as
// provided — on quiz_incorrect that is the maximum penalty, and a score of
// 100 is no penalty at all. The inverse relationship is intentional.
func CalculateMastery(current float64, eventType model.StudyEventType, score *float64) float64 {
	switch eventType {
	case model.EventLearned:
		return clampMastery(current + 20)
	case model.EventReviewed:
		return clampMastery(current + 10)
	case model.EventQuizCorrect:
		if score != nil {
			return clampMastery(current + *score/5)
		}
		return clampMastery(current + 15)
	case model.EventQuizIncorrect:
		if score != nil {
			return clampMastery(current - (100-*score)/5)
		}
		return clampMastery(current - 10)
	case model.EventPractice:
		if score != nil {
			return clampMastery(current + *score/10)
		}
		return clampMastery(current + 5)
	default:
		return current
	}
}

func clampMastery(m float64) float64 {
	if m < 0 {
		return 0
	}
	if m > 100 {
		return 100
	}
	return m
}

// CalculateStatus derives the learning status. An elapsed review due date
// overrides the mastery bands.
func CalculateStatus(record *model.HanjaLearningRecord, now time.Time) model.LearningStatus {
	if record == nil {
		return model.StatusNotStarted
	}
	if record.NextReviewDue != nil && !record.NextReviewDue.After(now) {
		return model.StatusNeedsReview
	}
	switch {
	case record.MasteryLevel >= util.MasteryCompleted:
		return model.StatusCompleted
	case record.MasteryLevel >= util.MasteryReviewing:
		return model.StatusReviewing
	case record.MasteryLevel > 0:
		return model.StatusInProgress
	default:
		return model.StatusNotStarted
	}
}

// NextReviewDate schedules the next review on the fixed interval ladder,
// capped at the last rung. reviewCount is the number of prior learned or
// reviewed events, counted before the current event is appended.
func NextReviewDate(reviewCount int, intervals []int, now time.Time) time.Time {
	if len(intervals) == 0 {
		intervals = model.DefaultReviewIntervals
	}
	idx := reviewCount
	if idx > len(intervals)-1 {
		idx = len(intervals) - 1
	}
	return now.AddDate(0, 0, intervals[idx])
}

// UpdateStreak advances the consecutive-day counter in place. Repeated
// events on the same calendar day are a no-op; any gap resets to 1.
func UpdateStreak(data *model.UserLearningData, now time.Time) {
	today := now.Format(util.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(util.DateLayout)

	switch data.Streak.LastStudyDate {
	case today:
		return
	case yesterday:
		data.Streak.Current++
		if data.Streak.Current > data.Streak.Longest {
			data.Streak.Longest = data.Streak.Current
		}
	default:
		data.Streak.Current = 1
	}
	data.Streak.LastStudyDate = today
}

func countReviewEvents(history []model.StudyEvent) int {
	n := 0
	for _, ev := range history {
		if ev.Type == model.EventLearned || ev.Type == model.EventReviewed {
			n++
		}
	}
	return n
}

// ApplyStudyEvent runs the full event-application sequence and persists the
// updated document. Returns the character's updated record.
func (s *ProgressService) ApplyStudyEvent(userID string, req ProgressRequest) (*model.HanjaLearningRecord, error) {
	now := s.now()

	var updated *model.HanjaLearningRecord
	_, err := s.LearningRepo.Update(userID, now, func(data *model.UserLearningData) error {
		data.LastActive = now
		UpdateStreak(data, now)

		record, ok := data.Characters[req.Character]
		if !ok {
			record = model.NewHanjaLearningRecord(req.Character)
			data.Characters[req.Character] = record
			data.Statistics.TotalCharactersStudied++
		}

		// Capture before the append; the current event never counts
		// toward its own review scheduling.
		reviewCount := countReviewEvents(record.StudyHistory)

		record.StudyHistory = append(record.StudyHistory, model.StudyEvent{
			Timestamp: now,
			Type:      req.EventType,
			Score:     req.Score,
			Details:   req.Details,
		})

		if req.EventType == model.EventQuizCorrect || req.EventType == model.EventQuizIncorrect {
			data.Statistics.TotalQuizzesTaken++
			if req.Score != nil {
				n := float64(data.Statistics.TotalQuizzesTaken)
				data.Statistics.AverageQuizScore = (data.Statistics.AverageQuizScore*(n-1) + *req.Score) / n
			}
			if req.EventType == model.EventQuizCorrect {
				record.CorrectCount++
			} else {
				record.IncorrectCount++
			}
		}

		record.LastStudied = now
		record.MasteryLevel = CalculateMastery(record.MasteryLevel, req.EventType, req.Score)

		if req.EventType == model.EventLearned || req.EventType == model.EventReviewed {
			intervals := data.Settings.ReviewInterval
			if len(intervals) == 0 {
				intervals = s.Learning.ReviewIntervals
			}
			due := NextReviewDate(reviewCount, intervals, now)
			record.NextReviewDue = &due
		}

		record.Status = CalculateStatus(record, now)

		// Every event is credited a flat amount of study time; actual
		// elapsed time is not measured.
		credit := s.Learning.StudyCreditMinutes
		data.Statistics.WeeklyStudyTime[int(now.Weekday())] += credit
		data.Statistics.TotalStudyTime += credit

		updated = record
		return nil
	})
	if err != nil {
		logger.Log.Error("failed to apply study event",
			zap.String("user", userID),
			zap.String("character", req.Character),
			zap.Error(err))
		return nil, err
	}

	monitoring.StudyEventCounter.WithLabelValues(string(req.EventType)).Inc()
	return updated, nil
}

// GetRecord returns one character's record, or nil when never studied.
func (s *ProgressService) GetRecord(userID, character string) (*model.HanjaLearningRecord, error) {
	data, err := s.LearningRepo.Load(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return data.Characters[character], nil
}

// GetSummary aggregates the user's progress without the full character map.
// Statuses are re-derived so records whose review came due since their last
// update show up as needs_review.
func (s *ProgressService) GetSummary(userID string) (*ProgressSummary, error) {
	now := s.now()
	data, err := s.LearningRepo.LoadOrCreate(userID, now)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		UserID:          data.UserID,
		TotalCharacters: len(data.Characters),
		StatusCounts: map[model.LearningStatus]int{
			model.StatusNotStarted:  0,
			model.StatusInProgress:  0,
			model.StatusNeedsReview: 0,
			model.StatusReviewing:   0,
			model.StatusCompleted:   0,
		},
		Streak:     data.Streak,
		Statistics: data.Statistics,
		LastActive: data.LastActive,
	}

	total := 0.0
	for _, record := range data.Characters {
		summary.StatusCounts[CalculateStatus(record, now)]++
		total += record.MasteryLevel
	}
	if len(data.Characters) > 0 {
		summary.AverageMastery = total / float64(len(data.Characters))
	}
	return summary, nil
}

// UpdateSettings replaces the learner settings after validating the ladder.
func (s *ProgressService) UpdateSettings(userID string, settings model.LearnerSettings) (*model.LearnerSettings, error) {
	if len(settings.ReviewInterval) == 0 {
		return nil, util.ErrInvalidInterval
	}
	for _, d := range settings.ReviewInterval {
		if d <= 0 {
			return nil, util.ErrInvalidInterval
		}
	}

	var out model.LearnerSettings
	_, err := s.LearningRepo.Update(userID, s.now(), func(data *model.UserLearningData) error {
		data.Settings = settings
		out = data.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
