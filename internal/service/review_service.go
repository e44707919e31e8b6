package service

import (
	"sort"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
)

// ReviewService lists the characters whose spaced-repetition review is due.
type ReviewService struct {
	LearningRepo *repository.LearningRepository
	ContentRepo  *repository.ContentRepository

	now func() time.Time
}

func NewReviewService(learningRepo *repository.LearningRepository, contentRepo *repository.ContentRepository) *ReviewService {
	return &ReviewService{
		LearningRepo: learningRepo,
		ContentRepo:  contentRepo,
		now:          time.Now,
	}
}

// DueReviews scans the user's records for elapsed review dates, joins the
// static content for display metadata and sorts ascending by due date.
// Pure read; nothing is mutated.
func (s *ReviewService) DueReviews(userID string) ([]model.ReviewItem, error) {
	data, err := s.LearningRepo.Load(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []model.ReviewItem{}, nil
	}

	now := s.now()
	items := make([]model.ReviewItem, 0)
	for _, record := range data.Characters {
		if record.NextReviewDue == nil || record.NextReviewDue.After(now) {
			continue
		}

		item := model.ReviewItem{
			Character:    record.Character,
			Meaning:      "의미 없음",
			DueDate:      record.NextReviewDue,
			Status:       record.Status,
			MasteryLevel: record.MasteryLevel,
		}
		if info := s.ContentRepo.ByCharacter(record.Character); info != nil {
			if info.Meaning != "" {
				item.Meaning = info.Meaning
			}
			item.Level = info.Grade
		}
		items = append(items, item)
	}

	// Missing due dates sort as epoch, i.e. first.
	sort.SliceStable(items, func(i, j int) bool {
		return dueOrEpoch(items[i].DueDate).Before(dueOrEpoch(items[j].DueDate))
	})

	return items, nil
}

func dueOrEpoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0)
	}
	return *t
}
