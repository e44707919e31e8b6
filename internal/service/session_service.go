package service

import (
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"

	"github.com/google/uuid"
)

// StartSessionRequest opens a study session.
type StartSessionRequest struct {
	ActivityType string   `json:"activityType"`
	Characters   []string `json:"characters"`
	Level        string   `json:"level,omitempty"`
}

// EndSessionRequest closes a study session.
type EndSessionRequest struct {
	Score *float64 `json:"score,omitempty"`
}

// SessionService records study sessions inside the user document.
type SessionService struct {
	LearningRepo *repository.LearningRepository

	now func() time.Time
}

func NewSessionService(learningRepo *repository.LearningRepository) *SessionService {
	return &SessionService{
		LearningRepo: learningRepo,
		now:          time.Now,
	}
}

// Start appends an open session and returns it.
func (s *SessionService) Start(userID string, req StartSessionRequest) (*model.StudySession, error) {
	now := s.now()
	session := model.StudySession{
		ID:           uuid.NewString(),
		UserID:       userID,
		StartTime:    now,
		ActivityType: req.ActivityType,
		Characters:   req.Characters,
		Level:        req.Level,
	}

	_, err := s.LearningRepo.Update(userID, now, func(data *model.UserLearningData) error {
		data.Sessions = append(data.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// End closes the session and computes its duration in seconds.
func (s *SessionService) End(userID, sessionID string, req EndSessionRequest) (*model.StudySession, error) {
	now := s.now()

	var ended *model.StudySession
	_, err := s.LearningRepo.Update(userID, now, func(data *model.UserLearningData) error {
		for i := range data.Sessions {
			if data.Sessions[i].ID != sessionID {
				continue
			}
			if data.Sessions[i].EndTime != nil {
				return util.ErrSessionClosed
			}
			end := now
			data.Sessions[i].EndTime = &end
			data.Sessions[i].Duration = int(end.Sub(data.Sessions[i].StartTime).Seconds())
			data.Sessions[i].Score = req.Score
			ended = &data.Sessions[i]
			return nil
		}
		return util.ErrSessionNotFound
	})
	if err != nil {
		return nil, err
	}
	return ended, nil
}
