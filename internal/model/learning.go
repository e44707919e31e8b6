package model

import "time"

// LearningStatus 학습 상태
type LearningStatus string

const (
	StatusNotStarted  LearningStatus = "not_started"
	StatusInProgress  LearningStatus = "in_progress"
	StatusNeedsReview LearningStatus = "needs_review"
	StatusReviewing   LearningStatus = "reviewing"
	StatusCompleted   LearningStatus = "completed"
)

// StudyEventType 학습 이벤트 종류
type StudyEventType string

const (
	EventLearned       StudyEventType = "learned"
	EventReviewed      StudyEventType = "reviewed"
	EventQuizCorrect   StudyEventType = "quiz_correct"
	EventQuizIncorrect StudyEventType = "quiz_incorrect"
	EventPractice      StudyEventType = "practice"
)

// StudyEvent is one immutable learning interaction. Events are append-only;
// the history is never pruned.
type StudyEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      StudyEventType `json:"type"`
	Score     *float64       `json:"score,omitempty"`
	Details   string         `json:"details,omitempty"`
}

// HanjaLearningRecord tracks one character for one user. Status is derived
// from mastery and the review due date, never set independently.
type HanjaLearningRecord struct {
	Character      string         `json:"character"`
	Status         LearningStatus `json:"status"`
	MasteryLevel   float64        `json:"masteryLevel"`
	CorrectCount   int            `json:"correctCount"`
	IncorrectCount int            `json:"incorrectCount"`
	LastStudied    time.Time      `json:"lastStudied"`
	NextReviewDue  *time.Time     `json:"nextReviewDue,omitempty"`
	StudyHistory   []StudyEvent   `json:"studyHistory"`
}

// LevelProgress 레벨별 진행 상황
//
// Present in the persisted document for forward compatibility; no code path
// populates it yet.
type LevelProgress struct {
	LevelID             string  `json:"levelId"`
	TotalCharacters     int     `json:"totalCharacters"`
	StudiedCharacters   int     `json:"studiedCharacters"`
	CompletedCharacters int     `json:"completedCharacters"`
	AverageMastery      float64 `json:"averageMastery"`
}

// StreakInfo 연속 학습 기록
type StreakInfo struct {
	Current       int    `json:"current"`
	Longest       int    `json:"longest"`
	LastStudyDate string `json:"lastStudyDate"` // YYYY-MM-DD
}

// Statistics 학습 통계
type Statistics struct {
	TotalStudyTime         int     `json:"totalStudyTime"` // minutes
	TotalCharactersStudied int     `json:"totalCharactersStudied"`
	TotalQuizzesTaken      int     `json:"totalQuizzesTaken"`
	AverageQuizScore       float64 `json:"averageQuizScore"`
	WeeklyStudyTime        [7]int  `json:"weeklyStudyTime"` // minutes per weekday, Sunday first
}

// LearnerSettings 사용자 설정
type LearnerSettings struct {
	ReviewInterval []int `json:"reviewInterval"` // spaced-repetition ladder, in days
	DailyGoal      int   `json:"dailyGoal"`
	Notifications  bool  `json:"notifications"`
}

// StudySession 학습 세션 기록
type StudySession struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     int        `json:"duration"` // seconds
	ActivityType string     `json:"activityType"`
	Characters   []string   `json:"characters"`
	Level        string     `json:"level,omitempty"`
	Score        *float64   `json:"score,omitempty"`
}

// UserLearningData is the root aggregate persisted as one JSON document per
// user under data/learning/{userId}.json.
type UserLearningData struct {
	UserID     string                          `json:"userId"`
	Characters map[string]*HanjaLearningRecord `json:"characters"`
	Levels     map[string]*LevelProgress       `json:"levels"`
	Sessions   []StudySession                  `json:"sessions,omitempty"`
	LastActive time.Time                       `json:"lastActive"`
	Streak     StreakInfo                      `json:"streak"`
	Statistics Statistics                      `json:"statistics"`
	Settings   LearnerSettings                 `json:"settings"`
}

// DefaultReviewIntervals 기본 복습 간격 (일)
//
// Fixed ladder capped at the last entry, not an exponential scheme.
var DefaultReviewIntervals = []int{1, 3, 7, 14, 30}

// NewUserLearningData seeds a fresh document for an unseen user.
func NewUserLearningData(userID string, now time.Time) *UserLearningData {
	return &UserLearningData{
		UserID:     userID,
		Characters: make(map[string]*HanjaLearningRecord),
		Levels:     make(map[string]*LevelProgress),
		LastActive: now,
		Streak:     StreakInfo{},
		Settings: LearnerSettings{
			ReviewInterval: append([]int(nil), DefaultReviewIntervals...),
			DailyGoal:      10,
			Notifications:  true,
		},
	}
}

// NewHanjaLearningRecord seeds a zeroed record for a character seen for the
// first time.
func NewHanjaLearningRecord(character string) *HanjaLearningRecord {
	return &HanjaLearningRecord{
		Character:    character,
		Status:       StatusNotStarted,
		StudyHistory: []StudyEvent{},
	}
}
