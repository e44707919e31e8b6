package util

// DefaultUserID - 인증 시스템 구현 전 고정 사용자 ID.
//
// The deployment is effectively single-user; every learning route operates
// on this document.
const DefaultUserID = "default_user"

// Mastery thresholds for the derived learning status.
const (
	MasteryCompleted = 90.0
	MasteryReviewing = 40.0
)

// DateLayout - streak 비교에 쓰는 달력 날짜 형식 (YYYY-MM-DD)
const DateLayout = "2006-01-02"
