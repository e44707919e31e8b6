package model

import "time"

// HanjaExample 예문 (단어, 의미, 발음)
type HanjaExample struct {
	Word          string `json:"word"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation"`
}

// HanjaCharacter is one entry of the static content database.
type HanjaCharacter struct {
	ID            string         `json:"id,omitempty"`
	Character     string         `json:"character"`
	Meaning       string         `json:"meaning"`
	Pronunciation string         `json:"pronunciation"`
	Strokes       int            `json:"stroke_count"`
	Radical       string         `json:"radical,omitempty"`
	Examples      []HanjaExample `json:"examples,omitempty"`
	Level         string         `json:"level,omitempty"` // 급수, e.g. "8급"
	Grade         int            `json:"grade,omitempty"` // numeric grade, 1 = easiest
	Order         int            `json:"order,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
}

// HanjaLevel groups characters of one difficulty level inside the database
// file.
type HanjaLevel struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Characters  []HanjaCharacter `json:"characters"`
}

// HanjaSection is the basic/advanced half of the database file.
type HanjaSection struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	TotalCharacters int                   `json:"total_characters"`
	Levels          map[string]HanjaLevel `json:"levels"`
}

// HanjaDatabase mirrors the on-disk hanja_database_*.json layout.
type HanjaDatabase struct {
	Basic    HanjaSection  `json:"basic"`
	Advanced *HanjaSection `json:"advanced,omitempty"`
}

// CategoryLevel 카테고리 내 레벨
type CategoryLevel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Characters  []string `json:"characters"`
}

// Category 한자 카테고리
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Levels      []CategoryLevel `json:"levels"`
}

// ReviewItem is one due-review entry joined with content metadata.
type ReviewItem struct {
	Character    string         `json:"character"`
	Meaning      string         `json:"meaning"`
	DueDate      *time.Time     `json:"dueDate"`
	Level        int            `json:"level"`
	Status       LearningStatus `json:"status"`
	MasteryLevel float64        `json:"masteryLevel"`
}

// Pagination 페이지네이션 메타데이터
type Pagination struct {
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
