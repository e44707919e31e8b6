package service

import (
	"bytes"
	"fmt"
	"time"

	"hanja_edu_backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ReportService renders a user's progress as an xlsx workbook: one summary
// sheet, one sheet with a row per studied character.
type ReportService struct {
	Progress     *ProgressService
	LearningRepo *repository.LearningRepository

	now func() time.Time
}

func NewReportService(progress *ProgressService, learningRepo *repository.LearningRepository) *ReportService {
	return &ReportService{
		Progress:     progress,
		LearningRepo: learningRepo,
		now:          time.Now,
	}
}

// BuildXLSX returns the workbook bytes and a suggested filename.
func (s *ReportService) BuildXLSX(userID string) (*bytes.Buffer, string, error) {
	now := s.now()

	summary, err := s.Progress.GetSummary(userID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.LearningRepo.LoadOrCreate(userID, now)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const charSheet = "Characters"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(charSheet); err != nil {
		return nil, "", err
	}

	summaryRows := [][]interface{}{
		{"User", summary.UserID},
		{"Generated", now.Format(time.RFC3339)},
		{"Characters studied", summary.TotalCharacters},
		{"Average mastery", summary.AverageMastery},
		{"Current streak (days)", summary.Streak.Current},
		{"Longest streak (days)", summary.Streak.Longest},
		{"Total study time (min)", summary.Statistics.TotalStudyTime},
		{"Quizzes taken", summary.Statistics.TotalQuizzesTaken},
		{"Average quiz score", summary.Statistics.AverageQuizScore},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	header := []interface{}{"Character", "Status", "Mastery", "Correct", "Incorrect", "Last studied", "Next review"}
	if err := f.SetSheetRow(charSheet, "A1", &header); err != nil {
		return nil, "", err
	}

	row := 2
	for _, record := range data.Characters {
		nextReview := ""
		if record.NextReviewDue != nil {
			nextReview = record.NextReviewDue.Format(time.RFC3339)
		}
		values := []interface{}{
			record.Character,
			string(CalculateStatus(record, now)),
			record.MasteryLevel,
			record.CorrectCount,
			record.IncorrectCount,
			record.LastStudied.Format(time.RFC3339),
			nextReview,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(charSheet, cell, &values); err != nil {
			return nil, "", err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("hanja-progress-%s-%s.xlsx", userID, now.Format("20060102"))
	return buf, filename, nil
}
