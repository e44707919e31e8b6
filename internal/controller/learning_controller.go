package controller

import (
	"net/http"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	ProgressService *service.ProgressService
	ReviewService   *service.ReviewService
	SessionService  *service.SessionService
	ReportService   *service.ReportService
}

func NewLearningController(
	progressService *service.ProgressService,
	reviewService *service.ReviewService,
	sessionService *service.SessionService,
	reportService *service.ReportService,
) *LearningController {
	return &LearningController{
		ProgressService: progressService,
		ReviewService:   reviewService,
		SessionService:  sessionService,
		ReportService:   reportService,
	}
}

// @Summary 학습 이벤트 기록
// @Description 한자 학습 이벤트를 적용하고 갱신된 기록을 반환
// @Tags 학습
// @Accept json
// @Produce json
// @Param event body service.ProgressRequest true "학습 이벤트"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/learning/progress [post]
func (c *LearningController) UpdateProgress(ctx *gin.Context) {
	var req service.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Character == "" {
		util.BadRequest(ctx, util.ErrCharacterRequired.Error())
		return
	}
	if req.EventType == "" {
		util.BadRequest(ctx, util.ErrEventTypeRequired.Error())
		return
	}

	record, err := c.ProgressService.ApplyStudyEvent(util.DefaultUserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"character":     req.Character,
		"updatedRecord": record,
	})
}

// @Summary 학습 진도 조회
// @Description character 쿼리가 있으면 해당 한자의 기록, 없으면 전체 요약
// @Tags 학습
// @Produce json
// @Param character query string false "한자"
// @Success 200 {object} util.Response
// @Router /api/learning/progress [get]
func (c *LearningController) GetProgress(ctx *gin.Context) {
	character := ctx.Query("character")

	if character != "" {
		record, err := c.ProgressService.GetRecord(util.DefaultUserID, character)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		// record is null when the character was never studied.
		ctx.JSON(http.StatusOK, gin.H{
			"success":   true,
			"character": character,
			"record":    record,
		})
		return
	}

	summary, err := c.ProgressService.GetSummary(util.DefaultUserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary 복습 목록
// @Description 복습 예정일이 지난 한자를 만료일 오름차순으로 반환
// @Tags 학습
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/learning/reviews [get]
func (c *LearningController) GetReviews(ctx *gin.Context) {
	items, err := c.ReviewService.DueReviews(util.DefaultUserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reviewItems": items,
	})
}

// @Summary 학습 설정 변경
// @Description 복습 간격, 일일 목표, 알림 설정 갱신
// @Tags 학습
// @Accept json
// @Produce json
// @Param settings body model.LearnerSettings true "학습 설정"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/learning/settings [put]
func (c *LearningController) UpdateSettings(ctx *gin.Context) {
	var settings model.LearnerSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ProgressService.UpdateSettings(util.DefaultUserID, settings)
	if err == util.ErrInvalidInterval {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 학습 세션 시작
// @Tags 학습
// @Accept json
// @Produce json
// @Param session body service.StartSessionRequest true "세션 정보"
// @Success 200 {object} util.Response
// @Router /api/learning/sessions [post]
func (c *LearningController) StartSession(ctx *gin.Context) {
	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.ActivityType == "" {
		util.BadRequest(ctx, "activityType is required")
		return
	}

	session, err := c.SessionService.Start(util.DefaultUserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary 학습 세션 종료
// @Tags 학습
// @Accept json
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learning/sessions/{id}/end [put]
func (c *LearningController) EndSession(ctx *gin.Context) {
	var req service.EndSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.End(util.DefaultUserID, ctx.Param("id"), req)
	switch err {
	case nil:
		util.Success(ctx, session)
	case util.ErrSessionNotFound:
		util.NotFound(ctx)
	case util.ErrSessionClosed:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 진도 리포트 다운로드
// @Description xlsx 형식의 학습 진도 리포트
// @Tags 학습
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/learning/report [get]
func (c *LearningController) ExportReport(ctx *gin.Context) {
	buf, filename, err := c.ReportService.BuildXLSX(util.DefaultUserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
