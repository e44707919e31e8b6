package controller

import (
	"os"
	"path/filepath"

	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	ContentRepo *repository.ContentRepository
	LearningDir string
}

func NewHealthController(contentRepo *repository.ContentRepository, learningDir string) *HealthController {
	return &HealthController{ContentRepo: contentRepo, LearningDir: learningDir}
}

// @Summary 헬스 체크
// @Description 콘텐츠 인덱스와 학습 데이터 디렉터리 상태
// @Tags 시스템
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	content := "up"
	if c.ContentRepo.Count() == 0 {
		content = "empty"
	}

	learning := "up"
	probe := filepath.Join(c.LearningDir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		learning = "unwritable"
	} else {
		os.Remove(probe)
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"content":  content,
			"learning": learning,
		},
		"contentSource": c.ContentRepo.Source(),
	})
}
