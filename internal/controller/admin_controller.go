package controller

import (
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	SnapshotService *service.SnapshotService
	ContentService  *service.ContentService
}

func NewAdminController(snapshotService *service.SnapshotService, contentService *service.ContentService) *AdminController {
	return &AdminController{
		SnapshotService: snapshotService,
		ContentService:  contentService,
	}
}

// @Summary 학습 데이터 스냅샷 생성
// @Description 학습 데이터 디렉터리를 묶어 스토리지에 업로드
// @Tags 관리
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/snapshot [post]
func (c *AdminController) TriggerSnapshot(ctx *gin.Context) {
	location, err := c.SnapshotService.Run(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"location": location})
}

// @Summary 콘텐츠 인덱스 재적재
// @Description 디스크의 한자 데이터베이스를 다시 읽고 검색 캐시를 비움
// @Tags 관리
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/content/reload [post]
func (c *AdminController) ReloadContent(ctx *gin.Context) {
	if err := c.ContentService.ContentRepo.Reload(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.ContentService.ClearSearchCache(ctx.Request.Context())
	util.Success(ctx, gin.H{
		"source":     c.ContentService.ContentRepo.Source(),
		"characters": c.ContentService.ContentRepo.Count(),
	})
}
