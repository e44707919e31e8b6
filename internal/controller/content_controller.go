package controller

import (
	"net/http"
	"strconv"

	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 한자 목록
// @Description 등급 필터와 페이지네이션을 지원하는 한자 목록
// @Tags 콘텐츠
// @Produce json
// @Param grade query int false "숫자 등급 (1=8급)"
// @Param page query int false "페이지 (1부터)"
// @Param limit query int false "페이지당 개수 (기본 20)"
// @Success 200 {object} util.Response
// @Router /api/hanja [get]
func (c *ContentController) ListHanja(ctx *gin.Context) {
	grade, _ := strconv.Atoi(ctx.DefaultQuery("grade", "0"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, pagination := c.ContentService.List(grade, page, limit)
	util.Success(ctx, util.PageResponse{
		List:       list,
		Pagination: pagination,
	})
}

// @Summary 한자 단건 조회
// @Tags 콘텐츠
// @Produce json
// @Param character path string true "한자"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hanja/{character} [get]
func (c *ContentController) GetHanja(ctx *gin.Context) {
	character := ctx.Param("character")
	info := c.ContentService.Get(character)
	if info == nil {
		util.Error(ctx, http.StatusNotFound, util.ErrCharacterNotFound.Error())
		return
	}
	util.Success(ctx, info)
}

// @Summary 등급별 한자
// @Tags 콘텐츠
// @Produce json
// @Param grade path int true "숫자 등급"
// @Success 200 {object} util.Response
// @Router /api/hanja/grade/{grade} [get]
func (c *ContentController) GetByGrade(ctx *gin.Context) {
	grade, err := strconv.Atoi(ctx.Param("grade"))
	if err != nil {
		util.BadRequest(ctx, "invalid grade")
		return
	}
	util.Success(ctx, c.ContentService.ByGrade(grade))
}

// @Summary 획순 데이터
// @Description 한자별 획순 JSON을 그대로 전달
// @Tags 콘텐츠
// @Produce json
// @Param character query string true "한자"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/hanja/strokes [get]
func (c *ContentController) GetStrokes(ctx *gin.Context) {
	character := ctx.Query("character")
	if character == "" {
		util.BadRequest(ctx, util.ErrCharacterRequired.Error())
		return
	}

	data, err := c.ContentService.StrokeData(character)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if data == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, data)
}

// @Summary 한자 검색
// @Description 한자/발음/의미에 대한 부분 일치 검색
// @Tags 콘텐츠
// @Produce json
// @Param q query string true "검색어"
// @Param examples query bool false "예문 포함 여부"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/search [get]
func (c *ContentController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "검색어를 입력해주세요")
		return
	}

	opts := service.DefaultSearchOptions()
	if ctx.Query("examples") == "true" {
		opts.IncludeExamples = true
	}

	results := c.ContentService.Search(ctx.Request.Context(), query, opts)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// @Summary 카테고리 목록
// @Tags 콘텐츠
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *ContentController) GetCategories(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.Categories())
}
