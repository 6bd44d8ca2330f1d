package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary 推荐测试
// @Description 按分类亲和度与热度推荐尚未完成的测试
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量，默认 3"
// @Success 200 {object} util.Response{data=[]service.TestPreview}
// @Router /api/recommend [get]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid limit")
			return
		}
		limit = n
	}

	tests, err := c.RecommendationService.Recommend(ctx.Request.Context(), currentUserID(ctx), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}
