package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestResultController struct {
	ResultService *service.TestResultService
}

func NewTestResultController(resultService *service.TestResultService) *TestResultController {
	return &TestResultController{ResultService: resultService}
}

// @Summary 提交答卷
// @Description 判分并保存成绩，未作答的题目按错误计
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param testId path int true "测试ID"
// @Param body body service.SubmissionReq true "答卷"
// @Success 201 {object} util.Response{data=model.TestResult}
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/results/{testId} [post]
func (c *TestResultController) Submit(ctx *gin.Context) {
	testID, ok := pathID(ctx, "testId")
	if !ok {
		return
	}
	var req service.SubmissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ResultService.SubmitResult(ctx.Request.Context(), testID, currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 我的成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TestResult}
// @Router /api/results [get]
func (c *TestResultController) ListMine(ctx *gin.Context) {
	results, err := c.ResultService.ListMyResults(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 我在某测试上的成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param testId path int true "测试ID"
// @Success 200 {object} util.Response{data=[]model.TestResult}
// @Router /api/results/{testId} [get]
func (c *TestResultController) ListMineForTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "testId")
	if !ok {
		return
	}
	results, err := c.ResultService.ListMyResultsForTest(ctx.Request.Context(), currentUserID(ctx), testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 某测试的全部成绩（管理员）
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param testId path int true "测试ID"
// @Success 200 {object} util.Response{data=[]model.TestResult}
// @Router /api/results/admin/{testId} [get]
func (c *TestResultController) ListForTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "testId")
	if !ok {
		return
	}
	results, err := c.ResultService.ListResultsForTest(ctx.Request.Context(), testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
