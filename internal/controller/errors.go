package controller

import (
	"assessment_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误映射为 HTTP 状态码，其余按 500 处理并记录日志
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTestNotFound):
		util.Error(ctx, http.StatusNotFound, "测试不存在")
	case errors.Is(err, util.ErrCategoryNotFound):
		util.Error(ctx, http.StatusNotFound, "分类不存在")
	case errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, "用户不存在")
	case errors.Is(err, util.ErrCategoryInUse):
		util.Conflict(ctx, "分类仍被测试引用，无法删除")
	case errors.Is(err, util.ErrCategoryNameTaken):
		util.Conflict(ctx, "分类名称已存在")
	case errors.Is(err, util.ErrUserNameTaken):
		util.Conflict(ctx, "该用户名已被注册")
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, "用户名或密码错误")
	case errors.Is(err, util.ErrUserBlocked):
		util.ForbiddenMessage(ctx, "用户已被封禁")
	case errors.Is(err, util.ErrCannotModifySelf):
		util.ForbiddenMessage(ctx, "不能封禁或删除自己的账号")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidQuestionType):
		util.BadRequest(ctx, "题型无效")
	case errors.Is(err, util.ErrBlankName):
		util.BadRequest(ctx, "名称不能为空")
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID 解析路径参数中的 ID，失败时直接返回 400
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func currentUserID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}
