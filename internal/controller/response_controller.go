package controller

import (
	"errors"
	"strconv"

	"quizcraft_backend/internal/service"
	"quizcraft_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ResponseController 管理端的答题记录复查
type ResponseController struct {
	ResponseService *service.ResponseService
}

func NewResponseController(responseService *service.ResponseService) *ResponseController {
	return &ResponseController{ResponseService: responseService}
}

// List godoc
// @Summary 答题记录列表
// @Description 按测验过滤、按答题人姓名模糊搜索，分页返回
// @Tags 答题记录
// @Produce  json
// @Security ApiKeyAuth
// @Param   quiz_id query string false "测验ID"
// @Param   name query string false "答题人姓名"
// @Param   page query int false "页码，从1开始"
// @Param   limit query int false "每页条数，默认20"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/responses [get]
func (c *ResponseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	rows, total, err := c.ResponseService.List(ctx.Query("quiz_id"), ctx.Query("name"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"items": rows,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Detail godoc
// @Summary 答题记录详情
// @Description 逐题展示当时的作答和判分结论
// @Tags 答题记录
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=service.ResponseDetail} "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/admin/responses/{id} [get]
func (c *ResponseController) Detail(ctx *gin.Context) {
	detail, err := c.ResponseService.Detail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResponseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}
