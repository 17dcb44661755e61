package controller

import (
	"errors"
	"net/http"

	"quizcraft_backend/internal/service"
	"quizcraft_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ImportController 原始文本转结构化题目，结果只回传给编辑器，不入库
type ImportController struct {
	ImportService *service.ImportService
}

func NewImportController(importService *service.ImportService) *ImportController {
	return &ImportController{ImportService: importService}
}

// swagger:model ImportRequest
type ImportRequest struct {
	Text string `json:"text" binding:"required"`
}

// Import godoc
// @Summary 从原始文本导入题目
// @Description 把粘贴的原始文本交给大模型解析成题目列表，供编辑器采纳
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ImportRequest true "原始文本"
// @Success 200 {object} util.Response{data=[]service.QuestionInput} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 422 {object} util.Response "模型返回的内容不符合题目格式"
// @Failure 502 {object} util.Response "模型服务不可达或拒绝请求"
// @Router /api/admin/import [post]
func (c *ImportController) Import(ctx *gin.Context) {
	var req ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.ImportService.Parse(ctx.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAIBadSchema):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, util.ErrAIUnreachable), errors.Is(err, util.ErrAIRejected):
			util.Error(ctx, http.StatusBadGateway, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}
