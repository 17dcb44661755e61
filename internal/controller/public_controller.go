package controller

import (
	"errors"

	"quizcraft_backend/internal/service"
	"quizcraft_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PublicController 面向答题者的公开接口，不需要登录
type PublicController struct {
	QuizService     *service.QuizService
	ResponseService *service.ResponseService
}

func NewPublicController(quizService *service.QuizService, responseService *service.ResponseService) *PublicController {
	return &PublicController{
		QuizService:     quizService,
		ResponseService: responseService,
	}
}

// ListActive godoc
// @Summary 可参加的测验列表
// @Description 仅返回已激活的测验，支持标题/描述模糊搜索
// @Tags 答题
// @Produce  json
// @Param   search query string false "搜索词"
// @Success 200 {object} util.Response{data=[]model.Quiz} "成功"
// @Router /api/quizzes [get]
func (c *PublicController) ListActive(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListActive(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary 获取测验题目
// @Description 按 UUID 或 slug 获取测验，题目不含正确答案
// @Tags 答题
// @Produce  json
// @Param   ref path string true "测验ID或slug"
// @Success 200 {object} util.Response{data=service.PublicQuizDetail} "成功"
// @Failure 404 {object} util.Response "测验不存在或未激活"
// @Router /api/quizzes/{ref} [get]
func (c *PublicController) GetQuiz(ctx *gin.Context) {
	detail, err := c.QuizService.GetPublicDetail(ctx.Param("ref"))
	if err != nil {
		switch {
		// 未激活的测验对外表现为不存在，避免暴露其存在性
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuizInactive):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Submit godoc
// @Summary 提交答卷
// @Description 评分并记录一次答题，返回总分和逐题结论
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   ref path string true "测验ID或slug"
// @Param   body body service.SubmitRequest true "作答内容"
// @Success 201 {object} util.Response{data=service.SubmitResult} "提交成功"
// @Failure 400 {object} util.Response "缺少姓名或参数错误"
// @Failure 404 {object} util.Response "测验不存在或未激活"
// @Router /api/quizzes/{ref}/submit [post]
func (c *PublicController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ResponseService.Submit(ctx.Param("ref"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNameRequired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuizInactive):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}
