package controller

import (
	"errors"

	"quizcraft_backend/internal/service"
	"quizcraft_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController 管理端的测验增删改查，全部挂在认证路由组下
type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// List godoc
// @Summary 测验列表
// @Description 管理端测验列表，附带题目数和答题数
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.QuizListRow} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/admin/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	rows, err := c.QuizService.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Detail godoc
// @Summary 测验详情
// @Description 管理端测验详情，题目携带正确答案
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [get]
func (c *QuizController) Detail(ctx *gin.Context) {
	detail, err := c.QuizService.GetDetail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Create godoc
// @Summary 新建测验
// @Description 新建测验并写入题目列表
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SaveQuizRequest true "测验内容"
// @Success 201 {object} util.Response{data=service.QuizDetail} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.SaveQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.QuizService.CreateQuiz(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestionType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, detail)
}

// Save godoc
// @Summary 保存测验
// @Description 更新测验元信息并全量保存题目列表，编辑器每次保存调用
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.SaveQuizRequest true "测验内容"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) Save(ctx *gin.Context) {
	var req service.SaveQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.QuizService.SaveQuiz(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Delete godoc
// @Summary 删除测验
// @Description 删除测验及其题目和答题记录
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuiz(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
