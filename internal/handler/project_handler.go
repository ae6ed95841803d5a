package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fms/internal/logic"
	"github.com/blues/fms/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project := model.ProjectModel{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		OwnerId:     req.OwnerId,
	}

	if err := h.projectLogic.CreateProject(&project); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", project)
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", project)
}

// GetOverviewProgress 获取项目整体进度
func (h *ProjectHandler) GetOverviewProgress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	overview, err := h.projectLogic.GetOverviewProgress(id)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", overview)
}

// CreateMemberProject 接受成员加入项目
func (h *ProjectHandler) CreateMemberProject(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req CreateMemberProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	mp := model.MemberProjectModel{
		UserId:         req.UserId,
		ProjectId:      projectId,
		Salary:         req.Salary,
		DateToComplete: req.DateToComplete,
	}
	for _, item := range req.Milestones {
		mp.Milestones = append(mp.Milestones, model.MilestoneModel{
			SequenceNo: item.SequenceNo,
			Salary:     item.Salary,
			DayToDone:  item.DayToDone,
		})
	}

	if err := h.projectLogic.CreateMemberProject(&mp); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "成员合约创建成功", mp)
}

// GetMemberProject 获取成员合约详情和当前阶段
func (h *ProjectHandler) GetMemberProject(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	userId, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	mp, phase, err := h.projectLogic.GetMemberProject(projectId, userId)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", MemberProjectResponse{
		MemberProject: mp,
		CurrentPhase:  phase,
	})
}

// UpdatePhaseStatus 推进成员当前阶段状态
func (h *ProjectHandler) UpdatePhaseStatus(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	userId, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	var req UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectLogic.UpdatePhaseStatus(projectId, userId, req.Status); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "阶段状态已更新", nil)
}
