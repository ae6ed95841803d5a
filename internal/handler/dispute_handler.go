package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fms/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DisputeHandler struct {
	disputeLogic *logic.DisputeLogic
}

func NewDisputeHandler(db *gorm.DB) *DisputeHandler {
	return &DisputeHandler{
		disputeLogic: logic.NewDisputeLogic(db),
	}
}

// OpenDispute 开启纠纷并冻结当前阶段
func (h *DisputeHandler) OpenDispute(c *gin.Context) {
	var req OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	dispute, err := h.disputeLogic.OpenDispute(req.ProjectId, req.FreelancerId, req.ReporterId, req.Reason)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "纠纷已创建", dispute)
}

// ResolveDispute 解决纠纷
func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的纠纷ID")
		return
	}

	if err := h.disputeLogic.ResolveDispute(id); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "纠纷已解决", nil)
}

// GetProjectDisputes 获取项目纠纷列表
func (h *DisputeHandler) GetProjectDisputes(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	disputes, err := h.disputeLogic.GetProjectDisputes(projectId)
	if err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", disputes)
}
