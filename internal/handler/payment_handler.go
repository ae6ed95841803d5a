package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fms/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	escrowLogic  *logic.EscrowLogic
	paymentLogic *logic.PaymentLogic
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{
		escrowLogic:  logic.NewEscrowLogic(db),
		paymentLogic: logic.NewPaymentLogic(db),
	}
}

// Escrow 项目方为成员合约预存资金
func (h *PaymentHandler) Escrow(c *gin.Context) {
	memberProjectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的成员合约ID")
		return
	}

	var req EscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.escrowLogic.Escrow(memberProjectId, req.OwnerId, req.Amount); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "预存成功", nil)
}

// PayForMember 结算成员当前阶段
func (h *PaymentHandler) PayForMember(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	freelancerId, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.paymentLogic.PayForMember(projectId, freelancerId, req.OwnerId); err != nil {
		BusinessError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "结算成功", nil)
}
