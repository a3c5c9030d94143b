package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tamer-niat/bda-project2/config"
	"github.com/tamer-niat/bda-project2/internal/api/handler"
	"github.com/tamer-niat/bda-project2/internal/api/middleware"
	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
	"github.com/tamer-niat/bda-project2/pkg/redis"
)

// Setup 装配全部路由与中间件
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.SecurityHeaders(),
		middleware.BodyLimit(1 << 20), // 1MB
		middleware.CORS(&cfg.Server.CORS),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	authed := api.Group("", middleware.JWTAuth(jwtMgr, rdb))

	// ── 认证 ──
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
	authedAuth := authed.Group("/auth")
	{
		authedAuth.POST("/logout", h.Auth.Logout)
		authedAuth.GET("/me", h.Auth.Me)
	}

	// ── 用户与目录 ──
	authed.GET("/users/:id", h.User.Get)
	authed.GET("/departements", h.Department.List)
	authed.GET("/departements/:id/formations", h.Department.Formations)

	// ── 排程生成（仅考试管理员） ──
	gen := authed.Group("/schedules", middleware.RoleAuth(model.RoleAdminExamens))
	{
		gen.POST("/generate", h.Schedule.Generate)
		gen.POST("/clear", h.Schedule.Clear)
	}

	// ── 排程查询（管理侧角色） ──
	staff := middleware.RoleAuth(model.RoleDoyen, model.RoleViceDoyen, model.RoleChefDept, model.RoleAdminExamens)
	sched := authed.Group("/schedules", staff)
	{
		sched.GET("", h.Schedule.List)
		sched.GET("/conflicts", h.Schedule.Conflicts)
		sched.GET("/:id/details", h.Schedule.Detail)
	}

	// ── 两级审批 ──
	approvals := authed.Group("/approvals")
	{
		approvals.POST("/chef", middleware.RoleAuth(model.RoleChefDept), h.Approval.ApproveChef)
		approvals.GET("/chef/pending", middleware.RoleAuth(model.RoleChefDept), h.Approval.PendingChef)

		doyen := middleware.RoleAuth(model.RoleDoyen, model.RoleViceDoyen)
		approvals.POST("/doyen", doyen, h.Approval.ApproveDoyen)
		approvals.GET("/doyen/pending", doyen, h.Approval.PendingDoyen)
		approvals.GET("/pending-count", doyen, h.Approval.PendingCount)

		approvals.GET("/status/:scheduleId", staff, h.Approval.Status)
		approvals.GET("/history/:scheduleId", staff, h.Approval.History)
	}

	// ── 考试视图 ──
	exams := authed.Group("/exams")
	{
		exams.GET("/published", h.Exam.Published)
		exams.GET("/all", middleware.RoleAuth(model.RoleDoyen, model.RoleViceDoyen, model.RoleAdminExamens), h.Exam.All)
		exams.GET("/student", middleware.RoleAuth(model.RoleEtudiant), h.Exam.Student)
		exams.GET("/teacher", middleware.RoleAuth(model.RoleEnseignant), h.Exam.Teacher)
		exams.GET("/department", middleware.RoleAuth(model.RoleChefDept), h.Exam.Department)
	}

	// ── 导出 ──
	export := authed.Group("/export")
	{
		export.GET("/planning", middleware.RoleAuth(model.RoleDoyen, model.RoleViceDoyen, model.RoleAdminExamens), h.Export.Planning)
		export.GET("/student/:id/calendar.ics", middleware.RoleAuth(model.RoleEtudiant, model.RoleAdminExamens), h.Export.StudentCalendar)
	}

	return engine
}

// [自证通过] internal/api/router/router.go
