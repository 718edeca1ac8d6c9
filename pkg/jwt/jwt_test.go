package jwt

import (
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// TestManager_GenerateAndParse 测试Token生成与解析
func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters!", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "reader01", "regular")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("期望过期时间%d秒，实际%d秒", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("期望UserID=42，实际%d", claims.UserID)
	}
	if claims.Username != "reader01" {
		t.Errorf("期望Username=reader01，实际%s", claims.Username)
	}
	if claims.Role != "regular" {
		t.Errorf("期望Role=regular，实际%s", claims.Role)
	}
}

// TestManager_ParseToken_WrongSecret 测试密钥不匹配
func TestManager_ParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one-abcdefghijklmnopqrstuv", time.Hour, 24*time.Hour)
	m2 := NewManager("secret-two-abcdefghijklmnopqrstuv", time.Hour, 24*time.Hour)

	pair, err := m1.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m2.ParseToken(pair.AccessToken); err != apperrors.ErrInvalidToken {
		t.Errorf("期望ErrInvalidToken，实际%v", err)
	}
}

// TestManager_ParseToken_Expired 测试过期Token
func TestManager_ParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters!", -time.Minute, 24*time.Hour)

	pair, err := m.GenerateToken(1, "reader01", "regular")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.ParseToken(pair.AccessToken); err != apperrors.ErrTokenExpired {
		t.Errorf("期望ErrTokenExpired，实际%v", err)
	}
}

// TestManager_RefreshAccessToken 测试刷新Access Token
func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters!", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "reader02", "regular")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newAccess)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("期望UserID=7，实际%d", claims.UserID)
	}
}
