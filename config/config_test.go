package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望 port=8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际=%s", cfg.Log.Level)
	}
	if cfg.Auth.TokenTTL != 720*time.Hour {
		t.Errorf("期望 token_ttl=720h，实际=%s", cfg.Auth.TokenTTL)
	}
	if cfg.RateLimit.WritesPerMinute != 60 {
		t.Errorf("期望 writes_per_minute=60，实际=%d", cfg.RateLimit.WritesPerMinute)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("COSMOPORT_SERVER_PORT", "9090")
	cfg, err := Load(writeConfig(t, "server:\n  port: 8081\n"))
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望环境变量覆盖 port=9090，实际=%d", cfg.Server.Port)
	}
}

func TestLoad_AuthRequiresSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "auth:\n  enabled: true\n  jwt_secret: short\n"))
	if err == nil {
		t.Fatal("启用认证但密钥过短时应失败")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "cosmoport", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db port=5432 user=u password=p dbname=cosmoport sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN 不符:\n期望 %s\n实际 %s", want, got)
	}
}
