package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg := Default()
	s.Equal(3*time.Second, cfg.Verification.PollInterval)
	s.Equal(24*time.Hour, cfg.Storage.MaxAge)
	s.Equal("casl_", cfg.Storage.Prefix)
	s.Equal(StorageMemory, cfg.Storage.Backend)
	s.NoError(cfg.Validate())
}

func (s *ConfigSuite) TestEnvOverrides() {
	env := map[string]string{
		"CASL_POLL_INTERVAL":       "500ms",
		"CASL_STORAGE_PREFIX":      "tenant_a_",
		"CASL_ALLOWED_IMAGE_TYPES": "image/png, image/jpeg",
		"CASL_API_TIMEOUT":         "not-a-duration",
	}
	cfg := Default()
	applyEnv(&cfg, func(k string) string { return env[k] })

	s.Equal(500*time.Millisecond, cfg.Verification.PollInterval)
	s.Equal("tenant_a_", cfg.Storage.Prefix)
	s.Equal([]string{"image/png", "image/jpeg"}, cfg.Verification.AllowedImageTypes)
	s.Equal(10*time.Second, cfg.API.Timeout, "unparsable durations keep the default")
}

func (s *ConfigSuite) TestLoadFile() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "caslkey.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
server:
  addr: ":9090"
storage:
  backend: redis
redis:
  url: redis://localhost:6379/0
verification:
  poll_interval: 1s
`), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(":9090", cfg.Server.Addr)
	s.Equal(StorageRedis, cfg.Storage.Backend)
	s.Equal(time.Second, cfg.Verification.PollInterval)
	s.Equal(24*time.Hour, cfg.Storage.MaxAge, "unset keys keep defaults")
}

func (s *ConfigSuite) TestValidate() {
	s.Run("redis backend needs url", func() {
		cfg := Default()
		cfg.Storage.Backend = StorageRedis
		s.Error(cfg.Validate())
	})

	s.Run("postgres backend needs database url", func() {
		cfg := Default()
		cfg.Storage.Backend = StoragePostgres
		s.Error(cfg.Validate())
	})

	s.Run("unknown backend", func() {
		cfg := Default()
		cfg.Storage.Backend = "sqlite"
		s.Error(cfg.Validate())
	})
}
