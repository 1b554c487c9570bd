package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "planner"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "studyplan"
	cfg.Database.MaxOpenConns = 8
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "15m"
	return cfg
}

func TestPoolConfig(t *testing.T) {
	pc, err := PoolConfig(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "studyplan", pc.ConnConfig.Database)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, healthCheckPeriod, pc.HealthCheckPeriod)
}

func TestPoolConfigIgnoresIdleAboveMax(t *testing.T) {
	cfg := testConfig()
	cfg.Database.MaxIdleConns = 20

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestPoolConfigRejectsBadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"

	_, err := PoolConfig(cfg)
	assert.ErrorContains(t, err, "connection max lifetime")
}
