package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "HTTP_PORT", "JWT_EXPIRATION_MINUTES", "APP_NAME"} {
		t.Setenv(k, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Equal(t, "process-hub", cfg.App.Name)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.APIURL)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MONGODB_URL_TASK_MANAGER", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME_TASK_MANAGER", "hub")
	t.Setenv("HTTP_PORT", "4000")
	t.Setenv("AIRTABLE_SECRET_TOKEN", "tok")
	t.Setenv("AIRTABLE_BASE_ID", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMongo, cfg.Store.Driver)
	assert.True(t, cfg.StoreConfigured())
	assert.Equal(t, "0.0.0.0:4000", cfg.HTTP.Addr())
	assert.False(t, cfg.Airtable.Configured(), "faltan base y tabla")
}

func TestStoreConfigured(t *testing.T) {
	pg := &config.Config{Store: config.StoreConfig{Driver: config.StorePostgres}}
	assert.False(t, pg.StoreConfigured())
	pg.DB.DatabaseURL = "postgres://u:p@h/db"
	assert.True(t, pg.StoreConfigured())

	mem := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}
	assert.True(t, mem.StoreConfigured())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "hub", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/hub?sslmode=disable", c.DSN())
}
