package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "PORT", "STORAGE_BACKEND", "MONGO_URI", "MLAB_URI", "MONGO_DATABASE", "CORS_ALLOWED_ORIGINS", "HTTP_READ_TIMEOUT"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, ":3000", c.Addr())
	assert.Equal(t, "mongo", c.DBType)
	assert.Equal(t, "mongodb://localhost/exercise-track", c.MongoURI)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, 10*time.Second, c.ReadTimeout)
}

func TestFromEnvMlabFallback(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MLAB_URI", "mongodb://db.example:27017/tracker")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.example:27017/tracker", c.MongoURI)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("HTTP_WRITE_TIMEOUT", "3s")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8088", c.Port)
	assert.Equal(t, "file", c.DBType)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins)
	assert.Equal(t, 3*time.Second, c.WriteTimeout)
}

func TestFromEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("HTTP_IDLE_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Env: "production", Port: "80", DBType: "file", UsersFile: "u.json", ExercisesFile: "e.json"}
	assert.NoError(t, valid.Validate())

	c := valid
	c.DBType = "postgres"
	assert.Error(t, c.Validate())
	c.PostgresDSN = "postgres://localhost/db"
	assert.NoError(t, c.Validate())

	c = valid
	c.DBType = "redis"
	assert.Error(t, c.Validate())

	c = valid
	c.Env = "qa"
	assert.Error(t, c.Validate())

	c = valid
	c.ExercisesFile = ""
	assert.Error(t, c.Validate())
}
