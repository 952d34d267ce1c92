package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("ELASTICSEARCH_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.ElasticsearchEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "one day")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "tasks", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/tasks?sslmode=disable", c.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
	assert.Empty(t, c.ESAddrs())
}

func TestLoad_TrustProxyHeaders(t *testing.T) {
	t.Setenv("TRUST_PROXY_HEADERS", "")
	assert.False(t, Load().TrustProxyHeaders)

	t.Setenv("TRUST_PROXY_HEADERS", "true")
	assert.True(t, Load().TrustProxyHeaders)
}
