package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotationPrices(t *testing.T) {
	q, err := ParseQuotationPrices("Cemento=28.50; fierro = 45 ;; Ladrillo King Kóng=0.85")
	require.NoError(t, err)

	assert.Equal(t, []string{"cemento", "fierro", "ladrillo king kong"}, q.Keywords)
	assert.True(t, decimal.RequireFromString("28.50").Equal(q.EstimatedPrices["cemento"]))
	assert.True(t, decimal.NewFromInt(45).Equal(q.EstimatedPrices["fierro"]))
	assert.True(t, decimal.RequireFromString("0.85").Equal(q.EstimatedPrices["ladrillo king kong"]))
}

func TestParseQuotationPrices_Empty(t *testing.T) {
	q, err := ParseQuotationPrices("")
	require.NoError(t, err)
	assert.Empty(t, q.Keywords)
	assert.NotNil(t, q.EstimatedPrices)
}

func TestParseQuotationPrices_Invalid(t *testing.T) {
	_, err := ParseQuotationPrices("cemento")
	assert.Error(t, err, "sin '=' debe fallar")

	_, err = ParseQuotationPrices("cemento=abc")
	assert.Error(t, err, "precio no numérico debe fallar")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.interno")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("STORAGE_ROOT", "/var/constructora")
	t.Setenv("QUOTATION_PRICES", "arena=60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "/var/constructora", cfg.Storage.Root)
	assert.Contains(t, cfg.DB.DSN(), "db.interno:6543")
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword", "la contraseña debe ir codificada")
	assert.Equal(t, []string{"arena"}, cfg.Quotation.Keywords)
	assert.Equal(t, "America/Lima", cfg.Report.Timezone)
}

func TestDBConfig_ConnectionStringPrefersURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@h:1/db", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/db", c.ConnectionString())
}
