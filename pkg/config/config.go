package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/constructora-api/pkg/textnorm"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Report    ReportConfig
	Quotation QuotationConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig disco donde se guardan los adjuntos de las órdenes.
type StorageConfig struct {
	Root        string
	MaxUploadMB int
}

// ReportConfig datos de cabecera de los reportes.
type ReportConfig struct {
	CompanyName string
	CompanyRUC  string
	Timezone    string
}

// QuotationConfig precios unitarios estimados por palabra clave del nombre del producto.
// Solo lo usa la cotización PDF heredada.
type QuotationConfig struct {
	Keywords        []string                   // en el orden declarado
	EstimatedPrices map[string]decimal.Decimal // clave normalizada con textnorm.Fold
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, STORAGE_ROOT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	quotation, err := ParseQuotationPrices(getString(v, "QUOTATION_PRICES", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "constructora-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "constructora"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "constructora-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 25),
		},
		Storage: StorageConfig{
			Root:        getString(v, "STORAGE_ROOT", "./storage"),
			MaxUploadMB: getInt(v, "STORAGE_MAX_UPLOAD_MB", 10),
		},
		Report: ReportConfig{
			CompanyName: getString(v, "REPORT_COMPANY_NAME", "Constructora"),
			CompanyRUC:  getString(v, "REPORT_COMPANY_RUC", ""),
			Timezone:    getString(v, "REPORT_TIMEZONE", "America/Lima"),
		},
		Quotation: quotation,
	}

	return cfg, nil
}

// ParseQuotationPrices interpreta "cemento=28.50;fierro=45" en un mapa de precios.
// Entradas vacías se ignoran; un precio inválido es error.
func ParseQuotationPrices(raw string) (QuotationConfig, error) {
	q := QuotationConfig{EstimatedPrices: map[string]decimal.Decimal{}}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		key = textnorm.Fold(key)
		if !ok || key == "" {
			return QuotationConfig{}, fmt.Errorf("config: QUOTATION_PRICES entrada inválida %q", entry)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return QuotationConfig{}, fmt.Errorf("config: QUOTATION_PRICES precio inválido para %q: %w", key, err)
		}
		if _, dup := q.EstimatedPrices[key]; !dup {
			q.Keywords = append(q.Keywords, key)
		}
		q.EstimatedPrices[key] = price
	}
	return q, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
