package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	MasterData MasterDataConfig
	Export     ExportConfig
	Operators  []OperatorConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL (opcional: catálogo y registro de exportaciones).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Enabled     bool
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Orígenes válidos de MASTER_DATA_SOURCE.
const (
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// MasterDataConfig origen del cadastro de produtos: planilla base.xlsx o PostgreSQL.
type MasterDataConfig struct {
	Source string // xlsx | postgres
	File   string
}

// ExportConfig códigos fijos de la organización y carpeta de salida de las planillas.
type ExportConfig struct {
	Dir           string
	CompanyCode   string
	BranchCode    string
	WarehouseCode string
}

// OperatorConfig credenciales de un operador de conteo (hash bcrypt, nunca texto plano).
type OperatorConfig struct {
	Username     string
	Role         string
	PasswordHash string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, MASTER_DATA_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya preparada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-conteo"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Enabled:     getBool(v, "DB_ENABLED", false),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_conteo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-conteo"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		MasterData: MasterDataConfig{
			Source: strings.ToLower(getString(v, "MASTER_DATA_SOURCE", SourceXLSX)),
			File:   getString(v, "MASTER_DATA_FILE", "base.xlsx"),
		},
		Export: ExportConfig{
			Dir:           getString(v, "EXPORT_DIR", "."),
			CompanyCode:   getString(v, "COMPANY_CODE", "1010"),
			BranchCode:    getString(v, "BRANCH_CODE", "M016"),
			WarehouseCode: getString(v, "WAREHOUSE_CODE", "GM01"),
		},
	}

	ops, err := parseOperators(getString(v, "OPERATORS", ""))
	if err != nil {
		return nil, err
	}
	cfg.Operators = ops

	switch cfg.MasterData.Source {
	case SourceXLSX, SourcePostgres:
	default:
		return nil, fmt.Errorf("MASTER_DATA_SOURCE inválido: %q", cfg.MasterData.Source)
	}
	if cfg.MasterData.Source == SourcePostgres && !cfg.DB.Enabled {
		return nil, fmt.Errorf("MASTER_DATA_SOURCE=postgres requiere DB_ENABLED=true")
	}
	return cfg, nil
}

// parseOperators interpreta "usuario:rol:hash;usuario2:rol:hash".
// El hash bcrypt contiene '$' pero nunca ':' ni ';'.
func parseOperators(raw string) ([]OperatorConfig, error) {
	var ops []OperatorConfig
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("OPERATORS: entrada inválida %q (formato usuario:rol:hash)", entry)
		}
		ops = append(ops, OperatorConfig{
			Username:     strings.TrimSpace(parts[0]),
			Role:         strings.TrimSpace(parts[1]),
			PasswordHash: strings.TrimSpace(parts[2]),
		})
	}
	return ops, nil
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
