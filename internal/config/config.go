package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"sociopedia"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxBodyMB          int64    `env:"MAX_BODY_MB" envDefault:"30"`
	AssetsDir          string   `env:"ASSETS_DIR" envDefault:"public/assets"`
	ClientBuildDir     string   `env:"CLIENT_BUILD_DIR" envDefault:"client/build"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"10m"`
	LoginRateMax    int           `env:"LOGIN_RATE_MAX" envDefault:"10"`

	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxBodyBytes devuelve el límite de tamaño de request en bytes.
func (c *Config) MaxBodyBytes() int64 {
	if c.MaxBodyMB <= 0 {
		return 30 << 20
	}
	return c.MaxBodyMB << 20
}
