package core

import (
	"log"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DBEngineMongo  = "mongodb"
	DBEngineMemory = "memory"
)

type (
	Config struct {
		Env              string
		Debug            bool
		AppName          string
		Build            string
		SecretKey        string
		JWTExpiration    time.Duration
		RollbarToken     string
		SendgridApiKey   string
		DefaultFromEmail mail.Address

		Server   ServerConfig
		Database DatabaseConfig
		Stripe   StripeConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
		AllowedOrigins  []string
	}

	DatabaseConfig struct {
		Engine   string
		URI      string
		User     string
		Password string
		Host     string
		Name     string
	}

	StripeConfig struct {
		SecretKey string
		Currency  string
	}
)

// Address returns the address the API server listens on.
func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// ConnectionURI returns the explicit URI if set, otherwise builds an Atlas SRV URI from the credentials.
func (c DatabaseConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	q := make(url.Values)
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host,
		Path:     "/",
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }
func (c *Config) IsTest() bool       { return c.Env == EnvTest }

// NewConfig loads `.env` (if present) and reads the configuration from the environment.
func NewConfig() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("config.godotenv: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(.env): %v", err)
	}
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("appName", "SkillSpring")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "dev-secret-change-me")
	v.SetDefault("jwtExpirationDelta", 10*24*time.Hour)
	v.SetDefault("defaultFromEmail", "SkillSpring <noreply@skillspring.dev>")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "4002")
	v.SetDefault("server.debugHost", "localhost:4010")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.allowedOrigins", "http://localhost:5173,https://skill-spring25.netlify.app")
	v.SetDefault("database.engine", DBEngineMongo)
	v.SetDefault("database.host", "cluster0.1aj11.mongodb.net")
	v.SetDefault("database.name", "skillSpring")
	v.SetDefault("stripe.currency", "usd")

	bind := func(key, env string) { _ = v.BindEnv(key, env) }
	bind("env", "NODE_ENV")
	bind("debug", "DEBUG")
	bind("build", "BUILD")
	bind("secretKey", "SECRET_ACCESS_TOKEN")
	bind("jwtExpirationDelta", "JWT_EXPIRATION")
	bind("rollbarToken", "ROLLBAR_TOKEN")
	bind("sendgridApiKey", "SENDGRID_API_KEY")
	bind("defaultFromEmail", "DEFAULT_FROM_EMAIL")
	bind("server.host", "HOST")
	bind("server.port", "PORT")
	bind("server.debugHost", "DEBUG_HOST")
	bind("server.shutdownTimeout", "SHUTDOWN_TIMEOUT")
	bind("server.allowedOrigins", "ALLOWED_ORIGINS")
	bind("database.engine", "DB_ENGINE")
	bind("database.uri", "MONGODB_URI")
	bind("database.user", "DB_USER")
	bind("database.password", "DB_PASS")
	bind("database.host", "DB_HOST")
	bind("database.name", "DB_NAME")
	bind("stripe.secretKey", "SECRET_KEY")
	bind("stripe.currency", "STRIPE_CURRENCY")

	env := strings.ToLower(v.GetString("env"))
	v.SetDefault("debug", env != EnvProduction)

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		SecretKey:        v.GetString("secretKey"),
		JWTExpiration:    v.GetDuration("jwtExpirationDelta"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: *from,
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			AllowedOrigins:  splitList(v.GetString("server.allowedOrigins")),
		},
		Database: DatabaseConfig{
			Engine:   strings.ToLower(v.GetString("database.engine")),
			URI:      v.GetString("database.uri"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Host:     v.GetString("database.host"),
			Name:     v.GetString("database.name"),
		},
		Stripe: StripeConfig{
			SecretKey: v.GetString("stripe.secretKey"),
			Currency:  strings.ToLower(v.GetString("stripe.currency")),
		},
	}
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// NewTestConfig returns a deterministic configuration for tests.
func NewTestConfig() *Config {
	conf := newConfig(viper.New())
	conf.Env = EnvTest
	conf.Debug = false
	conf.SecretKey = "test-secret"
	conf.JWTExpiration = 10 * 24 * time.Hour
	conf.Database.Engine = DBEngineMemory
	conf.Stripe.Currency = "usd"
	return conf
}
