package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all the settings the application needs. It is loaded once at
// startup and passed down explicitly; nothing reads the environment after that.
type Config struct {
	Env       string
	Debug     bool
	TestMode  bool
	AppName   string
	SecretKey string
	Build     string

	Server struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	SchoolAPI struct {
		BaseURL       string
		Timeout       time.Duration
		LogoutTimeout time.Duration
	}

	Session struct {
		// Store is one of "inmem", "redis" or "postgres".
		Store      string
		CookieName string
		TTL        time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	RollbarToken string
}

func (c *Config) IsDev() bool { return c.Env == "DEV" }

func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) DatabaseAddress() string {
	return fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
}

// NewConfig loads the configuration for the current environment; ENV is one
// of DEV (local; default), TEST, QA, PROD. A config/.env.<env> file is loaded
// if it exists and environment variables (prefixed with ENV) override everything.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "SMS")
	v.SetDefault("secretKey", "q2jf(7#21b&%+p0d^ye!5$vz@8_k4m*x9c3wlaunh6rgsoti")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdownTimeout", 20*time.Second)
	v.SetDefault("schoolApi.baseUrl", "http://localhost/api")
	v.SetDefault("schoolApi.timeout", 15*time.Second)
	v.SetDefault("schoolApi.logoutTimeout", 3*time.Second)
	v.SetDefault("session.store", "inmem")
	v.SetDefault("session.cookieName", "sms_session")
	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "sms")
	v.SetDefault("database.user", "sms")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.disableTls", true)
	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("env", env)
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	conf.Env = env
	conf.Debug = v.GetBool("debug")
	conf.TestMode = v.GetBool("testMode")
	conf.AppName = v.GetString("appName")
	conf.SecretKey = v.GetString("secretKey")
	conf.Build = v.GetString("build")
	conf.Server.Host = v.GetString("server.host")
	conf.Server.Port = v.GetInt("server.port")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.SchoolAPI.BaseURL = v.GetString("schoolApi.baseUrl")
	conf.SchoolAPI.Timeout = v.GetDuration("schoolApi.timeout")
	conf.SchoolAPI.LogoutTimeout = v.GetDuration("schoolApi.logoutTimeout")
	conf.Session.Store = v.GetString("session.store")
	conf.Session.CookieName = v.GetString("session.cookieName")
	conf.Session.TTL = v.GetDuration("session.ttl")
	conf.Redis.Addr = v.GetString("redis.addr")
	conf.Redis.Password = v.GetString("redis.password")
	conf.Redis.DB = v.GetInt("redis.db")
	conf.Database.Engine = v.GetString("database.engine")
	conf.Database.Name = v.GetString("database.name")
	conf.Database.User = v.GetString("database.user")
	conf.Database.Password = v.GetString("database.password")
	conf.Database.AdminUser = v.GetString("database.adminUser")
	conf.Database.AdminPassword = v.GetString("database.adminPassword")
	conf.Database.Host = v.GetString("database.host")
	conf.Database.Port = v.GetInt("database.port")
	conf.Database.DisableTLS = v.GetBool("database.disableTls")
	conf.RollbarToken = v.GetString("rollbarToken")
	return conf
}
