package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host              string
		Addr              string
		DebugHost         string
		ShutdownTimeout   time.Duration
		JWTExpiration     time.Duration
		RemindersSchedule string // cron spec
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		InMemory      bool
		QueryTimeout  time.Duration
	}

	Config struct {
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		FrontendBaseURL  string
		RollbarToken     string
		SendgridAPIKey   string

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// NewConfig reads the app configuration from (in order of precedence)
// `<ENV>_`-prefixed environment variables, config/.env.<env> and defaults.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Phoebuz")
	v.SetDefault("secretKey", "s3e-6ov!q3tz&r1(3l@w^c9n2kpy+5v$m#0d8hx_j4b7ua*fi")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpiration", 7*24*time.Hour)
	v.SetDefault("server.remindersSchedule", "0 7 * * *")

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "phoebuz")
	v.SetDefault("database.user", "phoebuz")
	v.SetDefault("database.password", "phoebuz")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.inMemory", false)
	v.SetDefault("database.queryTimeout", 10*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("database.inMemory", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:             env,
		Build:           v.GetString("build"),
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridAPIKey:  v.GetString("sendgridAPIKey"),
		Server: ServerConfig{
			Host:              v.GetString("server.host"),
			Addr:              v.GetString("server.addr"),
			DebugHost:         v.GetString("server.debugHost"),
			ShutdownTimeout:   v.GetDuration("server.shutdownTimeout"),
			JWTExpiration:     v.GetDuration("server.jwtExpiration"),
			RemindersSchedule: v.GetString("server.remindersSchedule"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			InMemory:      v.GetBool("database.inMemory"),
			QueryTimeout:  v.GetDuration("database.queryTimeout"),
		},
	}

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatal(fmt.Errorf("config.defaultFromEmail: %v", err))
	}
	conf.DefaultFromEmail = *from
	return conf
}
