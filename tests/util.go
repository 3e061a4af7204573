package testutil

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/session"
	"github.com/trezcool/phoebuz/core/study"
	logsvc "github.com/trezcool/phoebuz/services/logger"
)

// NewConfig returns the configuration tests run with.
func NewConfig() *core.Config {
	return &core.Config{
		Env:             "TEST",
		TestMode:        true,
		AppName:         "Phoebuz",
		SecretKey:       "test-secret",
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			Host:              "localhost",
			JWTExpiration:     time.Hour,
			RemindersSchedule: "0 7 * * *",
		},
		Database: core.DatabaseConfig{InMemory: true},
	}
}

// NewLogger returns a logger that reports nowhere.
func NewLogger() *logsvc.RollbarLogger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), NewConfig())
}

// NewValidator returns a validator with every custom validation registered.
func NewValidator() *validator.Validate {
	validate, _ := NewTranslatedValidator()
	return validate
}

// NewTranslatedValidator is NewValidator plus the translator its error messages are registered on.
func NewTranslatedValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	study.InitValidators(validate, translator)
	return validate, translator
}

// SignIn signs id in on sess, creating the session if nil.
func SignIn(t *testing.T, sess *session.Session, id string) *session.Session {
	t.Helper()
	if sess == nil {
		sess = session.New()
	}
	sess.SetIdentity(context.Background(), session.Identity{ID: id, Email: id + "@example.com"})
	return sess
}

func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func BoolPtr(b bool) *bool { return &b }

func DatePtr(d core.Date) *core.Date { return &d }
