package query_availability

import (
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

// SessionManager интерфейс реестра сессий
type SessionManager interface {
	Get(sessionID string, customerID int64) (*session.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
