package set_pet

import (
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

type SessionManager interface {
	Get(sessionID string, customerID int64) (*session.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
