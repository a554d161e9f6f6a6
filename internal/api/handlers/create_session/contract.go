package create_session

import (
	"context"

	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

type SessionManager interface {
	Create(ctx context.Context, customerID int64, preselectedServiceID *int64) (*session.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
