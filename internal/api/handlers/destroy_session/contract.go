package destroy_session

type SessionManager interface {
	Destroy(sessionID string, customerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
