package get_available_slots

import (
	"context"

	queryAvailability "github.com/pawcare/PC-BookingWizard/internal/usecase/query_availability"
)

type QueryAvailabilityUseCase interface {
	Execute(ctx context.Context, req *queryAvailability.Request) (*queryAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
