package domain

// Selection limits
const (
	// MaxServicesPerBooking caps the number of services in one booking.
	// Toggling a service on beyond the cap is a no-op.
	MaxServicesPerBooking = 5

	MaxNotesLength = 500
)

// Default configuration values
const (
	DefaultSessionTTLMinutes    = 30
	DefaultFallbackSizeCategory = SizeMedium
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
