package domain

// SizeCategory is a discrete pet size classification derived from weight.
// Used to select size-dependent pricing.
type SizeCategory string

const (
	SizeToy    SizeCategory = "toy"
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
	SizeGiant  SizeCategory = "giant"
)

// AllSizeCategories is the closed set of valid size categories
var AllSizeCategories = []SizeCategory{SizeToy, SizeSmall, SizeMedium, SizeLarge, SizeGiant}

// IsValid returns true if the category belongs to the closed set
func (c SizeCategory) IsValid() bool {
	switch c {
	case SizeToy, SizeSmall, SizeMedium, SizeLarge, SizeGiant:
		return true
	}
	return false
}

// Service represents a bookable clinic service.
// Reference data: loaded once per wizard session and treated as read-only.
type Service struct {
	ID              int64
	ClinicID        int64
	Name            string
	DurationMinutes int
	BasePrice       float64

	// SizePricing maps a pet size category to a size-specific price.
	// Empty map means the service is priced flat at BasePrice.
	SizePricing map[SizeCategory]float64
}

// HasSizePricing returns true if the service carries a size-price table
func (s *Service) HasSizePricing() bool {
	return len(s.SizePricing) > 0
}

// Pet represents a customer's pet.
// Reference data: loaded once per wizard session and treated as read-only.
type Pet struct {
	ID         int64
	CustomerID int64
	Name       string
	Species    string
	Breed      string
	WeightKg   *float64
}
