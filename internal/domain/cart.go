package domain

// CartLineKey uniquely identifies one priced line staged for submission.
// The engine never creates two lines with the same key.
type CartLineKey struct {
	ServiceID   int64
	PetID       int64
	VariantName string
}

// CartLine is one priced service+pet+variant combination.
// Price is resolved at add time and never recomputed afterwards, so a
// reference-data change mid-session cannot silently reprice a committed line.
type CartLine struct {
	ServiceID   int64
	PetID       int64
	VariantName string
	ServiceName string
	Price       float64
}

// Key returns the identity tuple of the line
func (l *CartLine) Key() CartLineKey {
	return CartLineKey{
		ServiceID:   l.ServiceID,
		PetID:       l.PetID,
		VariantName: l.VariantName,
	}
}
