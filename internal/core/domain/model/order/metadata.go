package order

// Metadata holds the optional free-form attributes of an order as a typed
// sub-structure instead of an opaque serialized blob.
type Metadata struct {
	VehicleType   string
	ExternalRef   string
	PaymentMethod string
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Merge overlays the non-empty fields of patch onto m and returns the result.
// Fields absent from the patch keep their current value; a partial update
// never wipes unrelated metadata.
func (m Metadata) Merge(patch Metadata) Metadata {
	merged := m
	if patch.VehicleType != "" {
		merged.VehicleType = patch.VehicleType
	}
	if patch.ExternalRef != "" {
		merged.ExternalRef = patch.ExternalRef
	}
	if patch.PaymentMethod != "" {
		merged.PaymentMethod = patch.PaymentMethod
	}
	return merged
}
