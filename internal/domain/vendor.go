package domain

type Role string

const (
	RoleGuest    Role = "guest"
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Identity is the per-request view of an authenticated caller.
// It carries only what the gate needs; raw credential claims never leave
// the auth layer.
type Identity struct {
	UserID int64
	Role   Role
	Email  string
}

type BusinessType string

const (
	BusinessHotel     BusinessType = "hotel"
	BusinessActivity  BusinessType = "activity"
	BusinessTransport BusinessType = "transport"
	BusinessRental    BusinessType = "rental"
)

// VendorProfile links an identity to seller capabilities. Created at
// onboarding, read-only to the access gate.
type VendorProfile struct {
	ID           int64
	UserID       int64
	BusinessName string
	BusinessType BusinessType
	Verified     bool
}
