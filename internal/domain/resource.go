package domain

// Service is any sellable resource a vendor lists: a hotel, an activity,
// a transport or rental offering. Hotels are services of type "hotel" and
// may own room types.
type Service struct {
	ID          int64
	VendorID    int64
	Type        BusinessType
	Name        string
	Description *string
	Price       *float64
	IsActive    bool
	Images      []string
	DetailsJSON []byte // free-form type-specific payload
}

// RoomType belongs to a parent hotel service. It deliberately carries no
// vendor column: its owner is always the parent hotel's owner, re-derived
// on every access check.
type RoomType struct {
	ID        int64
	HotelID   int64
	Name      string
	Capacity  *int
	BasePrice *float64
	IsActive  bool
	Images    []string
}

// UploadRecord is the audit row written after a successful media write.
type UploadRecord struct {
	VendorID    int64
	Category    string
	ParentID    string
	Path        string
	PublicURL   string
	ContentType string
	SizeBytes   int64
}
