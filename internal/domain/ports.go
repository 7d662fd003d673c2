package domain

import "context"

type MarketRepository interface {
	// Gate lookups
	GetVendorByUserID(ctx context.Context, userID int64) (VendorProfile, error)
	GetService(ctx context.Context, id int64) (Service, error)
	GetRoomType(ctx context.Context, id int64) (RoomType, error)

	// Vendor mutations (callers must have passed the access gate)
	CreateService(ctx context.Context, s Service) (int64, error)
	UpdateService(ctx context.Context, s Service) error
	DeleteService(ctx context.Context, id int64) error
	SetServiceActive(ctx context.Context, id int64, active bool) error
	CreateRoomType(ctx context.Context, rt RoomType) (int64, error)
	UpdateRoomType(ctx context.Context, rt RoomType) error
	DeleteRoomType(ctx context.Context, id int64) error
	SetRoomTypeActive(ctx context.Context, id int64, active bool) error

	// Media audit trail (best-effort)
	LogUpload(ctx context.Context, rec UploadRecord) error

	// Public reads
	GetHotelView(ctx context.Context, id int64) (HotelView, error)
	ListServices(ctx context.Context, q ServicesQuery) ([]ServiceSummary, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type HotelView struct {
	ID          int64
	Name        string
	Description *string
	Price       *float64
	Images      []string
	Rooms       []RoomType
}

type ServiceSummary struct {
	ID       int64
	Type     BusinessType
	Name     string
	Price    *float64
	IsActive bool
}

type ServicesQuery struct {
	Type  *BusinessType
	Limit int
}
