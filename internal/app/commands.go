package app

import (
	"context"
	"fmt"

	"andaman_market/internal/domain"
)

// ServiceInput carries the caller-editable fields of a service resource.
type ServiceInput struct {
	Name        string
	Type        domain.BusinessType
	Description *string
	Price       *float64
	Images      []string
	DetailsJSON []byte
}

type RoomTypeInput struct {
	Name      string
	Capacity  *int
	BasePrice *float64
	Images    []string
}

// VendorService drives every mutating vendor operation through the access
// gate before any SQL runs, and evicts affected cache keys after writes.
type VendorService struct {
	repo  domain.MarketRepository
	cache domain.Cache
	gate  *AccessGate
}

func NewVendorService(repo domain.MarketRepository, cache domain.Cache, gate *AccessGate) *VendorService {
	return &VendorService{repo: repo, cache: cache, gate: gate}
}

// Me returns the caller's own vendor profile.
func (s *VendorService) Me(ctx context.Context, ident domain.Identity) (domain.VendorProfile, error) {
	prof, err := s.gate.Profile(ctx, ident)
	if err != nil {
		return domain.VendorProfile{}, err
	}
	if prof == nil {
		return domain.VendorProfile{}, domain.ErrNotFound
	}
	return *prof, nil
}

// ---- hotels ----

func (s *VendorService) CreateHotel(ctx context.Context, ident domain.Identity, in ServiceInput) (int64, error) {
	prof, err := s.gate.Profile(ctx, ident)
	if err != nil {
		return 0, err
	}
	if err := s.gate.Authorize(prof, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateService(ctx, domain.Service{
		VendorID:    prof.ID,
		Type:        domain.BusinessHotel,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		DetailsJSON: in.DetailsJSON,
		IsActive:    true,
	})
	if err != nil {
		return 0, err
	}
	s.invalidateService(ctx, domain.BusinessHotel, id)
	return id, nil
}

func (s *VendorService) UpdateHotel(ctx context.Context, ident domain.Identity, hotelID int64, in ServiceInput) error {
	own, err := s.gate.ResolveService(ctx, ident, hotelID, domain.BusinessHotel)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	svc := *own.Service
	svc.Name = in.Name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.Images = in.Images
	svc.DetailsJSON = in.DetailsJSON
	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, hotelID)
	return nil
}

func (s *VendorService) DeleteHotel(ctx context.Context, ident domain.Identity, hotelID int64) error {
	own, err := s.gate.ResolveService(ctx, ident, hotelID, domain.BusinessHotel)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	if err := s.repo.DeleteService(ctx, hotelID); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, hotelID)
	return nil
}

// SetHotelActive toggles visibility. Verification is deliberately not
// required here: unverified vendors keep control over whether existing
// listings are shown, and nothing else.
func (s *VendorService) SetHotelActive(ctx context.Context, ident domain.Identity, hotelID int64, active bool) error {
	own, err := s.gate.ResolveService(ctx, ident, hotelID, domain.BusinessHotel)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	if err := s.repo.SetServiceActive(ctx, hotelID, active); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, hotelID)
	return nil
}

// ---- room types (ownership always via the parent hotel) ----

func (s *VendorService) CreateRoomType(ctx context.Context, ident domain.Identity, hotelID int64, in RoomTypeInput) (int64, error) {
	own, err := s.gate.ResolveService(ctx, ident, hotelID, domain.BusinessHotel)
	if err != nil {
		return 0, err
	}
	if !own.Owner {
		return 0, domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateRoomType(ctx, domain.RoomType{
		HotelID:   hotelID,
		Name:      in.Name,
		Capacity:  in.Capacity,
		BasePrice: in.BasePrice,
		Images:    in.Images,
		IsActive:  true,
	})
	if err != nil {
		return 0, err
	}
	s.invalidateService(ctx, domain.BusinessHotel, hotelID)
	return id, nil
}

func (s *VendorService) UpdateRoomType(ctx context.Context, ident domain.Identity, roomTypeID int64, in RoomTypeInput) error {
	own, rt, err := s.gate.ResolveRoomType(ctx, ident, roomTypeID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	upd := *rt
	upd.Name = in.Name
	upd.Capacity = in.Capacity
	upd.BasePrice = in.BasePrice
	upd.Images = in.Images
	if err := s.repo.UpdateRoomType(ctx, upd); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, rt.HotelID)
	return nil
}

func (s *VendorService) DeleteRoomType(ctx context.Context, ident domain.Identity, roomTypeID int64) error {
	own, rt, err := s.gate.ResolveRoomType(ctx, ident, roomTypeID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	if err := s.repo.DeleteRoomType(ctx, roomTypeID); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, rt.HotelID)
	return nil
}

func (s *VendorService) SetRoomTypeActive(ctx context.Context, ident domain.Identity, roomTypeID int64, active bool) error {
	own, rt, err := s.gate.ResolveRoomType(ctx, ident, roomTypeID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{BusinessType: domain.BusinessHotel}); err != nil {
		return err
	}
	if err := s.repo.SetRoomTypeActive(ctx, roomTypeID, active); err != nil {
		return err
	}
	s.invalidateService(ctx, domain.BusinessHotel, rt.HotelID)
	return nil
}

// ---- generic services (activities, transport, rentals) ----

func (s *VendorService) CreateService(ctx context.Context, ident domain.Identity, in ServiceInput) (int64, error) {
	if in.Type == "" || in.Type == domain.BusinessHotel {
		// Hotels go through the dedicated endpoints.
		return 0, domain.ErrMissingField
	}
	prof, err := s.gate.Profile(ctx, ident)
	if err != nil {
		return 0, err
	}
	if err := s.gate.Authorize(prof, Requirement{NeedVerified: true, BusinessType: in.Type}); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateService(ctx, domain.Service{
		VendorID:    prof.ID,
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		DetailsJSON: in.DetailsJSON,
		IsActive:    true,
	})
	if err != nil {
		return 0, err
	}
	s.invalidateService(ctx, in.Type, id)
	return id, nil
}

func (s *VendorService) UpdateService(ctx context.Context, ident domain.Identity, serviceID int64, in ServiceInput) error {
	own, err := s.resolveGenericService(ctx, ident, serviceID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: own.Service.Type}); err != nil {
		return err
	}
	svc := *own.Service
	svc.Name = in.Name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.Images = in.Images
	svc.DetailsJSON = in.DetailsJSON
	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return err
	}
	s.invalidateService(ctx, own.Service.Type, serviceID)
	return nil
}

func (s *VendorService) DeleteService(ctx context.Context, ident domain.Identity, serviceID int64) error {
	own, err := s.resolveGenericService(ctx, ident, serviceID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{NeedVerified: true, BusinessType: own.Service.Type}); err != nil {
		return err
	}
	if err := s.repo.DeleteService(ctx, serviceID); err != nil {
		return err
	}
	s.invalidateService(ctx, own.Service.Type, serviceID)
	return nil
}

func (s *VendorService) SetServiceActive(ctx context.Context, ident domain.Identity, serviceID int64, active bool) error {
	own, err := s.resolveGenericService(ctx, ident, serviceID)
	if err != nil {
		return err
	}
	if !own.Owner {
		return domain.ErrNotFound
	}
	if err := s.gate.Authorize(own.Profile, Requirement{BusinessType: own.Service.Type}); err != nil {
		return err
	}
	if err := s.repo.SetServiceActive(ctx, serviceID, active); err != nil {
		return err
	}
	s.invalidateService(ctx, own.Service.Type, serviceID)
	return nil
}

// resolveGenericService resolves ownership for the generic endpoints, which
// cover everything except hotels. A hotel ID supplied here is treated as
// non-ownership, same as any other category mismatch.
func (s *VendorService) resolveGenericService(ctx context.Context, ident domain.Identity, serviceID int64) (Ownership, error) {
	own, err := s.gate.ResolveService(ctx, ident, serviceID, "")
	if err != nil {
		return Ownership{}, err
	}
	if own.Owner && own.Service.Type == domain.BusinessHotel {
		own.Owner = false
		own.Service = nil
	}
	return own, nil
}

// invalidate the read-side caches a write may have made stale
func (s *VendorService) invalidateService(ctx context.Context, typ domain.BusinessType, id int64) {
	if s.cache == nil {
		return
	}
	if typ == domain.BusinessHotel {
		_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%d", id))
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("services:%s", typ))
	_ = s.cache.Del(ctx, "services:all")
}
