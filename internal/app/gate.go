package app

import (
	"context"
	"errors"

	"andaman_market/internal/adapters/observability"
	"andaman_market/internal/domain"
)

// Requirement is what an operation demands from the caller's vendor profile
// after ownership has been settled. Reads and status toggles run with
// NeedVerified=false; create/update/delete require a verified account.
type Requirement struct {
	NeedVerified bool
	BusinessType domain.BusinessType // "" accepts any business type
}

// Ownership is the outcome of resolving a caller against a target resource.
// Owner=false never distinguishes "does not exist" from "owned by someone
// else"; both must surface as not-found at the HTTP boundary.
type Ownership struct {
	Owner   bool
	Profile *domain.VendorProfile
	Service *domain.Service // the target, or the parent hotel for room types
}

// AccessGate performs the layered authorization every mutating vendor
// operation passes through. Credential and role checks already happened in
// middleware by the time the gate runs, so this is ownership, verification
// and business-type only.
type AccessGate struct {
	repo domain.MarketRepository
}

func NewAccessGate(repo domain.MarketRepository) *AccessGate {
	return &AccessGate{repo: repo}
}

// Profile maps an identity to its vendor profile. "No profile" is a normal
// state (non-vendor callers, onboarding races), never an error.
func (g *AccessGate) Profile(ctx context.Context, ident domain.Identity) (*domain.VendorProfile, error) {
	vp, err := g.repo.GetVendorByUserID(ctx, ident.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vp, nil
}

// ResolveService computes ownership of a service resource. When want is
// non-empty and the resource's type differs, the result is forced to
// non-ownership: a vendor probing a hotel endpoint with a transport ID
// learns nothing beyond "not found".
func (g *AccessGate) ResolveService(ctx context.Context, ident domain.Identity, serviceID int64, want domain.BusinessType) (Ownership, error) {
	prof, err := g.Profile(ctx, ident)
	if err != nil {
		return Ownership{}, err
	}
	own := Ownership{Profile: prof}
	if prof == nil {
		return own, nil
	}

	svc, err := g.repo.GetService(ctx, serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return own, nil
	}
	if err != nil {
		return Ownership{}, err
	}
	if svc.VendorID != prof.ID {
		return own, nil
	}
	if want != "" && svc.Type != want {
		return own, nil
	}
	own.Owner = true
	own.Service = &svc
	return own, nil
}

// ResolveRoomType computes ownership of a room type strictly through its
// parent hotel. Room rows carry no owner column, so there is nothing else
// to trust.
func (g *AccessGate) ResolveRoomType(ctx context.Context, ident domain.Identity, roomTypeID int64) (Ownership, *domain.RoomType, error) {
	rt, err := g.repo.GetRoomType(ctx, roomTypeID)
	if errors.Is(err, domain.ErrNotFound) {
		prof, perr := g.Profile(ctx, ident)
		if perr != nil {
			return Ownership{}, nil, perr
		}
		return Ownership{Profile: prof}, nil, nil
	}
	if err != nil {
		return Ownership{}, nil, err
	}

	own, err := g.ResolveService(ctx, ident, rt.HotelID, domain.BusinessHotel)
	if err != nil {
		return Ownership{}, nil, err
	}
	if !own.Owner {
		return own, nil, nil
	}
	return own, &rt, nil
}

// Authorize applies the verification/type policy once ownership (or, for
// creates, the absence of a target) is settled. Check order matters:
// verification before business type, matching the gate's layering.
func (g *AccessGate) Authorize(prof *domain.VendorProfile, req Requirement) error {
	if prof == nil {
		observability.ObserveGateDenial("profile")
		return domain.ErrForbidden
	}
	if req.NeedVerified && !prof.Verified {
		observability.ObserveGateDenial("verification")
		return domain.ErrNotVerified
	}
	if req.BusinessType != "" && prof.BusinessType != req.BusinessType {
		observability.ObserveGateDenial("business_type")
		return domain.ErrWrongVendorType
	}
	return nil
}
