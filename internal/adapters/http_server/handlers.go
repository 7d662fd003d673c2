// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"andaman_market/internal/app"
	"andaman_market/internal/auth"
	"andaman_market/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	V    *app.VendorService
	U    *app.UploadService
	Gate *app.AccessGate
}

// envelope is the standard response shape for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, verifier *auth.Verifier, uploadRPS int) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/services", h.listServices)

	s.mux.Route("/v1/vendor", func(r chi.Router) {
		r.Use(auth.RequireAuth(verifier))
		r.Use(auth.RequireRole(domain.RoleVendor, domain.RoleAdmin))

		r.Get("/me", h.me)

		r.Post("/hotels", h.createHotel)
		r.Put("/hotels/{id}", h.updateHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)
		r.Patch("/hotels/{id}/status", h.setHotelStatus)

		r.Post("/hotels/{id}/rooms", h.createRoomType)
		r.Put("/rooms/{id}", h.updateRoomType)
		r.Delete("/rooms/{id}", h.deleteRoomType)
		r.Patch("/rooms/{id}/status", h.setRoomTypeStatus)

		r.Post("/services", h.createService)
		r.Put("/services/{id}", h.updateService)
		r.Delete("/services/{id}", h.deleteService)
		r.Patch("/services/{id}/status", h.setServiceStatus)

		r.With(RateLimit(uploadRPS)).Post("/uploads", h.upload)
	})
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError maps the domain taxonomy onto HTTP statuses. ErrNotFound
// deliberately covers "not owned" too; nothing here may split them.
// Unexpected errors are logged in full and redacted for the client.
func writeError(w http.ResponseWriter, err error) {
	var swe *domain.StorageWriteError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, envelope{Error: "authentication required"})
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrWrongVendorType):
		writeJSON(w, http.StatusForbidden, envelope{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, envelope{Error: "not found"})
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidParent):
		writeJSON(w, http.StatusBadRequest, envelope{Error: err.Error()})
	case errors.As(err, &swe):
		// the failing file name is caller-actionable: resubmit that subset
		writeJSON(w, http.StatusInternalServerError, envelope{Error: "upload failed for file: " + swe.FileName})
	default:
		log.Error().Err(err).Msg("unexpected handler error")
		writeJSON(w, http.StatusInternalServerError, envelope{Error: "internal error"})
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrMissingField
	}
	return id, nil
}

func identity(r *http.Request) domain.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}

// ---- request shapes ----

type serviceReq struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price"`
	Images      []string        `json:"images"`
	Details     json.RawMessage `json:"details"`
}

func (req *serviceReq) toInput() (app.ServiceInput, error) {
	if req.Name == "" {
		return app.ServiceInput{}, domain.ErrMissingField
	}
	return app.ServiceInput{
		Name:        req.Name,
		Type:        domain.BusinessType(req.Type),
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		DetailsJSON: req.Details,
	}, nil
}

type roomTypeReq struct {
	Name      string   `json:"name"`
	Capacity  *int     `json:"capacity"`
	BasePrice *float64 `json:"base_price"`
	Images    []string `json:"images"`
}

type statusReq struct {
	Active *bool `json:"is_active"`
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrMissingField
	}
	return nil
}

// ---- public ----

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	hv, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, hv)
}

func (h *Handlers) listServices(w http.ResponseWriter, r *http.Request) {
	q := domain.ServicesQuery{Limit: 50}
	if t := r.URL.Query().Get("type"); t != "" {
		bt := domain.BusinessType(t)
		switch bt {
		case domain.BusinessHotel, domain.BusinessActivity, domain.BusinessTransport, domain.BusinessRental:
			q.Type = &bt
		default:
			writeError(w, domain.ErrMissingField)
			return
		}
	}
	items, err := h.Q.ListServices(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

// ---- vendor profile ----

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	prof, err := h.V.Me(r.Context(), identity(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, prof)
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req serviceReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := h.V.CreateHotel(r.Context(), identity(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req serviceReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.V.UpdateHotel(r.Context(), identity(r), id, in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "hotel updated"})
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.V.DeleteHotel(r.Context(), identity(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "hotel deleted"})
}

func (h *Handlers) setHotelStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req statusReq
	if err := decode(r, &req); err != nil || req.Active == nil {
		writeError(w, domain.ErrMissingField)
		return
	}
	if err := h.V.SetHotelActive(r.Context(), identity(r), id, *req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "status updated"})
}

// ---- room types ----

func (h *Handlers) createRoomType(w http.ResponseWriter, r *http.Request) {
	hotelID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req roomTypeReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		writeError(w, domain.ErrMissingField)
		return
	}
	id, err := h.V.CreateRoomType(r.Context(), identity(r), hotelID, app.RoomTypeInput{
		Name:      req.Name,
		Capacity:  req.Capacity,
		BasePrice: req.BasePrice,
		Images:    req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req roomTypeReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		writeError(w, domain.ErrMissingField)
		return
	}
	if err := h.V.UpdateRoomType(r.Context(), identity(r), id, app.RoomTypeInput{
		Name:      req.Name,
		Capacity:  req.Capacity,
		BasePrice: req.BasePrice,
		Images:    req.Images,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "room type updated"})
}

func (h *Handlers) deleteRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.V.DeleteRoomType(r.Context(), identity(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "room type deleted"})
}

func (h *Handlers) setRoomTypeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req statusReq
	if err := decode(r, &req); err != nil || req.Active == nil {
		writeError(w, domain.ErrMissingField)
		return
	}
	if err := h.V.SetRoomTypeActive(r.Context(), identity(r), id, *req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "status updated"})
}

// ---- generic services ----

func (h *Handlers) createService(w http.ResponseWriter, r *http.Request) {
	var req serviceReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := h.V.CreateService(r.Context(), identity(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req serviceReq
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.V.UpdateService(r.Context(), identity(r), id, in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "service updated"})
}

func (h *Handlers) deleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.V.DeleteService(r.Context(), identity(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "service deleted"})
}

func (h *Handlers) setServiceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req statusReq
	if err := decode(r, &req); err != nil || req.Active == nil {
		writeError(w, domain.ErrMissingField)
		return
	}
	if err := h.V.SetServiceActive(r.Context(), identity(r), id, *req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "status updated"})
}

// ---- uploads ----

const maxUploadMemory = 32 << 20

type uploadResponse struct {
	Success   bool     `json:"success"`
	ImageURLs []string `json:"imageUrls,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func (h *Handlers) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeUpload(w, http.StatusBadRequest, uploadResponse{Error: "invalid multipart form"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	parentID := r.FormValue("parentId")
	category := r.FormValue("category")
	if category == "" {
		category = r.FormValue("type")
	}

	var files []app.UploadFile
	var opened []interface{ Close() error }
	defer func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}()
	if r.MultipartForm != nil {
		// deterministic field order so batch failures are reproducible
		fields := make([]string, 0, len(r.MultipartForm.File))
		for k := range r.MultipartForm.File {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		for _, k := range fields {
			for _, fh := range r.MultipartForm.File[k] {
				f, err := fh.Open()
				if err != nil {
					writeUpload(w, http.StatusBadRequest, uploadResponse{Error: "unreadable file: " + fh.Filename})
					return
				}
				opened = append(opened, f)
				files = append(files, app.UploadFile{
					Name:        fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Size:        fh.Size,
					Content:     f,
				})
			}
		}
	}

	var vendorID int64
	if prof, err := h.Gate.Profile(r.Context(), identity(r)); err == nil && prof != nil {
		vendorID = prof.ID
	}

	urls, err := h.U.Handle(r.Context(), vendorID, category, parentID, files)
	if err != nil {
		var swe *domain.StorageWriteError
		switch {
		case errors.Is(err, domain.ErrMissingField):
			writeUpload(w, http.StatusBadRequest, uploadResponse{Error: "parentId, category and at least one file are required"})
		case errors.Is(err, domain.ErrInvalidCategory):
			writeUpload(w, http.StatusBadRequest, uploadResponse{Error: "unknown upload category"})
		case errors.Is(err, domain.ErrInvalidParent):
			writeUpload(w, http.StatusBadRequest, uploadResponse{Error: "invalid parent identifier"})
		case errors.As(err, &swe):
			writeUpload(w, http.StatusInternalServerError, uploadResponse{Error: "upload failed for file: " + swe.FileName})
		default:
			log.Error().Err(err).Msg("upload failed")
			writeUpload(w, http.StatusInternalServerError, uploadResponse{Error: "internal error"})
		}
		return
	}
	writeUpload(w, http.StatusOK, uploadResponse{Success: true, ImageURLs: urls})
}

func writeUpload(w http.ResponseWriter, status int, resp uploadResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("write upload response failed")
	}
}
