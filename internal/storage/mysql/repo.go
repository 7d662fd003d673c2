package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"andaman_market/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func jsonList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetVendorByUserID(ctx context.Context, userID int64) (domain.VendorProfile, error) {
	row := r.db.QueryRowContext(ctx, getVendorByUserSQL, userID)

	var vp domain.VendorProfile
	var verified bool
	var btype string
	if err := row.Scan(&vp.ID, &vp.UserID, &vp.BusinessName, &btype, &verified); err != nil {
		if err == sql.ErrNoRows {
			return domain.VendorProfile{}, domain.ErrNotFound
		}
		return domain.VendorProfile{}, err
	}
	vp.BusinessType = domain.BusinessType(btype)
	vp.Verified = verified
	return vp, nil
}

func (r *Repo) GetService(ctx context.Context, id int64) (domain.Service, error) {
	row := r.db.QueryRowContext(ctx, getServiceSQL, id)
	return scanService(row)
}

func scanService(row *sql.Row) (domain.Service, error) {
	var svc domain.Service
	var typ string
	var desc sql.NullString
	var price sql.NullFloat64
	var imagesJSON, detailsRaw []byte

	if err := row.Scan(&svc.ID, &svc.VendorID, &typ, &svc.Name, &desc, &price, &svc.IsActive, &imagesJSON, &detailsRaw); err != nil {
		if err == sql.ErrNoRows {
			return domain.Service{}, domain.ErrNotFound
		}
		return domain.Service{}, err
	}
	svc.Type = domain.BusinessType(typ)
	if desc.Valid {
		d := desc.String
		svc.Description = &d
	}
	if price.Valid {
		p := price.Float64
		svc.Price = &p
	}
	_ = json.Unmarshal(imagesJSON, &svc.Images)
	if len(detailsRaw) > 0 {
		svc.DetailsJSON = append([]byte(nil), detailsRaw...)
	}
	return svc, nil
}

func (r *Repo) CreateService(ctx context.Context, s domain.Service) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertServiceSQL,
		s.VendorID,
		string(s.Type),
		s.Name,
		valStr(s.Description),
		valF64(s.Price),
		s.IsActive,
		jsonList(s.Images),
		valJSON(s.DetailsJSON),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateService(ctx context.Context, s domain.Service) error {
	res, err := r.db.ExecContext(ctx, updateServiceSQL,
		s.Name,
		valStr(s.Description),
		valF64(s.Price),
		jsonList(s.Images),
		valJSON(s.DetailsJSON),
		s.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repo) DeleteService(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteServiceSQL, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repo) SetServiceActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, setServiceActiveSQL, active, id)
	return err
}

func (r *Repo) GetRoomType(ctx context.Context, id int64) (domain.RoomType, error) {
	row := r.db.QueryRowContext(ctx, getRoomTypeSQL, id)

	var rt domain.RoomType
	var capacity sql.NullInt64
	var price sql.NullFloat64
	var imagesJSON []byte
	if err := row.Scan(&rt.ID, &rt.HotelID, &rt.Name, &capacity, &price, &rt.IsActive, &imagesJSON); err != nil {
		if err == sql.ErrNoRows {
			return domain.RoomType{}, domain.ErrNotFound
		}
		return domain.RoomType{}, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		rt.Capacity = &c
	}
	if price.Valid {
		p := price.Float64
		rt.BasePrice = &p
	}
	_ = json.Unmarshal(imagesJSON, &rt.Images)
	return rt, nil
}

func (r *Repo) CreateRoomType(ctx context.Context, rt domain.RoomType) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomTypeSQL,
		rt.HotelID,
		rt.Name,
		valInt(rt.Capacity),
		valF64(rt.BasePrice),
		rt.IsActive,
		jsonList(rt.Images),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateRoomType(ctx context.Context, rt domain.RoomType) error {
	res, err := r.db.ExecContext(ctx, updateRoomTypeSQL,
		rt.Name,
		valInt(rt.Capacity),
		valF64(rt.BasePrice),
		jsonList(rt.Images),
		rt.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repo) DeleteRoomType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomTypeSQL, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *Repo) SetRoomTypeActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, setRoomTypeActiveSQL, active, id)
	return err
}

func (r *Repo) LogUpload(ctx context.Context, rec domain.UploadRecord) error {
	_, err := r.db.ExecContext(ctx, insertUploadLogSQL,
		rec.VendorID,
		rec.Category,
		rec.ParentID,
		rec.Path,
		rec.PublicURL,
		rec.ContentType,
		rec.SizeBytes,
	)
	return err
}

func (r *Repo) GetHotelView(ctx context.Context, id int64) (domain.HotelView, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)

	var hv domain.HotelView
	var desc sql.NullString
	var price sql.NullFloat64
	var imagesJSON []byte
	if err := row.Scan(&hv.ID, &hv.Name, &desc, &price, &imagesJSON); err != nil {
		if err == sql.ErrNoRows {
			return domain.HotelView{}, domain.ErrNotFound
		}
		return domain.HotelView{}, err
	}
	if desc.Valid {
		d := desc.String
		hv.Description = &d
	}
	if price.Valid {
		p := price.Float64
		hv.Price = &p
	}
	_ = json.Unmarshal(imagesJSON, &hv.Images)

	rows, err := r.db.QueryContext(ctx, listRoomTypesSQL, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var rt domain.RoomType
		var capacity sql.NullInt64
		var rprice sql.NullFloat64
		var rimg []byte
		if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.Name, &capacity, &rprice, &rt.IsActive, &rimg); err != nil {
			return domain.HotelView{}, err
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			rt.Capacity = &c
		}
		if rprice.Valid {
			p := rprice.Float64
			rt.BasePrice = &p
		}
		_ = json.Unmarshal(rimg, &rt.Images)
		hv.Rooms = append(hv.Rooms, rt)
	}
	if err := rows.Err(); err != nil {
		return domain.HotelView{}, err
	}
	return hv, nil
}

func (r *Repo) ListServices(ctx context.Context, q domain.ServicesQuery) ([]domain.ServiceSummary, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT id, type, name, price, is_active FROM services WHERE is_active = 1`
	args := []any{}
	if q.Type != nil {
		query += ` AND type = ?`
		args = append(args, string(*q.Type))
	}
	query += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServiceSummary
	for rows.Next() {
		var s domain.ServiceSummary
		var typ string
		var price sql.NullFloat64
		if err := rows.Scan(&s.ID, &typ, &s.Name, &price, &s.IsActive); err != nil {
			return nil, err
		}
		s.Type = domain.BusinessType(typ)
		if price.Valid {
			p := price.Float64
			s.Price = &p
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// affectedOrNotFound folds a zero-row UPDATE/DELETE into ErrNotFound so the
// handler's merged not-found/not-owned response stays consistent even when
// a row vanishes between the gate check and the mutation.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
