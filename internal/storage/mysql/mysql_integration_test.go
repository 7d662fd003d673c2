//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"andaman_market/internal/domain"
	mysqlrepo "andaman_market/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pint(i int) *int           { return &i }
func pfloat(f float64) *float64 { return &f }

func migrationsDir(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=andaman",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/andaman?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedVendor(t *testing.T, db *sql.DB, userID int64, btype string, verified bool) int64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO vendors (user_id, business_name, business_type, verified) VALUES (?, ?, ?, ?)`,
		userID, fmt.Sprintf("vendor-%d", userID), btype, verified,
	)
	if err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// ---------- the test ----------
func TestRepo_MySQL_VendorResourceLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	vendorID := seedVendor(t, db, 1, "hotel", true)

	vp, err := repo.GetVendorByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("GetVendorByUserID: %v", err)
	}
	if vp.ID != vendorID || vp.BusinessType != domain.BusinessHotel || !vp.Verified {
		t.Fatalf("unexpected vendor profile: %+v", vp)
	}
	if _, err := repo.GetVendorByUserID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing vendor: expected ErrNotFound, got %v", err)
	}

	// hotel with a room type
	hotelID, err := repo.CreateService(ctx, domain.Service{
		VendorID:    vendorID,
		Type:        domain.BusinessHotel,
		Name:        "Coral Bay",
		Description: pstr("Beachfront"),
		Price:       pfloat(120.50),
		Images:      []string{"https://cdn/x.jpg"},
		DetailsJSON: []byte(`{"stars":4}`),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	roomID, err := repo.CreateRoomType(ctx, domain.RoomType{
		HotelID:   hotelID,
		Name:      "Deluxe",
		Capacity:  pint(2),
		BasePrice: pfloat(80),
		Images:    []string{},
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("CreateRoomType: %v", err)
	}

	svc, err := repo.GetService(ctx, hotelID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if svc.VendorID != vendorID || svc.Type != domain.BusinessHotel || svc.Name != "Coral Bay" {
		t.Fatalf("unexpected service: %+v", svc)
	}
	if svc.Description == nil || *svc.Description != "Beachfront" {
		t.Fatalf("description lost: %+v", svc.Description)
	}
	if len(svc.Images) != 1 || svc.Images[0] != "https://cdn/x.jpg" {
		t.Fatalf("images lost: %+v", svc.Images)
	}

	rt, err := repo.GetRoomType(ctx, roomID)
	if err != nil {
		t.Fatalf("GetRoomType: %v", err)
	}
	if rt.HotelID != hotelID || rt.Capacity == nil || *rt.Capacity != 2 {
		t.Fatalf("unexpected room type: %+v", rt)
	}

	// public read joins the rooms in
	hv, err := repo.GetHotelView(ctx, hotelID)
	if err != nil {
		t.Fatalf("GetHotelView: %v", err)
	}
	if hv.Name != "Coral Bay" || len(hv.Rooms) != 1 || hv.Rooms[0].Name != "Deluxe" {
		t.Fatalf("unexpected hotel view: %+v", hv)
	}

	// inactive hotels disappear from public reads
	if err := repo.SetServiceActive(ctx, hotelID, false); err != nil {
		t.Fatalf("SetServiceActive: %v", err)
	}
	if _, err := repo.GetHotelView(ctx, hotelID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive hotel: expected ErrNotFound, got %v", err)
	}
	if err := repo.SetServiceActive(ctx, hotelID, true); err != nil {
		t.Fatalf("SetServiceActive: %v", err)
	}

	// mutations on missing rows surface as not found
	if err := repo.UpdateService(ctx, domain.Service{ID: 99999, Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteRoomType(ctx, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete missing: expected ErrNotFound, got %v", err)
	}

	// upload audit row
	if err := repo.LogUpload(ctx, domain.UploadRecord{
		VendorID:    vendorID,
		Category:    "hotel",
		ParentID:    fmt.Sprintf("%d", hotelID),
		Path:        fmt.Sprintf("images/hotels/%d/1-x.jpg", hotelID),
		PublicURL:   "https://media.example.com/images/hotels/1/1-x.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1234,
	}); err != nil {
		t.Fatalf("LogUpload: %v", err)
	}
	var audits int
	if err := db.QueryRow(`SELECT COUNT(*) FROM upload_log WHERE vendor_id = ?`, vendorID).Scan(&audits); err != nil || audits != 1 {
		t.Fatalf("upload_log rows=%d err=%v", audits, err)
	}

	// deleting the hotel cascades to its room types
	if err := repo.DeleteService(ctx, hotelID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if _, err := repo.GetRoomType(ctx, roomID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("room must be gone after hotel delete, got %v", err)
	}
}

func TestRepo_MySQL_ListServicesFilter(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	hotelVendor := seedVendor(t, db, 10, "hotel", true)
	activityVendor := seedVendor(t, db, 11, "activity", true)

	mustCreate := func(vendorID int64, typ domain.BusinessType, name string, active bool) {
		t.Helper()
		if _, err := repo.CreateService(ctx, domain.Service{
			VendorID: vendorID, Type: typ, Name: name, IsActive: active, Images: []string{},
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	mustCreate(hotelVendor, domain.BusinessHotel, "Hotel A", true)
	mustCreate(activityVendor, domain.BusinessActivity, "Dive Trip", true)
	mustCreate(activityVendor, domain.BusinessActivity, "Hidden Trip", false)

	all, err := repo.ListServices(ctx, domain.ServicesQuery{})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 active services, got %+v", all)
	}

	at := domain.BusinessActivity
	acts, err := repo.ListServices(ctx, domain.ServicesQuery{Type: &at})
	if err != nil {
		t.Fatalf("ListServices(type): %v", err)
	}
	if len(acts) != 1 || acts[0].Name != "Dive Trip" {
		t.Fatalf("expected only the active dive trip, got %+v", acts)
	}
}
