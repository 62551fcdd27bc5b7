package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

func jsonConfig(dir string) config.Config {
	return config.Config{
		StoreBackend:    config.BackendJSON,
		DataDir:         dir,
		StoreStrictLoad: true,
		BcryptCost:      4,
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		SequenceBackend: "store",
	}
}

func TestOpenPrepareAndReopen(t *testing.T) {
	ctx := context.Background()
	cfg := jsonConfig(t.TempDir())
	cfg.SeedDemo = true

	app, err := Open(ctx, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Prepare(ctx); err != nil {
		t.Fatal(err)
	}
	app.Close()

	for _, f := range []string{"students.json", "rooms.json", "admins.json", "audit_logs.json"} {
		if _, err := os.Stat(filepath.Join(cfg.DataDir, f)); err != nil {
			t.Fatalf("%s not written: %v", f, err)
		}
	}

	again, err := Open(ctx, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	students, _ := again.Hostel.Students.List(ctx)
	if len(students) != 10 {
		t.Fatalf("students after reopen = %d", len(students))
	}
	if _, err := again.Hostel.Admins.Authenticate(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("default admin: %v", err)
	}
}

func TestOpenStoresCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenStores(ctx, jsonConfig(dir), nil)
	if !errors.Is(err, repository.ErrCorruptStore) {
		t.Fatalf("err = %v", err)
	}

	cfg := jsonConfig(dir)
	cfg.StoreStrictLoad = false
	st, err := OpenStores(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("lenient load: %v", err)
	}
	if rooms, _ := st.Rooms.List(ctx); len(rooms) != 0 {
		t.Fatalf("rooms = %d", len(rooms))
	}
	if _, err := st.Students.Add(ctx, model.Student{FirstName: "A"}); err != nil {
		t.Fatal(err)
	}
}
