package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iliyamo/hostel-management/internal/model"
)

func openRooms(t *testing.T, dir string, strict bool) *Table[model.Room] {
	t.Helper()
	tbl, err := OpenJSON[model.Room](context.Background(), dir, "rooms.json", strict)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return tbl
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	tbl := openRooms(t, t.TempDir(), true)

	a, _ := tbl.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2})
	b, _ := tbl.Add(ctx, model.Room{RoomNumber: "102", Capacity: 2})
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d,%d, want 1,2", a.ID, b.ID)
	}

	if _, err := tbl.Add(ctx, model.Room{ID: 10, RoomNumber: "110"}); err != nil {
		t.Fatalf("explicit id: %v", err)
	}
	c, _ := tbl.Add(ctx, model.Room{RoomNumber: "111"})
	if c.ID != 11 {
		t.Fatalf("id after explicit 10 = %d, want 11", c.ID)
	}

	if _, err := tbl.Add(ctx, model.Room{ID: 2}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate id err = %v, want ErrConflict", err)
	}
}

func TestGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	tbl := openRooms(t, t.TempDir(), true)
	r, _ := tbl.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2})

	if _, err := tbl.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing err = %v", err)
	}

	r.Capacity = 3
	if err := tbl.Update(ctx, r); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := tbl.Get(ctx, r.ID)
	if got.Capacity != 3 {
		t.Fatalf("capacity = %d, want 3", got.Capacity)
	}

	if err := tbl.Update(ctx, model.Room{ID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}

	if err := tbl.Delete(ctx, 42); err != nil {
		t.Fatalf("delete missing should be a no-op: %v", err)
	}
	if err := tbl.Delete(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("len = %d after delete", tbl.Len())
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemory[model.Room]()
	r, _ := tbl.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2})
	r.Capacity = 9
	got, _ := tbl.Get(ctx, r.ID)
	if got.Capacity != 2 {
		t.Fatalf("store mutated through returned value")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tbl := openRooms(t, dir, true)
	tbl.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2, RoomType: model.RoomDouble, IsActive: true})
	tbl.Add(ctx, model.Room{RoomNumber: "102", Capacity: 1, RoomType: model.RoomSingle})
	if err := tbl.Persist(ctx); err != nil {
		t.Fatalf("persist: %v", err)
	}

	again := openRooms(t, dir, true)
	list, _ := again.List(ctx)
	if len(list) != 2 || list[0].RoomNumber != "101" || list[1].RoomType != model.RoomSingle {
		t.Fatalf("reloaded = %+v", list)
	}
	next, _ := again.Add(ctx, model.Room{RoomNumber: "103"})
	if next.ID != 3 {
		t.Fatalf("id after reload = %d, want 3", next.ID)
	}
}

func TestLoadMissingOrEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if tbl := openRooms(t, dir, true); tbl.Len() != 0 {
		t.Fatal("missing file should load empty")
	}
	os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("  \n"), 0o644)
	if tbl := openRooms(t, dir, true); tbl.Len() != 0 {
		t.Fatal("blank file should load empty")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("[{"), 0o644)

	_, err := OpenJSON[model.Room](context.Background(), dir, "rooms.json", true)
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("strict load err = %v, want ErrCorruptStore", err)
	}

	tbl := openRooms(t, dir, false)
	if tbl.Len() != 0 {
		t.Fatal("lenient load should start empty")
	}
}
