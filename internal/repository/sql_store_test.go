package repository

import (
	"errors"
	"testing"

	"github.com/iliyamo/hostel-management/internal/model"
)

func TestDecodeRows(t *testing.T) {
	good := []string{`{"id":1,"room_number":"101","capacity":2}`, `{"id":2,"room_number":"102","capacity":3}`}
	bad := []string{good[0], `{"id":`}

	tests := []struct {
		name    string
		bodies  []string
		strict  bool
		want    int
		wantErr error
	}{
		{"valid rows", good, true, 2, nil},
		{"no rows", nil, true, 0, nil},
		{"corrupt row strict", bad, true, 0, ErrCorruptStore},
		{"corrupt row lenient", bad, false, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRows[model.Room]("rooms", tt.bodies, tt.strict)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	rooms, _ := decodeRows[model.Room]("rooms", good, true)
	if rooms[1].RoomNumber != "102" || rooms[1].Capacity != 3 {
		t.Fatalf("decoded = %+v", rooms[1])
	}
}

func TestNewSQLTableKeepsStrict(t *testing.T) {
	if tbl := NewSQLTable[model.Room](nil, "mysql", "rooms", false); tbl.Strict {
		t.Fatal("lenient flag lost")
	}
	if tbl := NewSQLTable[model.Room](nil, "postgres", "rooms", true); !tbl.Strict || tbl.Name() != "rooms" {
		t.Fatalf("table = %+v", tbl)
	}
}
