package database

import (
	"testing"

	"github.com/iliyamo/hostel-management/internal/config"
)

func TestDSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "mysql",
			cfg:  config.Config{StoreBackend: config.BackendMySQL, DBUser: "root", DBPass: "pw", DBHost: "db", DBPort: "3306", DBName: "hostel"},
			want: "root:pw@tcp(db:3306)/hostel?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "mysql without password",
			cfg:  config.Config{StoreBackend: config.BackendMySQL, DBUser: "root", DBHost: "db", DBPort: "3306", DBName: "hostel"},
			want: "root@tcp(db:3306)/hostel?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "postgres",
			cfg:  config.Config{StoreBackend: config.BackendPostgres, DBUser: "hostel", DBPass: "p@ss", DBHost: "pg", DBPort: "5432", DBName: "hostel"},
			want: "postgres://hostel:p%40ss@pg:5432/hostel?sslmode=disable",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DSN(tc.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("DSN = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if d, _ := DriverName(config.BackendPostgres); d != "pgx" {
		t.Fatalf("postgres driver = %q", d)
	}
	if _, err := DriverName(config.BackendJSON); err == nil {
		t.Fatal("json backend has no driver")
	}
}
