// Package bootstrap wires configuration, record stores and optional
// infrastructure (database, Redis, RabbitMQ) into a ready Hostel. The API
// server and the console share it so both see the same data.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/database"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/queue"
	"github.com/iliyamo/hostel-management/internal/repository"
	"github.com/iliyamo/hostel-management/internal/service"
)

// Redis keys of the shared document counters.
const (
	receiptSeqKey = "hostel:seq:receipt"
	passSeqKey    = "hostel:seq:pass"
)

type App struct {
	Config config.Config
	Hostel *service.Hostel
	DB     *sql.DB       // nil with the JSON backend
	Redis  *redis.Client // nil when Redis is unreachable
}

// Open builds the application. With useRedis the Redis client is dialled
// for the rate limiter, the cache and the shared sequences; the console
// passes false and numbers documents from the stored records.
func Open(ctx context.Context, cfg config.Config, useRedis bool) (*App, error) {
	app := &App{Config: cfg}

	if cfg.UsesSQL() {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		if err := repository.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		app.DB = db
	}

	stores, err := OpenStores(ctx, cfg, app.DB)
	if err != nil {
		app.Close()
		return nil, err
	}

	if useRedis {
		app.Redis = config.NewRedisClient(cfg.Redis)
	}

	opts := service.Options{BcryptCost: cfg.BcryptCost}
	if cfg.SequenceBackend == "redis" {
		if app.Redis != nil {
			opts.ReceiptSeq = repository.NewRedisSequence(app.Redis, receiptSeqKey, service.ReceiptFloorFrom(ctx, stores.Payments))
			opts.PassSeq = repository.NewRedisSequence(app.Redis, passSeqKey, service.PassFloorFrom(ctx, stores.Visitors))
		} else {
			log.Printf("bootstrap: SEQUENCE_BACKEND=redis but Redis is unavailable, numbering from the stored records")
		}
	}
	if cfg.EventsEnabled {
		url := queue.BrokerURL()
		opts.Events = queue.NewAMQPPublisher(url)
		log.Printf("bootstrap: booking events enabled (queue %s)", queue.QueueName)
	}

	app.Hostel = service.New(stores, opts)
	return app, nil
}

// Prepare creates the default admin and, when configured, the demo data.
func (a *App) Prepare(ctx context.Context) error {
	if err := a.Hostel.EnsureDefaultAdmin(ctx, a.Config.AdminUsername, a.Config.AdminPassword); err != nil {
		return err
	}
	if a.Config.SeedDemo {
		if err := a.Hostel.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// OpenStores opens every collection on the configured backend. A nil db
// selects the JSON files under cfg.DataDir.
func OpenStores(ctx context.Context, cfg config.Config, db *sql.DB) (service.Stores, error) {
	o := &opener{cfg: cfg, db: db}
	st := service.Stores{
		Students:   openStore[model.Student](ctx, o, "students"),
		Rooms:      openStore[model.Room](ctx, o, "rooms"),
		Bookings:   openStore[model.Booking](ctx, o, "bookings"),
		Payments:   openStore[model.Payment](ctx, o, "payments"),
		Fees:       openStore[model.FeeStructure](ctx, o, "fee_structures"),
		Complaints: openStore[model.Complaint](ctx, o, "complaints"),
		Staff:      openStore[model.Staff](ctx, o, "staff"),
		Visitors:   openStore[model.Visitor](ctx, o, "visitors"),
		Attendance: openStore[model.Attendance](ctx, o, "attendance"),
		Menus:      openStore[model.MessMenu](ctx, o, "mess_menus"),
		Notices:    openStore[model.Notice](ctx, o, "notices"),
		Audit:      openStore[model.AuditLog](ctx, o, "audit_logs"),
		Admins:     openStore[model.Admin](ctx, o, "admins"),
		Tokens:     openStore[model.RefreshToken](ctx, o, "refresh_tokens"),
	}
	return st, o.err
}

// opener remembers the first failure so the store list reads as a table.
type opener struct {
	cfg config.Config
	db  *sql.DB
	err error
}

func openStore[T model.Record[T]](ctx context.Context, o *opener, name string) repository.Store[T] {
	if o.err != nil {
		return nil
	}
	var (
		t   *repository.Table[T]
		err error
	)
	if o.db != nil {
		t, err = repository.OpenSQL[T](ctx, o.db, o.cfg.StoreBackend, name, o.cfg.StoreStrictLoad)
	} else {
		t, err = repository.OpenJSON[T](ctx, o.cfg.DataDir, name+".json", o.cfg.StoreStrictLoad)
	}
	if err != nil {
		o.err = fmt.Errorf("open %s store: %w", name, err)
		return nil
	}
	return t
}
