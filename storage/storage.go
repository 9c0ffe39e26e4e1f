// Package storage builds the agenda backend selected by configuration.
package storage

import (
	"agenda/agenda"
	"agenda/appointment"
	"agenda/contact"
	"agenda/dynamodb"
	"agenda/memory"
	"agenda/pkg/config"
	"agenda/postgres"
	agendaredis "agenda/redis"
	"agenda/sqlite"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	kindContact     = "contact"
	kindAppointment = "appointment"
)

// CloseFunc releases the connections held by a backend.
type CloseFunc func() error

func noopClose() error { return nil }

// ErrSlotsUnsupported is returned when caller slots are requested on a
// backend that cannot hold them.
var ErrSlotsUnsupported = errors.New("storage: caller slots are not supported by this backend")

// Open connects to the configured backend. The caller must call the
// returned CloseFunc once the backend is no longer used.
func Open(ctx context.Context, cfg *config.Config) (agenda.Backend, CloseFunc, error) {
	switch cfg.Agenda.Backend {
	case config.BackendMemory, "":
		return openMemory(cfg), noopClose, nil
	case config.BackendSQLite:
		return openSQLite(cfg)
	case config.BackendPostgres:
		return openPostgres(cfg)
	case config.BackendDynamoDB:
		return openDynamoDB(ctx, cfg)
	case config.BackendRedis:
		return openRedis(ctx, cfg)
	}
	return agenda.Backend{}, nil, fmt.Errorf("storage: unknown backend %q", cfg.Agenda.Backend)
}

func openMemory(cfg *config.Config) agenda.Backend {
	b := agenda.Backend{
		Contacts:     memory.NewStore[contact.Contact](),
		Appointments: memory.NewStore[appointment.Appointment](),
	}
	if cfg.Agenda.CallerSlots {
		b.ContactSlots = memory.NewSlots[contact.Contact]()
		b.AppointmentSlots = memory.NewSlots[appointment.Appointment]()
	}
	return b
}

func openSQLite(cfg *config.Config) (agenda.Backend, CloseFunc, error) {
	db, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		return agenda.Backend{}, nil, err
	}

	b := agenda.Backend{
		Contacts:     sqlite.NewStore[contact.Contact](db, kindContact),
		Appointments: sqlite.NewStore[appointment.Appointment](db, kindAppointment),
	}
	if cfg.Agenda.CallerSlots {
		b.ContactSlots = sqlite.NewSlots[contact.Contact](db, kindContact)
		b.AppointmentSlots = sqlite.NewSlots[appointment.Appointment](db, kindAppointment)
	}
	return b, db.Close, nil
}

func openPostgres(cfg *config.Config) (agenda.Backend, CloseFunc, error) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return agenda.Backend{}, nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return agenda.Backend{}, nil, fmt.Errorf("storage: get postgres instance: %w", err)
	}

	b := agenda.Backend{
		Contacts:     postgres.NewContactStore(db),
		Appointments: postgres.NewAppointmentStore(db),
	}
	if cfg.Agenda.CallerSlots {
		b.ContactSlots = postgres.NewSlotStore[contact.Contact](db, kindContact)
		b.AppointmentSlots = postgres.NewSlotStore[appointment.Appointment](db, kindAppointment)
	}
	return b, sqlDB.Close, nil
}

func openDynamoDB(ctx context.Context, cfg *config.Config) (agenda.Backend, CloseFunc, error) {
	if cfg.Agenda.CallerSlots {
		return agenda.Backend{}, nil, ErrSlotsUnsupported
	}

	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return agenda.Backend{}, nil, err
	}

	seq := cfg.DynamoDB.SequencesTable
	return agenda.Backend{
		Contacts:     dynamodb.NewStore[contact.Contact](client, cfg.DynamoDB.ContactsTable, seq),
		Appointments: dynamodb.NewStore[appointment.Appointment](client, cfg.DynamoDB.AppointmentsTable, seq),
	}, noopClose, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (agenda.Backend, CloseFunc, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return agenda.Backend{}, nil, fmt.Errorf("storage: ping redis: %w", err)
	}

	prefix := agendaredis.WithPrefix(cfg.Redis.Prefix)
	b := agenda.Backend{
		Contacts:     agendaredis.NewStore[contact.Contact](client, kindContact, prefix),
		Appointments: agendaredis.NewStore[appointment.Appointment](client, kindAppointment, prefix),
	}
	if cfg.Agenda.CallerSlots {
		b.ContactSlots = agendaredis.NewSlots[contact.Contact](client, kindContact, prefix)
		b.AppointmentSlots = agendaredis.NewSlots[appointment.Appointment](client, kindAppointment, prefix)
	}
	return b, client.Close, nil
}
