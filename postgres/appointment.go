package postgres

import (
	"agenda/appointment"
	"agenda/record"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type AppointmentModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement:false"`
	Title         string `gorm:"not null"`
	ScheduledDate string `gorm:"not null"`
	ScheduledTime string `gorm:"not null"`
	Description   string `gorm:"not null;default:''"`
	Priority      string `gorm:"not null"`
	Duration      int32  `gorm:"not null"`
}

func (AppointmentModel) TableName() string {
	return "appointments"
}

// AppointmentStore implements record.Storage for appointments
type AppointmentStore struct {
	db *gorm.DB
}

var _ record.Storage[appointment.Appointment] = (*AppointmentStore)(nil)

func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

func (s *AppointmentStore) Get(ctx context.Context, id record.ID) (appointment.Appointment, bool, error) {
	var model AppointmentModel
	err := s.db.WithContext(ctx).Where("id = ?", int64(id)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appointment.Appointment{}, false, nil
		}
		return appointment.Appointment{}, false, fmt.Errorf("postgres: get appointment %d: %w", id, err)
	}
	return toDomainAppointment(model), true, nil
}

func (s *AppointmentStore) Insert(ctx context.Context, id record.ID, a appointment.Appointment) error {
	model := toModelAppointment(id, a)
	if err := upsertByID(ctx, s.db, &model); err != nil {
		return fmt.Errorf("postgres: put appointment %d: %w", id, err)
	}
	return nil
}

func (s *AppointmentStore) Remove(ctx context.Context, id record.ID) (bool, error) {
	ok, err := removeByID(ctx, s.db, &AppointmentModel{}, id)
	if err != nil {
		return false, fmt.Errorf("postgres: delete appointment %d: %w", id, err)
	}
	return ok, nil
}

func (s *AppointmentStore) Contains(ctx context.Context, id record.ID) (bool, error) {
	ok, err := containsID(ctx, s.db, &AppointmentModel{}, id)
	if err != nil {
		return false, fmt.Errorf("postgres: lookup appointment %d: %w", id, err)
	}
	return ok, nil
}

func (s *AppointmentStore) List(ctx context.Context) ([]record.Entry[appointment.Appointment], error) {
	var models []AppointmentModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: list appointments: %w", err)
	}

	entries := make([]record.Entry[appointment.Appointment], len(models))
	for i, model := range models {
		entries[i] = record.Entry[appointment.Appointment]{ID: record.ID(model.ID), Value: toDomainAppointment(model)}
	}
	return entries, nil
}

func (s *AppointmentStore) NextID(ctx context.Context) (record.ID, error) {
	return nextID(ctx, s.db, AppointmentModel{}.TableName())
}

func (s *AppointmentStore) SetNextID(ctx context.Context, next record.ID) error {
	return setNextID(ctx, s.db, AppointmentModel{}.TableName(), next)
}

func toModelAppointment(id record.ID, a appointment.Appointment) AppointmentModel {
	return AppointmentModel{
		ID:            int64(id),
		Title:         a.Title,
		ScheduledDate: a.Date,
		ScheduledTime: a.Time,
		Description:   a.Description,
		Priority:      string(a.Priority),
		Duration:      a.Duration,
	}
}

func toDomainAppointment(model AppointmentModel) appointment.Appointment {
	return appointment.Appointment{
		Title:       model.Title,
		Date:        model.ScheduledDate,
		Time:        model.ScheduledTime,
		Description: model.Description,
		Priority:    appointment.Priority(model.Priority),
		Duration:    model.Duration,
	}
}
