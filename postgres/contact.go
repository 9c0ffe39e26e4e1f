package postgres

import (
	"agenda/contact"
	"agenda/record"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ContactModel represents the database model for contacts
type ContactModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	Email     string `gorm:"not null;default:''"`
	Age       int64  `gorm:"not null"`
	Birthdate string `gorm:"not null"`
	Category  string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ContactStore implements record.Storage for contacts
type ContactStore struct {
	db *gorm.DB
}

var _ record.Storage[contact.Contact] = (*ContactStore)(nil)

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Get(ctx context.Context, id record.ID) (contact.Contact, bool, error) {
	var model ContactModel
	err := s.db.WithContext(ctx).Where("id = ?", int64(id)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contact.Contact{}, false, nil
		}
		return contact.Contact{}, false, fmt.Errorf("postgres: get contact %d: %w", id, err)
	}
	return toDomainContact(model), true, nil
}

func (s *ContactStore) Insert(ctx context.Context, id record.ID, c contact.Contact) error {
	model := toModelContact(id, c)
	if err := upsertByID(ctx, s.db, &model); err != nil {
		return fmt.Errorf("postgres: put contact %d: %w", id, err)
	}
	return nil
}

func (s *ContactStore) Remove(ctx context.Context, id record.ID) (bool, error) {
	ok, err := removeByID(ctx, s.db, &ContactModel{}, id)
	if err != nil {
		return false, fmt.Errorf("postgres: delete contact %d: %w", id, err)
	}
	return ok, nil
}

func (s *ContactStore) Contains(ctx context.Context, id record.ID) (bool, error) {
	ok, err := containsID(ctx, s.db, &ContactModel{}, id)
	if err != nil {
		return false, fmt.Errorf("postgres: lookup contact %d: %w", id, err)
	}
	return ok, nil
}

func (s *ContactStore) List(ctx context.Context) ([]record.Entry[contact.Contact], error) {
	var models []ContactModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: list contacts: %w", err)
	}

	entries := make([]record.Entry[contact.Contact], len(models))
	for i, model := range models {
		entries[i] = record.Entry[contact.Contact]{ID: record.ID(model.ID), Value: toDomainContact(model)}
	}
	return entries, nil
}

func (s *ContactStore) NextID(ctx context.Context) (record.ID, error) {
	return nextID(ctx, s.db, ContactModel{}.TableName())
}

func (s *ContactStore) SetNextID(ctx context.Context, next record.ID) error {
	return setNextID(ctx, s.db, ContactModel{}.TableName(), next)
}

func toModelContact(id record.ID, c contact.Contact) ContactModel {
	return ContactModel{
		ID:        int64(id),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Age:       int64(c.Age),
		Birthdate: c.Birthdate,
		Category:  string(c.Category),
	}
}

func toDomainContact(model ContactModel) contact.Contact {
	return contact.Contact{
		Name:      model.Name,
		Phone:     model.Phone,
		Email:     model.Email,
		Age:       uint32(model.Age),
		Birthdate: model.Birthdate,
		Category:  contact.Category(model.Category),
	}
}
