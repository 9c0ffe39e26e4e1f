package postgres

import (
	"agenda/record"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotModel stores one caller's record of a given kind as JSON.
type SlotModel struct {
	Kind    string `gorm:"primaryKey"`
	Caller  string `gorm:"primaryKey"`
	Payload string `gorm:"type:jsonb;not null"`
}

func (SlotModel) TableName() string {
	return "slots"
}

// SlotStore implements record.SlotStorage for one entity kind.
type SlotStore[T any] struct {
	db   *gorm.DB
	kind string
}

var _ record.SlotStorage[struct{}] = (*SlotStore[struct{}])(nil)

func NewSlotStore[T any](db *gorm.DB, kind string) *SlotStore[T] {
	return &SlotStore[T]{db: db, kind: kind}
}

func (s *SlotStore[T]) GetSlot(ctx context.Context, caller string) (T, bool, error) {
	var v T
	var model SlotModel
	err := s.db.WithContext(ctx).Where("kind = ? AND caller = ?", s.kind, caller).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("postgres: get %s slot: %w", s.kind, err)
	}
	if err := json.Unmarshal([]byte(model.Payload), &v); err != nil {
		return v, false, fmt.Errorf("postgres: decode %s slot: %w", s.kind, err)
	}
	return v, true, nil
}

func (s *SlotStore[T]) PutSlot(ctx context.Context, caller string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("postgres: encode %s slot: %w", s.kind, err)
	}
	model := SlotModel{Kind: s.kind, Caller: caller, Payload: string(payload)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "caller"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: put %s slot: %w", s.kind, err)
	}
	return nil
}

func (s *SlotStore[T]) RemoveSlot(ctx context.Context, caller string) (bool, error) {
	res := s.db.WithContext(ctx).Where("kind = ? AND caller = ?", s.kind, caller).Delete(&SlotModel{})
	if res.Error != nil {
		return false, fmt.Errorf("postgres: delete %s slot: %w", s.kind, res.Error)
	}
	return res.RowsAffected > 0, nil
}
