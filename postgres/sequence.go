package postgres

import (
	"agenda/record"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceModel holds the next identifier to issue for one table.
type SequenceModel struct {
	Name string `gorm:"primaryKey"`
	Next int64  `gorm:"not null"`
}

func (SequenceModel) TableName() string {
	return "sequences"
}

func nextID(ctx context.Context, db *gorm.DB, name string) (record.ID, error) {
	var model SequenceModel
	err := db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("postgres: read sequence %s: %w", name, err)
	}
	return record.ID(model.Next), nil
}

func setNextID(ctx context.Context, db *gorm.DB, name string, next record.ID) error {
	model := SequenceModel{Name: name, Next: int64(next)}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"next"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: write sequence %s: %w", name, err)
	}
	return nil
}

func upsertByID(ctx context.Context, db *gorm.DB, model interface{}) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}

func removeByID(ctx context.Context, db *gorm.DB, model interface{}, id record.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", int64(id)).Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func containsID(ctx context.Context, db *gorm.DB, model interface{}, id record.ID) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", int64(id)).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
