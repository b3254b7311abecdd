package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored document.
type Entry struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:jsonb;not null;default:'{}'::jsonb"`
	UpdatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Entry) TableName() string { return "storage_entries" }

// Postgres stores documents in the storage_entries table. The schema is
// created by db.AutoMigrateAndIndexes.
type Postgres struct {
	DB *gorm.DB
}

func NewPostgres(gdb *gorm.DB) *Postgres {
	return &Postgres{DB: gdb}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	if err := p.DB.WithContext(ctx).Where("key = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select %q: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
