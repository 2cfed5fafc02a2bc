package storage

import (
	"context"
	"strings"

	"swiftpost/internal/model"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres keeps entries in the console_storage table, one row per (origin, key).
// Used when several consoles share a kiosk database.
type Postgres struct {
	db     *gorm.DB
	origin string
}

func NewPostgres(db *gorm.DB, origin string) *Postgres {
	return &Postgres{db: db, origin: origin}
}

func (p *Postgres) Available() bool { return true }

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.StorageEntry
	err := p.db.WithContext(ctx).
		Where("origin = ? AND key = ?", p.origin, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return entry.Value, true, nil
}

// Set upserts, so a single statement replaces the whole value
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	entry := model.StorageEntry{Origin: p.origin, Key: key, Value: value}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "origin"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	return errors.Wrapf(err, "set %q", key)
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	err := p.db.WithContext(ctx).
		Where("origin = ? AND key = ?", p.origin, key).
		Delete(&model.StorageEntry{}).Error
	return errors.Wrapf(err, "delete %q", key)
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := p.db.WithContext(ctx).
		Model(&model.StorageEntry{}).
		Where("origin = ? AND key LIKE ? ESCAPE '\\'", p.origin, escapeLike(prefix)+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list keys %q", prefix)
	}
	return keys, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
