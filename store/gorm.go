package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a *gorm.DB connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db in the record-store contract.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(q Query, dest interface{}) (int64, error) {
	tx := s.db.Table(q.Table)
	if !q.IncludeDeleted {
		tx = tx.Where("delete_at IS NULL")
	}

	for _, f := range q.Filters {
		var err error
		tx, err = applyFilter(tx, f)
		if err != nil {
			return 0, err
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}

	for _, o := range q.Order {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", o.Field, dir))
	}

	if q.Range != nil {
		tx = tx.Offset(q.Range.From).Limit(q.Range.To - q.Range.From + 1)
	}

	if err := tx.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyFilter(tx *gorm.DB, f Filter) (*gorm.DB, error) {
	switch f.Op {
	case OpEq:
		return tx.Where(f.Field+" = ?", f.Value), nil
	case OpIn:
		return tx.Where(f.Field+" IN ?", f.Value), nil
	case OpLt:
		return tx.Where(f.Field+" < ?", f.Value), nil
	case OpLte:
		return tx.Where(f.Field+" <= ?", f.Value), nil
	case OpGte:
		return tx.Where(f.Field+" >= ?", f.Value), nil
	case OpContainsAny:
		needle, _ := f.Value.(string)
		pattern := "%" + strings.ToLower(needle) + "%"
		clauses := make([]string, 0, len(f.Fields))
		args := make([]interface{}, 0, len(f.Fields))
		for _, field := range f.Fields {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", field))
			args = append(args, pattern)
		}
		return tx.Where("("+strings.Join(clauses, " OR ")+")", args...), nil
	default:
		return nil, fmt.Errorf("unsupported filter op: %s", f.Op)
	}
}

func (s *GormStore) Insert(table string, row interface{}) error {
	return s.db.Table(table).Create(row).Error
}

func (s *GormStore) Update(table, keyColumn string, key interface{}, patch map[string]interface{}) error {
	// Existence check first so a no-op patch still distinguishes a missing
	// key (MySQL reports zero affected rows for identical values).
	var count int64
	if err := s.db.Table(table).
		Where("delete_at IS NULL").
		Where(keyColumn+" = ?", key).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	return s.db.Table(table).
		Where(keyColumn+" = ?", key).
		Updates(patch).Error
}

func (s *GormStore) Delete(table, keyColumn string, key interface{}) error {
	res := s.db.Table(table).
		Where("delete_at IS NULL").
		Where(keyColumn+" = ?", key).
		Update("delete_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
