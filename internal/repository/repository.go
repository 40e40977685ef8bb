package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"landlord/server/internal/models"
)

var (
	// ErrNotFound covers both "no such row" and "row outside the caller's ownership scope".
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// StoreError wraps an entity store failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// lookupErr maps a single-row lookup failure onto NotFound or a store failure.
func lookupErr(resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(resource)
	}
	return storeErr("get "+resource, err)
}

// Page is an offset/limit window over a list ordered by insertion.
type Page struct {
	Skip  int
	Limit int
}

// Paging holds the server-side pagination policy.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// Page validates a requested window and clamps the limit to MaxLimit.
func (p Paging) Page(skip, limit int) (Page, error) {
	if skip < 0 {
		return Page{}, models.NewValidationError("skip", "must not be negative")
	}
	if limit < 0 {
		return Page{}, models.NewValidationError("limit", "must not be negative")
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	return Page{Skip: skip, Limit: limit}, nil
}

func (p Page) apply(tx *gorm.DB) *gorm.DB {
	return tx.Order("id ASC").Offset(p.Skip).Limit(p.Limit)
}

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Row locks held on a parent row while children are written or removed, so a
// create cannot land beside a concurrent cascade delete. The SQLite dialect
// drops them; its single connection serialises writers anyway.
var (
	lockShared    = clause.Locking{Strength: "SHARE"}
	lockExclusive = clause.Locking{Strength: "UPDATE"}
)

// ownedPropertyIDs is a subquery selecting the ids of properties owned by userID.
func ownedPropertyIDs(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Property{}).
		Select("id").
		Where("owner_id = ?", userID)
}

// inScope restricts a dependent table (one with a property_id column) to userID's properties.
func inScope(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Where("property_id IN (?)", ownedPropertyIDs(tx, userID))
}

// Ping checks that the entity store answers.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
