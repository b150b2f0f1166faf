// Package store is the policy-enforced data access layer. Every read and
// write of the policed tables goes through a Store method, and every
// method checks the authorization rule set before touching the database.
// Controllers never query these tables directly.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/models"
)

var (
	// ErrNotFound covers both "row does not exist" and "row exists but
	// is not visible to the caller". The two must be indistinguishable
	// on the public surface.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks input rejected before reaching the database.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRef marks an insert or update referencing a parent row
	// that does not exist.
	ErrInvalidRef = errors.New("referenced row does not exist")

	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("already exists")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// zeroTime resets caller-supplied timestamps so gorm fills them in.
var zeroTime = time.Time{}

type Store struct {
	db     *gorm.DB
	policy *authz.Engine
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		policy: authz.New(&roleReader{db: db}),
	}
}

// Policy exposes the engine for the advisory HTTP gate. The store itself
// remains the enforcement boundary.
func (s *Store) Policy() *authz.Engine {
	return s.policy
}

// roleReader is the privileged query path for role grants. It queries
// user_roles directly, bypassing the policed Store methods, so that
// evaluating a rule never recurses into another policy check. It is only
// ever invoked with identities taken from a verified authentication
// context.
type roleReader struct {
	db *gorm.DB
}

// HasRole reports whether a grant row matches the user and role name.
// Restaurant scope is ignored: any admin grant, whichever restaurant it
// was issued for, authorizes admin actions everywhere.
func (r *roleReader) HasRole(userID uint, role string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", ErrValidation)
	}
	return nil
}
