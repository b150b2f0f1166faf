// Package authz implements the row-level authorization policy. Every
// data-store operation is classified by table and operation and checked
// against a fixed rule set before it touches the database. The policy is
// closed-world: an operation with no matching allow rule is denied.
package authz

import "errors"

// ErrDenied is returned for every denied operation. It is deliberately
// generic so callers cannot learn which rule would have allowed them.
var ErrDenied = errors.New("access denied")

// Op classifies a data-store operation.
type Op string

const (
	OpSelect Op = "select"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Policed table names.
const (
	TableRestaurants    = "restaurants"
	TableMenuCategories = "menu_categories"
	TableMenuItems      = "menu_items"
	TableUserRoles      = "user_roles"
)

// Identity is the verified caller identity. It comes from the
// authentication middleware only, never from request payloads. The zero
// value is the anonymous caller.
type Identity struct {
	UserID uint
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// RoleReader resolves role grants through a privileged query path. The
// implementation must not route its queries back through the policed
// store, or evaluating the user_roles select rule would recurse into
// itself.
type RoleReader interface {
	HasRole(userID uint, role string) (bool, error)
}

// PublicRow is a row whose select rule is a per-row visibility flag.
type PublicRow interface {
	PubliclyVisible() bool
}

// OwnedRow is a row readable by the user it belongs to.
type OwnedRow interface {
	OwnerID() uint
}

// Engine evaluates the policy rule set. It holds no mutable state and
// performs no side effects beyond role lookups through the RoleReader.
type Engine struct {
	roles RoleReader
	rules map[string]tableRules
}

type tableRules struct {
	selectRow func(e *Engine, id Identity, row any) (bool, error)
	mutate    func(e *Engine, id Identity) (bool, error)
}

func New(roles RoleReader) *Engine {
	e := &Engine{roles: roles}
	e.rules = map[string]tableRules{
		TableRestaurants:    {selectRow: selectVisible, mutate: mutateAdmin},
		TableMenuCategories: {selectRow: selectVisible, mutate: mutateAdmin},
		TableMenuItems:      {selectRow: selectVisible, mutate: mutateAdmin},
		TableUserRoles:      {selectRow: selectOwnOrAdmin, mutate: mutateAdmin},
	}
	return e
}

// CanSelect checks the per-row select rule for table. A nil return means
// the caller may read the row.
func (e *Engine) CanSelect(id Identity, table string, row any) error {
	r, ok := e.rules[table]
	if !ok || r.selectRow == nil {
		return ErrDenied
	}
	allowed, err := r.selectRow(e, id, row)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrDenied
	}
	return nil
}

// CanMutate checks the insert/update/delete rule for table.
func (e *Engine) CanMutate(id Identity, op Op, table string) error {
	if op != OpInsert && op != OpUpdate && op != OpDelete {
		return ErrDenied
	}
	r, ok := e.rules[table]
	if !ok || r.mutate == nil {
		return ErrDenied
	}
	allowed, err := r.mutate(e, id)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrDenied
	}
	return nil
}

// HasRole reports whether the caller holds the named role, regardless of
// restaurant scope. An anonymous caller holds no roles. Errors from the
// role reader fail closed.
func (e *Engine) HasRole(id Identity, role string) bool {
	if !id.Authenticated() {
		return false
	}
	ok, err := e.roles.HasRole(id.UserID, role)
	if err != nil {
		return false
	}
	return ok
}

// selectVisible: row.is_active / row.is_available, for any caller
// including anonymous. Admins get no wider read than anyone else.
func selectVisible(_ *Engine, _ Identity, row any) (bool, error) {
	p, ok := row.(PublicRow)
	if !ok {
		return false, nil
	}
	return p.PubliclyVisible(), nil
}

// selectOwnOrAdmin: row.user_id = caller OR caller holds admin.
func selectOwnOrAdmin(e *Engine, id Identity, row any) (bool, error) {
	o, ok := row.(OwnedRow)
	if !ok {
		return false, nil
	}
	if id.Authenticated() && o.OwnerID() == id.UserID {
		return true, nil
	}
	if !id.Authenticated() {
		return false, nil
	}
	return e.roles.HasRole(id.UserID, "admin")
}

// mutateAdmin: caller is authenticated and holds the admin role in any
// scope.
func mutateAdmin(e *Engine, id Identity) (bool, error) {
	if !id.Authenticated() {
		return false, nil
	}
	return e.roles.HasRole(id.UserID, "admin")
}
