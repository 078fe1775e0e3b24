// Package user holds the User entity: the accounts that act on orders and earn
// commissions on them.
package user

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned by Validate for a User built without a constructor.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a staff account. PasswordHash is opaque to the domain.
type User struct {
	id                    kernel.ID
	username              string
	fullName              string
	role                  identity.Role
	passwordHash          string
	defaultCommissionRate *kernel.Rate
	isActive              bool

	isConstructed bool
}

// NewUser creates an active, unpersisted user.
func NewUser(
	username, fullName string,
	role identity.Role,
	passwordHash string,
	defaultCommissionRate *kernel.Rate,
) (*User, error) {
	u := &User{
		fullName:      strings.TrimSpace(fullName),
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setUsername(username),
		u.setRole(role),
		u.setPasswordHash(passwordHash),
		u.setDefaultCommissionRate(defaultCommissionRate),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(
	id kernel.ID,
	username, fullName string,
	role identity.Role,
	passwordHash string,
	defaultCommissionRate *kernel.Rate,
	isActive bool,
) (*User, error) {
	u, err := NewUser(username, fullName, role, passwordHash, defaultCommissionRate)
	if err != nil {
		return nil, err
	}
	if err := u.Identify(id); err != nil {
		return nil, err
	}
	u.isActive = isActive
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// Identify records the identity storage assigned to the user.
func (u *User) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !u.id.IsZero() && !u.id.IsEqual(id) {
		return errs.NewValueIsInvalidError("user is already identified as " + u.id.String())
	}
	u.id = id
	return nil
}

func (u *User) ID() kernel.ID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) Role() identity.Role {
	return u.role
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

// DefaultCommissionRate returns the user's standing rate, if one is configured.
func (u *User) DefaultCommissionRate() (kernel.Rate, bool) {
	if u.defaultCommissionRate == nil {
		return kernel.Rate{}, false
	}
	return *u.defaultCommissionRate, true
}

func (u *User) IsActive() bool {
	return u.isActive
}

// Deactivate blocks future logins. Existing orders keep referencing the user.
func (u *User) Deactivate() {
	u.isActive = false
}

func (u *User) Activate() {
	u.isActive = true
}

// ToggleActive flips the activity flag and returns the new value.
func (u *User) ToggleActive() bool {
	u.isActive = !u.isActive
	return u.isActive
}

// Rename changes the login name. Uniqueness is checked by the caller against storage.
func (u *User) Rename(username string) error {
	return u.setUsername(username)
}

func (u *User) ChangeFullName(fullName string) {
	u.fullName = strings.TrimSpace(fullName)
}

// ChangeRole moves the user to another role. Commissions already recorded keep the
// role held at the time.
func (u *User) ChangeRole(role identity.Role) error {
	return u.setRole(role)
}

func (u *User) ChangePasswordHash(hash string) error {
	return u.setPasswordHash(hash)
}

// ChangeDefaultCommissionRate replaces the standing rate; nil clears it.
func (u *User) ChangeDefaultCommissionRate(rate *kernel.Rate) error {
	return u.setDefaultCommissionRate(rate)
}

// Actor returns the identity snapshot used for authorization decisions.
func (u *User) Actor() (*identity.Actor, error) {
	return identity.NewActor(u.id, u.role)
}

// IsActiveDeveloper reports whether the user may be assigned to an order.
func (u *User) IsActiveDeveloper() bool {
	return u.isActive && u.role == identity.Developer
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	u.username = username
	return nil
}

func (u *User) setRole(role identity.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setDefaultCommissionRate(rate *kernel.Rate) error {
	if rate == nil {
		u.defaultCommissionRate = nil
		return nil
	}
	if err := rate.Validate(); err != nil {
		return err
	}
	r := *rate
	u.defaultCommissionRate = &r
	return nil
}
