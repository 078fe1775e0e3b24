package commands

import (
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/pkg/errs"
	"strings"
	"unicode/utf8"
)

// Account constraints shared by the user management commands. bcrypt ignores
// everything past 72 bytes, so longer passwords are refused instead of truncated.
const (
	minUsernameLength = 3
	maxUsernameLength = 80
	minPasswordLength = 6
	maxPasswordLength = 72
)

// authorizeUserAdministration lets only super admins manage accounts.
func authorizeUserAdministration(actor *identity.Actor, action string) error {
	if actor.Validate() != nil {
		return errs.NewPermissionDeniedError(action, "not authenticated")
	}
	if actor.Role() != identity.SuperAdmin {
		return errs.NewPermissionDeniedError(action, "only a super admin manages users")
	}
	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return errs.NewValueIsOutOfRangeError("username length", n, minUsernameLength, maxUsernameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, minPasswordLength, maxPasswordLength)
	}
	return nil
}
