package commands

import (
	"errors"
	"fmt"

	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

const (
	// PublicKeyAvailable is the broadcast value announcing a new signing key.
	PublicKeyAvailable = "AVAILABLE"

	// AuthServiceName is the discovery name of the auth service.
	AuthServiceName = "auth"
)

var ErrRefreshPublicKeyCommandIsNotConstructed = errors.New(
	"RefreshPublicKeyCommand must be created via NewRefreshPublicKeyCommand constructor",
)

// RefreshPublicKeyCommand reacts to the auth service announcing a key.
type RefreshPublicKeyCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRefreshPublicKeyCommand accepts only the AVAILABLE announcement.
func NewRefreshPublicKeyCommand(announcement string) (RefreshPublicKeyCommand, error) {
	if announcement != PublicKeyAvailable {
		return RefreshPublicKeyCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"public_key",
			fmt.Errorf("%q is not %s", announcement, PublicKeyAvailable),
		)
	}

	return RefreshPublicKeyCommand{guard: guard.NewConstructorGuard()}, nil
}

func (c RefreshPublicKeyCommand) Validate() error {
	return c.guard.Validate(ErrRefreshPublicKeyCommandIsNotConstructed)
}
