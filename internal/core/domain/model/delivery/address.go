package delivery

import (
	"errors"
	"strings"

	"delivery-service/internal/pkg/errs"
	"delivery-service/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the structured delivery destination. The zero value means
// "no address yet" and is accepted by NewDelivery; a constructed Address
// always has every part filled in.
type Address struct {
	city   string
	street string
	zip    string

	guard guard.ConstructorGuard
}

func NewAddress(city, street, zip string) (Address, error) {
	city, street, zip = strings.TrimSpace(city), strings.TrimSpace(street), strings.TrimSpace(zip)

	var errList []error
	if city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	if street == "" {
		errList = append(errList, errs.NewValueIsRequiredError("street"))
	}
	if zip == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zip"))
	}
	if err := errors.Join(errList...); err != nil {
		return Address{}, err
	}

	return Address{
		city:   city,
		street: street,
		zip:    zip,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// IsEmpty reports whether the address was never set.
func (a Address) IsEmpty() bool {
	return a.Validate() != nil
}

func (a Address) City() string   { return a.city }
func (a Address) Street() string { return a.street }
func (a Address) Zip() string    { return a.zip }

func (a Address) Equal(other Address) bool {
	return a.city == other.city && a.street == other.street && a.zip == other.zip
}
