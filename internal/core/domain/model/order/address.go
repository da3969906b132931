package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a ShippingAddress was not
// created through NewShippingAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsInvalidError("shipping address must be created via NewShippingAddress")

// ShippingAddress is the destination captured from the marketplace order
// document. It is the reference the carrier response is validated against:
// a label whose recipient does not match this address must never be used.
type ShippingAddress struct {
	firstName  string
	lastName   string
	street     string
	city       string
	province   string
	postalCode string

	guard guard.ConstructorGuard
}

// NewShippingAddress creates a validated shipping address. Name and postal
// code are mandatory because they drive the structural validation gate;
// street and city are mandatory because the carrier rejects blank ones.
func NewShippingAddress(firstName, lastName, street, city, province, postalCode string) (ShippingAddress, error) {
	switch {
	case firstName == "" && lastName == "":
		return ShippingAddress{}, errs.NewValueIsRequiredError("recipient name")
	case street == "":
		return ShippingAddress{}, errs.NewValueIsRequiredError("street")
	case city == "":
		return ShippingAddress{}, errs.NewValueIsRequiredError("city")
	case postalCode == "":
		return ShippingAddress{}, errs.NewValueIsRequiredError("postal code")
	}

	return ShippingAddress{
		firstName:  firstName,
		lastName:   lastName,
		street:     street,
		city:       city,
		province:   province,
		postalCode: postalCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was constructed through NewShippingAddress.
func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns "First Last" as it is sent to the carrier.
func (a ShippingAddress) FullName() string {
	return strings.TrimSpace(a.firstName + " " + a.lastName)
}

// Street returns the first street line.
func (a ShippingAddress) Street() string {
	return a.street
}

// City returns the destination city.
func (a ShippingAddress) City() string {
	return a.city
}

// Province returns the destination province or state code.
func (a ShippingAddress) Province() string {
	return a.province
}

// PostalCode returns the postal code as captured, spacing preserved.
func (a ShippingAddress) PostalCode() string {
	return a.postalCode
}

// MatchesRecipient compares a recipient name and postal code reported by the
// carrier against this address. Postal codes are compared with spacing and
// case removed; the name matches when the order's full name appears in the
// carrier's recipient field, which may carry extra text.
func (a ShippingAddress) MatchesRecipient(name, postalCode string) bool {
	return normalizePostal(postalCode) == normalizePostal(a.postalCode) &&
		strings.Contains(strings.ToUpper(name), strings.ToUpper(a.FullName()))
}

func normalizePostal(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}
