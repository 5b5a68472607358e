package address

// Address is an immutable value object. It has no identity of its own and is
// embedded as columns on the entity that owns it; two addresses are equal
// when all their fields are equal.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

func New(city, street, zipcode string) Address {
	return Address{City: city, Street: street, Zipcode: zipcode}
}

// IsZero reports whether the address carries no data at all.
func (a Address) IsZero() bool {
	return a == Address{}
}
