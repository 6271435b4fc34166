// Package model contains domain models passed between layers.
package model

import "strings"

// Link is a hypermedia reference. By backend convention the trailing path
// segment of Href is the target resource's identifier.
type Link struct {
	Href string `json:"href"`
}

// CustomerLinks holds the relation references attached to a customer.
type CustomerLinks struct {
	Self      Link `json:"self"`
	Trainings Link `json:"trainings"`
	Customer  Link `json:"customer"`
}

// Customer is the canonical customer record.
type Customer struct {
	ID            int64         `json:"id"`
	FirstName     string        `json:"firstname"`
	LastName      string        `json:"lastname"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	StreetAddress string        `json:"streetaddress"`
	Postcode      string        `json:"postcode"`
	City          string        `json:"city"`
	Links         CustomerLinks `json:"_links"`
}

// EmptyCustomer returns the fallback record used when a training carries no
// usable customer: all strings empty, id 0.
func EmptyCustomer() Customer {
	return Customer{}
}

// DisplayName joins first and last name.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CustomerPatch is a typed partial update. Nil fields are left untouched.
type CustomerPatch struct {
	FirstName     *string `json:"firstname,omitempty"`
	LastName      *string `json:"lastname,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	StreetAddress *string `json:"streetaddress,omitempty"`
	Postcode      *string `json:"postcode,omitempty"`
	City          *string `json:"city,omitempty"`
}

// Apply returns c with every non-nil patch field written over it.
func (p CustomerPatch) Apply(c Customer) Customer {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.FirstName, p.FirstName)
	set(&c.LastName, p.LastName)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.StreetAddress, p.StreetAddress)
	set(&c.Postcode, p.Postcode)
	set(&c.City, p.City)
	return c
}

// IsEmpty reports whether the patch changes nothing.
func (p CustomerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.StreetAddress == nil && p.Postcode == nil && p.City == nil
}

// CustomerInput is the body sent to the backend when creating or replacing a
// customer. Identity and links are owned by the backend.
type CustomerInput struct {
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
}

// InputOf strips identity and links from c.
func InputOf(c Customer) CustomerInput {
	return CustomerInput{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		StreetAddress: c.StreetAddress,
		Postcode:      c.Postcode,
		City:          c.City,
	}
}

// Validate checks the fields a customer cannot be saved without.
func (in CustomerInput) Validate() error {
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return ErrMissingField("firstname")
	case strings.TrimSpace(in.LastName) == "":
		return ErrMissingField("lastname")
	}
	return nil
}
