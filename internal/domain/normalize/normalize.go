// Package normalize converts loosely-typed backend records into canonical
// models. Every function here is pure and never fails on a single record:
// unusable fields are replaced by defaults.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/trainerdesk/internal/domain/link"
	"github.com/okian/trainerdesk/internal/domain/model"
)

// secureScheme is the only scheme a training's customer link may use.
const secureScheme = "https://"

// Training normalizes one raw training record.
func Training(raw json.RawMessage) model.Training {
	obj := decodeObject(raw)
	links := decodeObject(obj["_links"])

	t := model.Training{
		ID:       obj.number("id"),
		Date:     obj.str("date"),
		Duration: int(max(obj.number("duration"), 0)),
		Activity: obj.str("activity"),
		Customer: customerRef(obj["customer"]),
	}

	self := links.link("training")
	if self == nil {
		self = links.link("self")
	}
	t.Links.Training = self
	if t.ID == 0 && self != nil {
		t.ID = link.ID(self.Href)
	}

	if cl := links.link("customer"); cl != nil && strings.HasPrefix(cl.Href, secureScheme) {
		t.Links.Customer = cl
	}
	return t
}

// Trainings normalizes a flat JSON array of training records. Only a body
// that is not an array is an error.
func Trainings(body []byte) ([]model.Training, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("%w: trainings: %v", ErrMalformed, err)
	}
	out := make([]model.Training, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Training(raw))
	}
	return out, nil
}

// customerRef resolves the union-typed customer field.
func customerRef(raw json.RawMessage) model.CustomerRef {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) > 0 && raw[0] == '{':
		return model.Embedded(Customer(raw))
	case len(raw) > 0 && raw[0] == '"':
		var url string
		if err := json.Unmarshal(raw, &url); err == nil {
			return model.Reference(url)
		}
	}
	return model.Embedded(model.EmptyCustomer())
}

// Customer normalizes one raw customer resource. A missing id is recovered
// from the self link.
func Customer(raw json.RawMessage) model.Customer {
	obj := decodeObject(raw)
	links := decodeObject(obj["_links"])

	c := model.Customer{
		ID:            obj.number("id"),
		FirstName:     obj.str("firstname"),
		LastName:      obj.str("lastname"),
		Email:         obj.str("email"),
		Phone:         obj.str("phone"),
		StreetAddress: obj.str("streetaddress"),
		Postcode:      obj.str("postcode"),
		City:          obj.str("city"),
		Links: model.CustomerLinks{
			Self:      linkValue(links.link("self")),
			Trainings: linkValue(links.link("trainings")),
			Customer:  linkValue(links.link("customer")),
		},
	}
	if c.ID == 0 {
		c.ID = link.ID(c.Links.Self.Href)
	}
	return c
}

// CustomerCollection reads the customers embedded in a HAL collection
// response. A collection without the embedded key is empty.
func CustomerCollection(body []byte) ([]model.Customer, error) {
	obj := decodeObject(body)
	if obj == nil {
		return nil, fmt.Errorf("%w: customers: expected an object", ErrMalformed)
	}
	embedded := decodeObject(obj["_embedded"])

	var raws []json.RawMessage
	if list, ok := embedded["customers"]; ok {
		if err := json.Unmarshal(list, &raws); err != nil {
			return nil, fmt.Errorf("%w: customers: %v", ErrMalformed, err)
		}
	}
	out := make([]model.Customer, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Customer(raw))
	}
	return out, nil
}
