package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// CustomerRefKind tags which variant a CustomerRef holds.
type CustomerRefKind int

// CustomerRef variants.
const (
	RefEmbedded CustomerRefKind = iota
	RefURL
)

// CustomerRef is either an embedded Customer or an opaque URL pointing at
// one, never both. The zero value is an embedded empty customer.
type CustomerRef struct {
	kind     CustomerRefKind
	customer Customer
	url      string
}

// Embedded wraps a full customer record.
func Embedded(c Customer) CustomerRef {
	return CustomerRef{kind: RefEmbedded, customer: c}
}

// Reference wraps a customer URL that has not been resolved.
func Reference(url string) CustomerRef {
	return CustomerRef{kind: RefURL, url: url}
}

// Kind reports the variant.
func (r CustomerRef) Kind() CustomerRefKind { return r.kind }

// Customer returns the embedded record; ok is false for references.
func (r CustomerRef) Customer() (Customer, bool) {
	if r.kind != RefEmbedded {
		return Customer{}, false
	}
	return r.customer, true
}

// URL returns the reference; ok is false for embedded records.
func (r CustomerRef) URL() (string, bool) {
	if r.kind != RefURL {
		return "", false
	}
	return r.url, true
}

// DisplayName returns the embedded customer's name, or "N/A" when the
// reference is unresolved or the name is blank.
func (r CustomerRef) DisplayName() string {
	c, ok := r.Customer()
	if !ok {
		return NotAvailable
	}
	if name := c.DisplayName(); name != "" {
		return name
	}
	return NotAvailable
}

// NotAvailable is shown in place of customer fields that cannot be displayed.
const NotAvailable = "N/A"

// MarshalJSON encodes an embedded customer as an object and a reference as a string.
func (r CustomerRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RefURL:
		return json.Marshal(r.url)
	default:
		return json.Marshal(r.customer)
	}
}

// UnmarshalJSON accepts the two shapes MarshalJSON produces.
func (r *CustomerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*r = Reference(url)
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var c Customer
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*r = Embedded(c)
		return nil
	}
	return errors.New("customer must be an object or a string")
}

// TrainingLinks holds the optional hypermedia references of a training.
type TrainingLinks struct {
	Customer *Link `json:"customer,omitempty"`
	Training *Link `json:"training,omitempty"`
}

// Training is the canonical training record.
type Training struct {
	ID       int64         `json:"id"`
	Date     string        `json:"date"`
	Duration int           `json:"duration"`
	Activity string        `json:"activity"`
	Customer CustomerRef   `json:"customer"`
	Links    TrainingLinks `json:"_links"`
}

// TrainingDraft is the create/edit form for a training. Customer is a
// selection reference: the chosen customer's self link or its bare id.
type TrainingDraft struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"`
}

// Validate rejects drafts with a blank or zero field.
func (d TrainingDraft) Validate() error {
	switch {
	case strings.TrimSpace(d.Date) == "":
		return ErrMissingField("date")
	case d.Duration <= 0:
		return ErrMissingField("duration")
	case strings.TrimSpace(d.Activity) == "":
		return ErrMissingField("activity")
	case strings.TrimSpace(d.Customer) == "":
		return ErrMissingField("customer")
	}
	return nil
}

// NewTraining is the body POSTed to the backend; Customer is the full
// customer URL the backend links the training to.
type NewTraining struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"`
}
