package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/trainerdesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCustomerRef(t *testing.T) {
	Convey("Given a customer reference", t, func() {
		Convey("When it embeds a customer", func() {
			ref := model.Embedded(model.Customer{ID: 3, FirstName: "Ann", LastName: "Lee"})

			Convey("Then only the customer accessor succeeds", func() {
				c, ok := ref.Customer()
				So(ok, ShouldBeTrue)
				So(c.ID, ShouldEqual, 3)
				_, ok = ref.URL()
				So(ok, ShouldBeFalse)
				So(ref.Kind(), ShouldEqual, model.RefEmbedded)
				So(ref.DisplayName(), ShouldEqual, "Ann Lee")
			})

			Convey("And it encodes as an object", func() {
				b, err := json.Marshal(ref)
				So(err, ShouldBeNil)
				So(string(b), ShouldStartWith, "{")
			})
		})

		Convey("When it holds a URL", func() {
			ref := model.Reference("https://api.example.com/customers/9")

			Convey("Then only the URL accessor succeeds", func() {
				u, ok := ref.URL()
				So(ok, ShouldBeTrue)
				So(u, ShouldEqual, "https://api.example.com/customers/9")
				_, ok = ref.Customer()
				So(ok, ShouldBeFalse)
				So(ref.DisplayName(), ShouldEqual, model.NotAvailable)
			})

			Convey("And it round-trips as a string", func() {
				b, err := json.Marshal(ref)
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `"https://api.example.com/customers/9"`)

				var back model.CustomerRef
				So(json.Unmarshal(b, &back), ShouldBeNil)
				So(back.Kind(), ShouldEqual, model.RefURL)
			})
		})

		Convey("When the embedded customer has no name", func() {
			ref := model.Embedded(model.EmptyCustomer())

			Convey("Then the display name degrades to N/A", func() {
				So(ref.DisplayName(), ShouldEqual, model.NotAvailable)
			})
		})

		Convey("When decoding a number", func() {
			var ref model.CustomerRef
			err := json.Unmarshal([]byte(`42`), &ref)

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestCustomerPatch(t *testing.T) {
	Convey("Given a customer and a partial update", t, func() {
		c := model.Customer{ID: 1, FirstName: "Ann", LastName: "Lee", City: "Oulu"}
		city := "Turku"
		patch := model.CustomerPatch{City: &city}

		Convey("When the patch is applied", func() {
			out := patch.Apply(c)

			Convey("Then only the set fields change", func() {
				So(out.City, ShouldEqual, "Turku")
				So(out.FirstName, ShouldEqual, "Ann")
				So(out.ID, ShouldEqual, 1)
				So(c.City, ShouldEqual, "Oulu")
			})
		})

		Convey("Then an empty patch reports itself as such", func() {
			So(model.CustomerPatch{}.IsEmpty(), ShouldBeTrue)
			So(patch.IsEmpty(), ShouldBeFalse)
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given user input", t, func() {
		Convey("When a training draft misses its activity", func() {
			err := model.TrainingDraft{Date: "2024-01-01T10:00:00Z", Duration: 30, Customer: "5"}.Validate()

			Convey("Then a validation error is returned", func() {
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "Please fill in all the fields.")
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "activity")
			})
		})

		Convey("When a training draft has zero duration", func() {
			err := model.TrainingDraft{Date: "x", Activity: "Run", Customer: "5"}.Validate()

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When a customer has both names", func() {
			err := model.CustomerInput{FirstName: "Ann", LastName: "Lee"}.Validate()

			Convey("Then it passes", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a customer has no last name", func() {
			err := model.CustomerInput{FirstName: "Ann"}.Validate()

			Convey("Then it fails", func() {
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			})
		})
	})
}
