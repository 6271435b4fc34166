package normalize_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTraining(t *testing.T) {
	Convey("Given raw training records", t, func() {
		Convey("When the id is missing but the self reference ends in /7", func() {
			tr := normalize.Training(json.RawMessage(`{
				"date": "2024-01-01T10:00:00.000+00:00",
				"duration": 60,
				"activity": "Spinning",
				"customer": {"firstname": "Ann", "lastname": "Lee"},
				"_links": {"training": {"href": "https://api.example.com/api/trainings/7"}}
			}`))

			Convey("Then the id is recovered from the reference", func() {
				So(tr.ID, ShouldEqual, 7)
				So(tr.Links.Training, ShouldNotBeNil)
				So(tr.Links.Training.Href, ShouldEqual, "https://api.example.com/api/trainings/7")
			})

			Convey("And the other fields are carried over", func() {
				So(tr.Date, ShouldEqual, "2024-01-01T10:00:00.000+00:00")
				So(tr.Duration, ShouldEqual, 60)
				So(tr.Activity, ShouldEqual, "Spinning")
				c, ok := tr.Customer.Customer()
				So(ok, ShouldBeTrue)
				So(c.DisplayName(), ShouldEqual, "Ann Lee")
			})
		})

		Convey("When only a self link is present", func() {
			tr := normalize.Training(json.RawMessage(`{"_links": {"self": {"href": "https://x/trainings/12"}}}`))

			Convey("Then it is used as the training reference", func() {
				So(tr.ID, ShouldEqual, 12)
			})
		})

		Convey("When an explicit id is present", func() {
			tr := normalize.Training(json.RawMessage(`{"id": 3, "_links": {"training": {"href": "https://x/trainings/7"}}}`))

			Convey("Then it wins over the reference", func() {
				So(tr.ID, ShouldEqual, 3)
			})
		})

		Convey("When the reference segment is not numeric", func() {
			tr := normalize.Training(json.RawMessage(`{"_links": {"training": {"href": "https://x/trainings/abc"}}}`))

			Convey("Then the id degrades to 0", func() {
				So(tr.ID, ShouldEqual, 0)
			})
		})

		Convey("When the customer is null", func() {
			tr := normalize.Training(json.RawMessage(`{"customer": null, "activity": "Run"}`))

			Convey("Then the empty customer is substituted", func() {
				So(tr.Customer.Kind(), ShouldEqual, model.RefEmbedded)
				c, ok := tr.Customer.Customer()
				So(ok, ShouldBeTrue)
				So(c, ShouldResemble, model.EmptyCustomer())
			})
		})

		Convey("When the customer is a number or missing", func() {
			for _, raw := range []string{`{"customer": 5}`, `{}`, `{"customer": [1,2]}`} {
				tr := normalize.Training(json.RawMessage(raw))
				c, ok := tr.Customer.Customer()
				So(ok, ShouldBeTrue)
				So(c, ShouldResemble, model.EmptyCustomer())
			}
		})

		Convey("When the customer is a URL string", func() {
			tr := normalize.Training(json.RawMessage(`{"customer": "https://x/customers/4"}`))

			Convey("Then it is kept as a reference", func() {
				u, ok := tr.Customer.URL()
				So(ok, ShouldBeTrue)
				So(u, ShouldEqual, "https://x/customers/4")
			})
		})

		Convey("When the customer link is not https", func() {
			tr := normalize.Training(json.RawMessage(`{"_links": {"customer": {"href": "http://x/customers/4"}}}`))

			Convey("Then it is dropped", func() {
				So(tr.Links.Customer, ShouldBeNil)
			})
		})

		Convey("When the customer link is https", func() {
			tr := normalize.Training(json.RawMessage(`{"_links": {"customer": {"href": "https://x/customers/4"}}}`))

			Convey("Then it is retained", func() {
				So(tr.Links.Customer, ShouldNotBeNil)
				So(tr.Links.Customer.Href, ShouldEqual, "https://x/customers/4")
			})
		})

		Convey("When fields have the wrong types", func() {
			tr := normalize.Training(json.RawMessage(`{"id": "x", "date": 5, "duration": "45", "activity": true}`))

			Convey("Then defaults are substituted and numeric strings are accepted", func() {
				So(tr.ID, ShouldEqual, 0)
				So(tr.Date, ShouldEqual, "")
				So(tr.Duration, ShouldEqual, 45)
				So(tr.Activity, ShouldEqual, "")
			})
		})

		Convey("When the duration is negative", func() {
			tr := normalize.Training(json.RawMessage(`{"duration": -30, "activity": "Run"}`))

			Convey("Then it degrades to 0", func() {
				So(tr.Duration, ShouldEqual, 0)
			})
		})

		Convey("When the record is not an object at all", func() {
			for _, raw := range []string{`null`, `"text"`, `17`, `[]`, `{broken`} {
				So(func() { normalize.Training(json.RawMessage(raw)) }, ShouldNotPanic)
				tr := normalize.Training(json.RawMessage(raw))
				So(tr.ID, ShouldEqual, 0)
				_, ok := tr.Customer.Customer()
				So(ok, ShouldBeTrue)
			}
		})
	})
}

func TestTrainings(t *testing.T) {
	Convey("Given a trainings response body", t, func() {
		Convey("When one record is malformed", func() {
			body := []byte(`[
				{"id": 1, "activity": "Run", "duration": 30},
				"garbage",
				{"activity": "Swim", "duration": 20, "_links": {"training": {"href": "https://x/trainings/oops"}}}
			]`)
			list, err := normalize.Trainings(body)

			Convey("Then the rest of the batch is still normalized", func() {
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 3)
				So(list[0].ID, ShouldEqual, 1)
				So(list[1].ID, ShouldEqual, 0)
				So(list[2].Activity, ShouldEqual, "Swim")
				So(list[2].ID, ShouldEqual, 0)
			})
		})

		Convey("When the body is not an array", func() {
			_, err := normalize.Trainings([]byte(`{"_embedded": {}}`))

			Convey("Then a malformed error is returned", func() {
				So(errors.Is(err, normalize.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the array is empty", func() {
			list, err := normalize.Trainings([]byte(`[]`))

			Convey("Then an empty, non-nil list is returned", func() {
				So(err, ShouldBeNil)
				So(list, ShouldNotBeNil)
				So(len(list), ShouldEqual, 0)
			})
		})
	})
}

func TestCustomerCollection(t *testing.T) {
	Convey("Given a customers collection", t, func() {
		Convey("When customers are embedded", func() {
			body := []byte(`{"_embedded": {"customers": [
				{"firstname": "Ann", "lastname": "Lee", "email": "ann@example.com",
				 "_links": {"self": {"href": "https://x/api/customers/11"},
				            "customer": {"href": "https://x/api/customers/11"},
				            "trainings": {"href": "https://x/api/customers/11/trainings"}}}
			]}}`)
			list, err := normalize.CustomerCollection(body)

			Convey("Then they are normalized with ids taken from self links", func() {
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 1)
				So(list[0].ID, ShouldEqual, 11)
				So(list[0].Email, ShouldEqual, "ann@example.com")
				So(list[0].Links.Trainings.Href, ShouldEqual, "https://x/api/customers/11/trainings")
			})
		})

		Convey("When the embedded key is missing", func() {
			list, err := normalize.CustomerCollection([]byte(`{"page": {}}`))

			Convey("Then the list is empty", func() {
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 0)
			})
		})

		Convey("When the body is an array", func() {
			_, err := normalize.CustomerCollection([]byte(`[]`))

			Convey("Then a malformed error is returned", func() {
				So(errors.Is(err, normalize.ErrMalformed), ShouldBeTrue)
			})
		})
	})
}
