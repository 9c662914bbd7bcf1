package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJSON(t *testing.T) {
	Convey("Given a response recorder", t, func() {
		w := httptest.NewRecorder()

		Convey("When writing a failure envelope", func() {
			err := WriteJSON(w, http.StatusNotFound, GeneralError(errors.New("Club not found")))

			Convey("Then status, content type and body match", func() {
				So(err, ShouldBeNil)
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
				So(w.Body.String(), ShouldEqual, `{"success":false,"error":"Club not found"}`+"\n")
			})
		})

		Convey("When writing a success message", func() {
			So(WriteJSON(w, http.StatusOK, Message("done")), ShouldBeNil)

			Convey("Then the error key is omitted", func() {
				So(w.Body.String(), ShouldEqual, `{"success":true,"message":"done"}`+"\n")
			})
		})
	})
}

func TestValidationError(t *testing.T) {
	Convey("Given a struct missing required fields", t, func() {
		type payload struct {
			Name  *string `validate:"required"`
			Count int     `validate:"min=1"`
		}
		err := validator.New().Struct(payload{})
		So(err, ShouldNotBeNil)

		var verrs validator.ValidationErrors
		So(errors.As(err, &verrs), ShouldBeTrue)

		env := ValidationError(verrs)

		Convey("Then every field error is joined into one message", func() {
			So(env.Success, ShouldBeFalse)
			So(env.Error, ShouldEqual, "Name is required, Count is invalid")
		})

		Convey("Then it encodes as a failure envelope", func() {
			b, err := json.Marshal(env)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"success":false,"error":"Name is required, Count is invalid"}`)
		})
	})
}
