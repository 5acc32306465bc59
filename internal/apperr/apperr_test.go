package apperr

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	Convey("errors carry a kind but render only their message", t, func() {
		err := Validation("message is required")
		So(err.Error(), ShouldEqual, "message is required")
		So(errors.Is(err, ErrValidation), ShouldBeTrue)
		So(errors.Is(err, ErrNotFound), ShouldBeFalse)

		err = NotFound("conversation not found")
		So(err.Error(), ShouldEqual, "conversation not found")
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)

		err = InvalidState("previous message is not from user")
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)

		err = Upstream(errors.New("failed to get response from AI service"))
		So(err.Error(), ShouldEqual, "failed to get response from AI service")
		So(errors.Is(err, ErrUpstream), ShouldBeTrue)

		err = Store(errors.New("write failed"))
		So(errors.Is(err, ErrStore), ShouldBeTrue)
	})
}
