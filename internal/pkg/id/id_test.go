package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("New generates valid unique UUIDs", t, func() {
		a := New()
		b := New()
		So(IsValid(a), ShouldBeTrue)
		So(IsValid(b), ShouldBeTrue)
		So(a, ShouldNotEqual, b)

		So(IsValid("not-a-uuid"), ShouldBeFalse)
	})
}

func TestConversationID(t *testing.T) {
	Convey("NewConversationID generates ids matching the scheme", t, func() {
		cid := NewConversationID()
		So(IsConversationID(cid), ShouldBeTrue)
		So(cid, ShouldStartWith, "conv-")

		Convey("two ids in the same instant do not collide", func() {
			So(NewConversationID(), ShouldNotEqual, NewConversationID())
		})
	})

	Convey("IsConversationID rejects malformed ids", t, func() {
		So(IsConversationID(""), ShouldBeFalse)
		So(IsConversationID("conv-"), ShouldBeFalse)
		So(IsConversationID("chat-1700000000000-ab12cd34"), ShouldBeFalse)
		So(IsConversationID("conv-notanumber-ab12cd34"), ShouldBeFalse)
		So(IsConversationID("conv-1700000000000-xyz"), ShouldBeFalse)
		So(IsConversationID("conv-1700000000000-zzzzzzzz"), ShouldBeFalse)
		So(IsConversationID("conv-1700000000000-ab12cd34-extra"), ShouldBeFalse)
	})
}
