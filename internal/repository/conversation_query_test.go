package repository

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"

	"chatdesk/internal/model"
)

func TestBuildListQuery(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	Convey("BuildListQuery builds the store filter", t, func() {
		Convey("the user filter is always present", func() {
			filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1"}, now)
			So(filter["user_id"], ShouldEqual, "u1")
			So(filter, ShouldNotContainKey, "createdAt")
			So(filter, ShouldNotContainKey, "type")
			So(filter, ShouldNotContainKey, "$or")
		})

		Convey("date ranges bound createdAt from below", func() {
			cases := map[string]time.Time{
				"today":   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
				"week":    now.AddDate(0, 0, -7),
				"month":   time.Date(2026, 2, 15, 14, 30, 0, 0, time.UTC),
				"quarter": time.Date(2025, 12, 15, 14, 30, 0, 0, time.UTC),
				"year":    time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
			}
			for rng, want := range cases {
				filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", DateRange: rng}, now)
				bound, ok := filter["createdAt"].(bson.M)
				So(ok, ShouldBeTrue)
				So(bound["$gte"], ShouldEqual, want)
			}
		})

		Convey("'all' and unknown ranges impose no bound", func() {
			for _, rng := range []string{"", "all", "fortnight"} {
				filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", DateRange: rng}, now)
				So(filter, ShouldNotContainKey, "createdAt")
			}
		})

		Convey("valid types filter, 'all' and invalid values do not", func() {
			filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", ConversationType: "technical"}, now)
			So(filter["type"], ShouldEqual, model.TypeTechnical)

			filter, _, _, _ = BuildListQuery(model.ListQuery{UserID: "u1", ConversationType: "all"}, now)
			So(filter, ShouldNotContainKey, "type")

			filter, _, _, _ = BuildListQuery(model.ListQuery{UserID: "u1", ConversationType: "bogus"}, now)
			So(filter, ShouldNotContainKey, "type")
		})

		Convey("search matches title, preview and message content, case-insensitive", func() {
			filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", SearchTerm: "billing"}, now)
			or, ok := filter["$or"].(bson.A)
			So(ok, ShouldBeTrue)
			So(len(or), ShouldEqual, 3)

			title := or[0].(bson.M)["title"].(bson.M)
			So(title["$regex"], ShouldEqual, "billing")
			So(title["$options"], ShouldEqual, "i")
			So(or[1].(bson.M), ShouldContainKey, "preview")
			So(or[2].(bson.M), ShouldContainKey, "messages.content")
		})

		Convey("regex metacharacters in the search term are quoted", func() {
			filter, _, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", SearchTerm: "a.b(c)*"}, now)
			or := filter["$or"].(bson.A)
			title := or[0].(bson.M)["title"].(bson.M)
			So(title["$regex"], ShouldEqual, `a\.b\(c\)\*`)
		})
	})

	Convey("BuildListQuery maps sort keys", t, func() {
		cases := map[string]bson.D{
			"":         {bson.E{Key: "createdAt", Value: -1}},
			"newest":   {bson.E{Key: "createdAt", Value: -1}},
			"oldest":   {bson.E{Key: "createdAt", Value: 1}},
			"duration": {bson.E{Key: "duration", Value: -1}},
			"messages": {bson.E{Key: "messageCount", Value: -1}},
		}
		for sortBy, want := range cases {
			_, sort, _, _ := BuildListQuery(model.ListQuery{UserID: "u1", SortBy: sortBy}, now)
			So(sort, ShouldResemble, want)
		}
	})

	Convey("BuildListQuery computes pagination", t, func() {
		Convey("defaults apply when page and limit are unset", func() {
			_, _, skip, limit := BuildListQuery(model.ListQuery{UserID: "u1"}, now)
			So(skip, ShouldEqual, 0)
			So(limit, ShouldEqual, int64(DefaultLimit))
		})

		Convey("skip advances by whole pages", func() {
			_, _, skip, limit := BuildListQuery(model.ListQuery{UserID: "u1", Page: 3, Limit: 10}, now)
			So(skip, ShouldEqual, 20)
			So(limit, ShouldEqual, 10)
		})

		Convey("non-positive values fall back to defaults", func() {
			_, _, skip, limit := BuildListQuery(model.ListQuery{UserID: "u1", Page: -2, Limit: -5}, now)
			So(skip, ShouldEqual, 0)
			So(limit, ShouldEqual, int64(DefaultLimit))
		})
	})
}
