package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"chatdesk/internal/model"
)

// Listing pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// BuildListQuery translates the user-supplied listing parameters into a
// store query. now is passed in so date-range bucketing is deterministic
// under test; callers pass time.Now().
func BuildListQuery(q model.ListQuery, now time.Time) (filter bson.M, sort bson.D, skip, limit int64) {
	filter = bson.M{"user_id": q.UserID}

	if start, ok := dateRangeStart(q.DateRange, now); ok {
		filter["createdAt"] = bson.M{"$gte": start}
	}

	if t := model.ConversationType(q.ConversationType); q.ConversationType != "" && q.ConversationType != "all" && t.IsValid() {
		filter["type"] = t
	}

	if q.SearchTerm != "" {
		// Substring match, not a user-supplied pattern: quote regex
		// metacharacters before handing the term to the store.
		pattern := regexp.QuoteMeta(q.SearchTerm)
		regex := bson.M{"$regex": pattern, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"preview": regex},
			bson.M{"messages.content": regex},
		}
	}

	switch q.SortBy {
	case "oldest":
		sort = bson.D{bson.E{Key: "createdAt", Value: 1}}
	case "duration":
		sort = bson.D{bson.E{Key: "duration", Value: -1}}
	case "messages":
		sort = bson.D{bson.E{Key: "messageCount", Value: -1}}
	default: // newest
		sort = bson.D{bson.E{Key: "createdAt", Value: -1}}
	}

	page := q.Page
	if page < 1 {
		page = DefaultPage
	}
	limit = int64(q.Limit)
	if limit < 1 {
		limit = DefaultLimit
	}
	skip = int64(page-1) * limit

	return filter, sort, skip, limit
}

// dateRangeStart maps a date-range bucket to a lower bound on createdAt.
// "all" and unrecognized values impose no bound. today is local midnight;
// month/quarter/year are calendar offsets, not fixed day counts.
func dateRangeStart(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "quarter":
		return now.AddDate(0, -3, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
