package scopes

import (
	"strings"
	"ticketing/src/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// TitleContains matches the search term literally, ignoring case.
func TitleContains(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.ToLower(strings.TrimSpace(search))
		if term == "" {
			return db
		}
		return db.Where(`LOWER(events.title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(term)+"%")
	}
}

func InCategory(id *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where("events.category_id = ?", *id)
	}
}

// EventDateBetween treats end as a whole calendar day.
func EventDateBetween(start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where("events.event_date >= ?", start.UTC())
		}
		if end != nil {
			db = db.Where("events.event_date < ?", end.UTC().AddDate(0, 0, 1))
		}
		return db
	}
}

// WithAvailability ignores buckets it does not know.
func WithAvailability(bucket string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch types.Availability(strings.ToLower(strings.TrimSpace(bucket))) {
		case types.AVAILABILITY_AVAILABLE:
			return db.Where("events.available_tickets > 0")
		case types.AVAILABILITY_LOW:
			return db.Where("events.available_tickets > 0 AND events.available_tickets < ?", types.LOW_TICKET_THRESHOLD)
		case types.AVAILABILITY_SOLDOUT:
			return db.Where("events.available_tickets = 0")
		}
		return db
	}
}

func OrderEvents(sort, dir string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := "events.event_date"
		switch types.EventSort(strings.ToLower(sort)) {
		case types.SORT_TITLE:
			column = "events.title"
		case types.SORT_PRICE:
			column = "events.ticket_price"
		}
		desc := dir != "" && !strings.EqualFold(dir, "asc")
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: column, Raw: true}, Desc: desc}).
			Order("events.id asc")
	}
}
