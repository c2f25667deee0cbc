package types

import (
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type Availability string

const (
	AVAILABILITY_AVAILABLE Availability = "available"
	AVAILABILITY_LOW       Availability = "low"
	AVAILABILITY_SOLDOUT   Availability = "soldout"
)

// Events with fewer tickets left than this are reported as running low.
const LOW_TICKET_THRESHOLD = 5

type EventSort string

const (
	SORT_DATE  EventSort = "date"
	SORT_TITLE EventSort = "title"
	SORT_PRICE EventSort = "price"
)

type EventQueryFilters struct {
	Search       string     `form:"search"`
	CategoryID   *uint      `form:"category_id"`
	StartDate    *time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate      *time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
	Availability string     `form:"availability"`
	Sort         string     `form:"sort"`
	Dir          string     `form:"dir"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PurchaseReferenceParams struct {
	Reference string `uri:"reference" binding:"required,uuid"`
}

type CategoryRequestBody struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type EventRequestBody struct {
	Title            string    `json:"title" validate:"required"`
	CategoryID       uint      `json:"category_id" validate:"required"`
	EventDate        time.Time `json:"event_date" validate:"required"`
	TicketPrice      float64   `json:"ticket_price" validate:"gt=0"`
	AvailableTickets int       `json:"available_tickets" validate:"gte=0"`
}

type PurchaseRequestBody struct {
	Quantity   int    `json:"quantity" validate:"gte=1"`
	GuestName  string `json:"guest_name" validate:"required"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
}

type EventsOverview struct {
	TotalEvents     int64 `json:"total_events"`
	TotalCategories int64 `json:"total_categories"`
	LowTicketEvents int64 `json:"low_ticket_events"`
}

type PurchaseQuote struct {
	EventID          uint    `json:"event_id"`
	EventTitle       string  `json:"event_title"`
	AvailableTickets int     `json:"available_tickets"`
	TicketPrice      float64 `json:"ticket_price"`
}

type ClearHistoryResult struct {
	Tickets   int64 `json:"tickets"`
	Purchases int64 `json:"purchases"`
}
