package models

import (
	"ticketing/src/types"
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	CategoryID       uint      `gorm:"not null;index" json:"category_id"`
	EventDate        time.Time `gorm:"index" json:"event_date"`
	TicketPrice      float64   `gorm:"not null;check:chk_events_ticket_price,ticket_price > 0" json:"ticket_price"`
	AvailableTickets int       `gorm:"not null;default:0;check:chk_events_available_tickets,available_tickets >= 0" json:"available_tickets"`

	// Derived from AvailableTickets when the row is loaded.
	Status types.Availability `gorm:"-" json:"availability,omitempty"`

	Category *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	Tickets  []Ticket  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tickets,omitempty"`

	types.Timestamps
}

func (e *Event) Availability() types.Availability {
	switch {
	case e.AvailableTickets == 0:
		return types.AVAILABILITY_SOLDOUT
	case e.AvailableTickets < types.LOW_TICKET_THRESHOLD:
		return types.AVAILABILITY_LOW
	default:
		return types.AVAILABILITY_AVAILABLE
	}
}

func (e *Event) AfterFind(tx *gorm.DB) error {
	e.Status = e.Availability()
	return nil
}
