package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Purchase struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Reference    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"reference"`
	PurchaseDate time.Time `gorm:"not null;index" json:"purchase_date"`
	GuestName    string    `gorm:"not null" json:"guest_name"`
	GuestEmail   string    `gorm:"not null" json:"guest_email"`
	TotalCost    float64   `gorm:"not null" json:"total_cost"`

	// Number of tickets, set when the purchase is loaded with its tickets.
	TicketCount int `gorm:"-" json:"quantity,omitempty"`

	Tickets []Ticket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tickets,omitempty"`
}

// Quantity is the number of tickets issued with the purchase. Tickets must
// be loaded.
func (p *Purchase) Quantity() int {
	return len(p.Tickets)
}

func (p *Purchase) AfterFind(tx *gorm.DB) error {
	p.TicketCount = p.Quantity()
	return nil
}
