package models

type Ticket struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	SeatNumber string  `json:"seat_number,omitempty"`
	PurchaseID uint    `gorm:"not null;index" json:"purchase_id"`
	EventID    uint    `gorm:"not null;index" json:"event_id"`
	Price      float64 `gorm:"not null" json:"price"`

	Purchase *Purchase `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Event    *Event    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"event,omitempty"`
}
