package models

import "ticketing/src/types"

type Category struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	Events []Event `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"events,omitempty"`

	// Populated on detail reads only.
	EventCount *int64 `gorm:"-" json:"event_count,omitempty"`

	types.Timestamps
}
