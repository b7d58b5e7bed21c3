package entity

import (
	"database/sql"
	"time"
)

type Event struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Title         string
	Description   string `gorm:"type:longtext"`
	Date          time.Time
	Location      string
	OrganizerName string
	ImageURL      string

	IsFree           bool
	Price            float64
	TotalTickets     int
	RemainingTickets int

	// CollectionAddress is set exactly once, when the ticket collection has
	// been provisioned on chain.
	CollectionAddress sql.NullString `gorm:"unique"`
	CollectionConfig  Map
}
