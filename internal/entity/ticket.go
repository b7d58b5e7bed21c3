package entity

type Ticket struct {
	Base
	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`

	OwnerAddress string
	TicketNumber int
	MintTx       string `gorm:"uniqueIndex"`
	Metadata     Map
	Used         bool
}
