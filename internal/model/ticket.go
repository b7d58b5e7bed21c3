package model

type Ticket struct {
	ID           string         `json:"id"`
	EventID      string         `json:"event_id"`
	OwnerAddress string         `json:"owner_address"`
	TicketNumber int            `json:"ticket_number"`
	MintTx       string         `json:"mint_tx"`
	Metadata     map[string]any `json:"metadata"`
	Used         bool           `json:"used"`
}

type BuyTicketRequest struct {
	EventID string `json:"event_id"`
}

type BuyTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type GetMyTicketsRequest struct {
	EventID string `json:"event_id" form:"event_id"`
}

type GetMyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}
