package model

type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Date              string    `json:"date"`
	Location          string    `json:"location"`
	OrganizerName     string    `json:"organizer_name"`
	ImageURL          string    `json:"image_url"`
	IsFree            bool      `json:"is_free"`
	Price             float64   `json:"price"`
	TotalTickets      int       `json:"total_tickets"`
	RemainingTickets  int       `json:"remaining_tickets"`
	CollectionAddress string    `json:"collection_address,omitempty"`
	CreatedBy         ShortUser `json:"created_by"`
}

type CreateEventRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	Location      string  `json:"location"`
	OrganizerName string  `json:"organizer_name"`
	ImageURL      string  `json:"image_url"`
	IsFree        bool    `json:"is_free"`
	Price         float64 `json:"price"`
	TotalTickets  int     `json:"total_tickets"`
}

type CreateEventResponse struct {
	ID                string `json:"id"`
	CollectionAddress string `json:"collection_address"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type GetEventRequest struct {
	ID string `json:"id" form:"id"`
}

type GetEventResponse Event

type GetListEventRequest struct {
	Query    string `json:"query" form:"query"`
	Upcoming bool   `json:"upcoming" form:"upcoming"`
	FreeOnly bool   `json:"free_only" form:"free_only"`
	Offset   int    `json:"offset" form:"offset"`
	Limit    int    `json:"limit" form:"limit"`
}

type GetListEventResponse struct {
	Events []Event `json:"events"`
}

type GetEventsByCreatorRequest struct {
	CreatorID string `json:"creator_id" form:"creator_id"`
}

type GetEventsByCreatorResponse struct {
	Events []Event `json:"events"`
}
