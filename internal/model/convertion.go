package model

import (
	"fmt"
	"time"

	"github.com/tickex-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	role := string(user.Role)
	walletAddress := user.WalletAddress.String
	if !includeSensitive {
		role = ""
		walletAddress = ""
	}

	return User{
		ShortUser: ShortUser{
			ID:        user.ID,
			Name:      user.Name,
			AvatarURL: toStringMap(user.ProfilePicture),
		},
		WalletAddress: walletAddress,
		Role:          role,
		Bio:           user.Bio,
		Interests:     user.Interests,
		SocialLinks:   toStringMap(user.SocialLinks),
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: toStringMap(user.ProfilePicture),
	}
}

func ConvertEvent(event *entity.Event) Event {
	if event == nil {
		return Event{}
	}

	return Event{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		Date:              event.Date.Format(DefaultTimeLayout),
		Location:          event.Location,
		OrganizerName:     event.OrganizerName,
		ImageURL:          event.ImageURL,
		IsFree:            event.IsFree,
		Price:             event.Price,
		TotalTickets:      event.TotalTickets,
		RemainingTickets:  event.RemainingTickets,
		CollectionAddress: event.CollectionAddress.String,
		CreatedBy:         ConvertShortUser(&event.CreatedByUser),
	}
}

func ConvertTicket(ticket *entity.Ticket) Ticket {
	if ticket == nil {
		return Ticket{}
	}

	return Ticket{
		ID:           ticket.ID,
		EventID:      ticket.EventID,
		OwnerAddress: ticket.OwnerAddress,
		TicketNumber: ticket.TicketNumber,
		MintTx:       ticket.MintTx,
		Metadata:     ticket.Metadata,
		Used:         ticket.Used,
	}
}

func toStringMap(m entity.Map) map[string]string {
	if m == nil {
		return nil
	}

	result := map[string]string{}
	for k, v := range m {
		result[k] = fmt.Sprint(v)
	}

	return result
}
