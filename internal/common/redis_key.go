package common

import "fmt"

func RedisKeyEvent(eventID string) string {
	return fmt.Sprintf("event:%s", eventID)
}

func RedisKeyTickets(eventID, ownerID string) string {
	return fmt.Sprintf("tickets:%s:%s", eventID, ownerID)
}
