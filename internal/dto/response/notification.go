package response

import (
	"time"

	"vivelo/internal/data/entity"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToNotificationResponses(notifications []*entity.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, &NotificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
