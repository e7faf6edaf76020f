package api

import (
	"context"
	"fmt"

	"github.com/wheels/wheels-go/internal/models"
)

type NotificationService struct {
	c *Client
}

func NewNotificationService(c *Client) *NotificationService {
	return &NotificationService{c: c}
}

func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := s.c.get(ctx, "/notificaciones", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch notifications")
	}
	return out, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.c.get(ctx, "/notificaciones/no-leidas/count", nil, &out); err != nil {
		return 0, withFallback(err, "could not count notifications")
	}
	return out.Count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/notificaciones/%d/leida", id)
	if err := s.c.put(ctx, path, struct{}{}, nil); err != nil {
		return withFallback(err, "could not mark notification read")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.c.put(ctx, "/notificaciones/todas/leidas", struct{}{}, nil); err != nil {
		return withFallback(err, "could not mark notifications read")
	}
	return nil
}
