package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

// OrderService covers fulfillment: moving a paid order through shipped and
// delivered. Only admins may drive these transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	log       *logrus.Entry
}

func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		log:       logrus.WithField("service", "order"),
	}
}

// Ship marks a paid order shipped and records the tracking number.
func (s *OrderService) Ship(ctx context.Context, actorUserID, orderNumber, trackingNumber string) (*models.Order, error) {
	order, err := s.fulfillable(ctx, actorUserID, orderNumber, models.OrderStatusShipped)
	if err != nil {
		return nil, err
	}

	if trackingNumber != "" {
		if err := s.orderRepo.SetTracking(ctx, order.ID, trackingNumber); err != nil {
			return nil, fmt.Errorf("set tracking: %w", err)
		}
		order.TrackingNumber = trackingNumber
	}
	now := time.Now()
	if err := s.orderRepo.MarkShipped(ctx, order.ID, now); err != nil {
		return nil, fmt.Errorf("mark shipped: %w", err)
	}
	order.Status = models.OrderStatusShipped
	order.ShippedAt = &now

	s.log.WithFields(logrus.Fields{
		"order_number":    order.OrderNumber,
		"tracking_number": trackingNumber,
	}).Info("order shipped")
	return order, nil
}

// Deliver marks a shipped order delivered.
func (s *OrderService) Deliver(ctx context.Context, actorUserID, orderNumber string) (*models.Order, error) {
	order, err := s.fulfillable(ctx, actorUserID, orderNumber, models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.orderRepo.MarkDelivered(ctx, order.ID, now); err != nil {
		return nil, fmt.Errorf("mark delivered: %w", err)
	}
	order.Status = models.OrderStatusDelivered
	order.DeliveredAt = &now

	s.log.WithField("order_number", order.OrderNumber).Info("order delivered")
	return order, nil
}

// fulfillable loads the order and checks both the actor's admin role and
// the legality of the requested transition.
func (s *OrderService) fulfillable(ctx context.Context, actorUserID, orderNumber, target string) (*models.Order, error) {
	actor, err := s.userRepo.FindByID(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, ErrAdminRequired
	}

	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
	}
	if !models.CanTransitionOrderStatus(order.Status, target) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, target, ErrOrderTransition)
	}
	return order, nil
}
