package admin

import (
	"context"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	findDashboardStats(ctx context.Context) (*DashboardStats, error)
	findAllUsers(ctx context.Context) ([]*ManagedUser, error)
	updateUserRole(ctx context.Context, userID uuid.UUID, role string) error
	updateUserStatus(ctx context.Context, userID uuid.UUID, status string) error
	deleteUser(ctx context.Context, userID uuid.UUID) error
	findOrdersPerMonth(ctx context.Context, year int) (*MonthlyCounts, error)
	findSalesPerMonth(ctx context.Context, year int) (*MonthlySeries, error)
	findCategoryDistribution(ctx context.Context) ([]*CategorySlice, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) getDashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.store.findDashboardStats(ctx)
}

func (s *service) getAllUsers(ctx context.Context) ([]*ManagedUser, error) {
	return s.store.findAllUsers(ctx)
}

func (s *service) setUserRole(ctx context.Context, actorID uuid.UUID, update *UpdateUserRoleRequest) error {
	userID, err := uuid.Parse(update.UserID)
	if err != nil {
		return servererrors.ErrUserNotFound
	}

	// an admin stripping their own role locks them out of the back
	// office with nobody left to restore it
	if userID == actorID {
		return servererrors.ErrForbidden
	}

	return s.store.updateUserRole(ctx, userID, update.Role)
}

func (s *service) setUserStatus(ctx context.Context, actorID uuid.UUID, update *UpdateUserStatusRequest) error {
	userID, err := uuid.Parse(update.UserID)
	if err != nil {
		return servererrors.ErrUserNotFound
	}

	if userID == actorID {
		return servererrors.ErrForbidden
	}

	return s.store.updateUserStatus(ctx, userID, update.Status)
}

func (s *service) removeUser(ctx context.Context, actorID uuid.UUID, userID uuid.UUID) error {
	if userID == actorID {
		return servererrors.ErrForbidden
	}

	return s.store.deleteUser(ctx, userID)
}

func (s *service) getOrdersPerMonth(ctx context.Context, year int) (*MonthlyCounts, error) {
	return s.store.findOrdersPerMonth(ctx, year)
}

func (s *service) getSalesPerMonth(ctx context.Context, year int) (*MonthlySeries, error) {
	return s.store.findSalesPerMonth(ctx, year)
}

func (s *service) getCategoryDistribution(ctx context.Context) ([]*CategorySlice, error) {
	return s.store.findCategoryDistribution(ctx)
}
