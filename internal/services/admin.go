package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jamqueuepro/internal/domain"
)

// AdminService exposes the back-office operations: user management, the
// activity analytics report, and audit log listing.
type AdminService interface {
	ListUsers(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error)
	SetUserRole(ctx context.Context, userID, roleCode string, assign bool) error
	SetUserActive(ctx context.Context, userID string, active bool) error
	ActivityReport(ctx context.Context, from, to time.Time) (*domain.ActivityReport, error)
	ListActivity(ctx context.Context, p domain.PaginationParams) ([]*domain.ActivityEntry, int, error)
}

type adminService struct {
	userRepo     domain.UserRepository
	roleRepo     domain.RoleRepository
	activityRepo domain.ActivityRepository
}

// NewAdminService creates an AdminService with the given repositories.
func NewAdminService(userRepo domain.UserRepository, roleRepo domain.RoleRepository, activityRepo domain.ActivityRepository) AdminService {
	return &adminService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		activityRepo: activityRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	users, total, err := s.userRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *adminService) SetUserRole(ctx context.Context, userID, roleCode string, assign bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	role, err := s.roleRepo.GetByCode(ctx, roleCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, roleCode)
		}
		return fmt.Errorf("get role: %w", err)
	}
	if assign {
		if err := s.userRepo.AssignRole(ctx, userID, role.ID); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
		return nil
	}
	if err := s.userRepo.RemoveRole(ctx, userID, role.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

func (s *adminService) SetUserActive(ctx context.Context, userID string, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

func (s *adminService) ActivityReport(ctx context.Context, from, to time.Time) (*domain.ActivityReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: to must be after from", domain.ErrInvalidInput)
	}
	report, err := s.activityRepo.Report(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("activity report: %w", err)
	}
	return report, nil
}

func (s *adminService) ListActivity(ctx context.Context, p domain.PaginationParams) ([]*domain.ActivityEntry, int, error) {
	entries, total, err := s.activityRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	return entries, total, nil
}
