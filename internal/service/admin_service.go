package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/brieflyhq/briefly/internal/domain/summary"
)

// AdminAPI is the slice of the backend client the admin service needs.
type AdminAPI interface {
	AdminHistory(ctx context.Context, filter summary.TimeFilter) ([]summary.HistoryItem, error)
	AdminUsers(ctx context.Context) ([]summary.User, error)
	AdminDeleteUser(ctx context.Context, id int64) error
}

// Overview is the joined result of the two dashboard fetches.
type Overview struct {
	History []summary.HistoryItem
	Users   []summary.User
}

// AdminService drives the admin dashboard data. Role enforcement is
// server-side; the route guard gates access client-side before any call.
type AdminService struct {
	client AdminAPI
	logger *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(client AdminAPI, logger *slog.Logger) *AdminService {
	return &AdminService{client: client, logger: logger}
}

// Overview fetches the usage history and the user listing concurrently and
// joins both before returning. A failure in either fetch short-circuits the
// whole call: no partial overview is ever returned.
func (s *AdminService) Overview(ctx context.Context, filter summary.TimeFilter) (*Overview, error) {
	var (
		wg       sync.WaitGroup
		items    []summary.HistoryItem
		users    []summary.User
		histErr  error
		usersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, histErr = s.client.AdminHistory(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = s.client.AdminUsers(ctx)
	}()
	wg.Wait()

	if histErr != nil {
		return nil, histErr
	}
	if usersErr != nil {
		return nil, usersErr
	}

	return &Overview{History: items, Users: users}, nil
}

// DeleteUser removes an account by ID.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.client.AdminDeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "id", id)
	return nil
}
