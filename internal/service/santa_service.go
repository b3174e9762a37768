// Package service implements the Connect handlers for organizers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/draw"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/middleware"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/notify"
	"github.com/mmynk/secretsanta/internal/storage"
	"github.com/mmynk/secretsanta/pkg/api"
)

var _ api.SantaServiceHandler = (*SantaService)(nil)

// SantaService implements api.SantaServiceHandler. Its methods are split
// across group_service.go (rosters and exclusions) and draw_service.go
// (draws, events and share tokens).
type SantaService struct {
	store     storage.Store
	generator *draw.Generator
	metrics   *metrics.Metrics
	sender    notify.Sender
	baseURL   string
}

// Option configures a SantaService.
type Option func(*SantaService)

// WithGenerator replaces the default pairing generator.
func WithGenerator(g *draw.Generator) Option {
	return func(s *SantaService) { s.generator = g }
}

// WithMetrics records draw outcomes and share decode failures on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SantaService) { s.metrics = m }
}

// WithSender replaces the notification sender. The default logs.
func WithSender(sender notify.Sender) Option {
	return func(s *SantaService) { s.sender = sender }
}

// NewSantaService creates a SantaService. Share links point at baseURL.
func NewSantaService(store storage.Store, baseURL string, opts ...Option) *SantaService {
	s := &SantaService{
		store:     store,
		generator: draw.NewGenerator(),
		sender:    notify.LogSender{},
		baseURL:   baseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// caller returns the authenticated organizer ID.
func caller(ctx context.Context) (string, error) {
	id := middleware.GetOrganizerID(ctx)
	if id == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return id, nil
}

// ownedGroup loads a group the caller owns. Groups owned by someone else are
// reported as not found.
func (s *SantaService) ownedGroup(ctx context.Context, groupID string) (*models.Group, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id is required"))
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError("GetGroup", err)
	}
	if group.OwnerID != owner {
		slog.Warn("Group owned by another organizer", "group_id", groupID, "organizer_id", owner)
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return group, nil
}

// ownedEvent loads an event together with its group, checking ownership of
// the group.
func (s *SantaService) ownedEvent(ctx context.Context, eventID string) (*models.Event, *models.Group, error) {
	if _, err := caller(ctx); err != nil {
		return nil, nil, err
	}
	if eventID == "" {
		return nil, nil, connect.NewError(connect.CodeInvalidArgument, errors.New("event_id is required"))
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, storeError("GetEvent", err)
	}
	group, err := s.ownedGroup(ctx, event.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return event, group, nil
}

// storeError maps storage errors to Connect codes.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}
