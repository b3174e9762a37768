package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/draw"
	"github.com/mmynk/secretsanta/internal/export"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/notify"
	"github.com/mmynk/secretsanta/internal/sharecode"
	"github.com/mmynk/secretsanta/internal/storage"
	"github.com/mmynk/secretsanta/pkg/api"
)

// Draw generates assignments for a group's roster, avoiding its exclusions,
// and persists them as a new event.
func (s *SantaService) Draw(ctx context.Context, req *connect.Request[api.DrawRequest]) (*connect.Response[api.DrawResponse], error) {
	slog.Info("Draw request received",
		"group_id", req.Msg.GroupId,
		"title", req.Msg.Title,
		"date", req.Msg.Date,
	)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(req.Msg.Date)
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("date must be YYYY-MM-DD: %w", err))
		}
	}

	history, err := s.store.GetHistory(ctx, group.ID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}

	result, err := s.generator.GenerateWithStats(draw.Roster(group.Roster()), history)
	if err != nil {
		var infeasible *draw.InfeasibleError
		switch {
		case errors.Is(err, draw.ErrRosterTooSmall):
			s.metrics.ObserveDraw(metrics.OutcomeRejected, 0)
		case errors.As(err, &infeasible):
			s.metrics.ObserveDraw(metrics.OutcomeInfeasible, infeasible.Attempts)
			slog.Warn("Draw infeasible", "group_id", group.ID, "attempts", infeasible.Attempts, "exclusions", history.Len())
		default:
			slog.Error("Draw failed", "group_id", group.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	s.metrics.ObserveDraw(metrics.OutcomeOK, result.Attempts)

	event := &models.Event{
		GroupID: group.ID,
		Record: models.EventRecord{
			Title:     strings.TrimSpace(req.Msg.Title),
			Date:      date,
			MaxAmount: models.Budget(strings.TrimSpace(req.Msg.MaxAmount)),
			Results:   result.Pairs,
		},
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, storeError("CreateEvent", err)
	}

	token, link, err := s.share(event.Record, false)
	if err != nil {
		return nil, err
	}

	slog.Info("Draw successful",
		"group_id", group.ID,
		"event_id", event.ID,
		"participants", len(result.Pairs),
		"attempts", result.Attempts,
	)

	return connect.NewResponse(&api.DrawResponse{
		Event:    toAPIEvent(event),
		Token:    token,
		Link:     link,
		Attempts: result.Attempts,
	}), nil
}

// GetEvent returns a past draw.
func (s *SantaService) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	slog.Info("GetEvent request received", "event_id", req.Msg.EventId)

	event, _, err := s.ownedEvent(ctx, req.Msg.EventId)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetEventResponse{Event: toAPIEvent(event)}), nil
}

// ShareEvent issues a token and link for a past draw. Shared tokens are for
// participants: they can view and re-share but not draw again.
func (s *SantaService) ShareEvent(ctx context.Context, req *connect.Request[api.ShareEventRequest]) (*connect.Response[api.ShareEventResponse], error) {
	slog.Info("ShareEvent request received", "event_id", req.Msg.EventId, "shared", req.Msg.Shared)

	event, _, err := s.ownedEvent(ctx, req.Msg.EventId)
	if err != nil {
		return nil, err
	}

	token, link, err := s.share(event.Record, req.Msg.Shared)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.ShareEventResponse{Token: token, Link: link}), nil
}

func (s *SantaService) share(record models.EventRecord, shared bool) (token, link string, err error) {
	token, err = sharecode.Encode(record, shared)
	if err != nil {
		slog.Error("Share token encoding failed", "error", err)
		return "", "", connect.NewError(connect.CodeInternal, sharecode.ErrEncode)
	}
	link, err = sharecode.Link(s.baseURL, token)
	if err != nil {
		slog.Error("Share link construction failed", "base_url", s.baseURL, "error", err)
		return "", "", connect.NewError(connect.CodeInternal, sharecode.ErrEncode)
	}
	return token, link, nil
}

// OpenShare decodes a token. It needs no login and never fails on a bad
// token; it answers Found=false instead.
func (s *SantaService) OpenShare(ctx context.Context, req *connect.Request[api.OpenShareRequest]) (*connect.Response[api.OpenShareResponse], error) {
	slog.Info("OpenShare request received", "token_len", len(req.Msg.Token))

	payload, err := sharecode.Parse(req.Msg.Token)
	if err != nil {
		s.metrics.ObserveDecodeFailure()
		slog.Warn("Share token rejected", "error", err)
		return connect.NewResponse(&api.OpenShareResponse{Found: false}), nil
	}

	return connect.NewResponse(&api.OpenShareResponse{
		Found:  true,
		Shared: payload.Shared,
		Record: toAPIRecord(payload.Results),
		Text:   export.Text(payload.Results),
	}), nil
}

// RememberEvent adds an event's pairs to its group's exclusions so the next
// draw avoids repeating them. Pairs already excluded, or naming someone who
// has left the group, are skipped.
func (s *SantaService) RememberEvent(ctx context.Context, req *connect.Request[api.RememberEventRequest]) (*connect.Response[api.RememberEventResponse], error) {
	slog.Info("RememberEvent request received", "event_id", req.Msg.EventId)

	event, group, err := s.ownedEvent(ctx, req.Msg.EventId)
	if err != nil {
		return nil, err
	}

	history, err := s.store.GetHistory(ctx, group.ID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}

	added := 0
	for _, p := range event.Record.Results {
		if history.Forbids(p.Giver, p.Receiver) || !group.HasMember(p.Giver) || !group.HasMember(p.Receiver) {
			continue
		}
		err := s.store.AddExclusion(ctx, group.ID, p.Giver, p.Receiver)
		if errors.Is(err, storage.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, storeError("AddExclusion", err)
		}
		if err := history.Add(p.Giver, p.Receiver); err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		added++
	}

	slog.Info("Event remembered", "event_id", event.ID, "added", added)

	return connect.NewResponse(&api.RememberEventResponse{
		Added:      added,
		Exclusions: toAPIExclusions(group, history),
	}), nil
}

// Notify sends every giver their assignment.
func (s *SantaService) Notify(ctx context.Context, req *connect.Request[api.NotifyRequest]) (*connect.Response[api.NotifyResponse], error) {
	slog.Info("Notify request received", "event_id", req.Msg.EventId)

	event, group, err := s.ownedEvent(ctx, req.Msg.EventId)
	if err != nil {
		return nil, err
	}

	sent := 0
	for _, n := range notify.Build(event.Record.Results, group.Members) {
		if err := s.sender.Send(ctx, n); err != nil {
			slog.Error("Notification failed", "event_id", event.ID, "giver", n.Giver, "error", err)
			return nil, connect.NewError(connect.CodeUnavailable, fmt.Errorf("notify %s: %w", n.Giver, err))
		}
		sent++
	}

	return connect.NewResponse(&api.NotifyResponse{Sent: sent}), nil
}
