package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/pkg/api"
)

// CreateGroup creates a roster owned by the caller.
func (s *SantaService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name is required"))
	}

	members := make([]models.Participant, 0, len(req.Msg.Members))
	seen := make(map[string]bool, len(req.Msg.Members))
	for _, m := range req.Msg.Members {
		p, err := participant(m.Name, m.Phone)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		if seen[p.Name] {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("duplicate participant %q", p.Name))
		}
		seen[p.Name] = true
		members = append(members, p)
	}

	group := &models.Group{
		Name:    name,
		OwnerID: owner,
		Members: members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storeError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group with its exclusions and past events.
func (s *SantaService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	history, err := s.store.GetHistory(ctx, group.ID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}

	events, err := s.store.ListEvents(ctx, group.ID)
	if err != nil {
		return nil, storeError("ListEvents", err)
	}
	apiEvents := make([]*api.Event, len(events))
	for i, e := range events {
		apiEvents[i] = toAPIEvent(e)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{
		Group:      toAPIGroup(group),
		Exclusions: toAPIExclusions(group, history),
		Events:     apiEvents,
	}), nil
}

// ListGroups returns the caller's groups, newest first.
func (s *SantaService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroups(ctx, owner)
	if err != nil {
		return nil, storeError("ListGroups", err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group with its history and events.
func (s *SantaService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		return nil, storeError("DeleteGroup", err)
	}

	slog.Info("Group deleted", "group_id", group.ID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddParticipant appends a participant to the roster.
func (s *SantaService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	slog.Info("AddParticipant request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	p, err := participant(req.Msg.Name, req.Msg.Phone)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.AddMember(ctx, group.ID, p); err != nil {
		return nil, storeError("AddMember", err)
	}
	group.Members = append(group.Members, p)

	return connect.NewResponse(&api.AddParticipantResponse{Group: toAPIGroup(group)}), nil
}

// RemoveParticipant drops a participant and every exclusion naming them.
func (s *SantaService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	slog.Info("RemoveParticipant request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	if err := s.store.RemoveMember(ctx, group.ID, req.Msg.Name); err != nil {
		return nil, storeError("RemoveMember", err)
	}

	return s.groupWithExclusions(ctx, group.ID)
}

func (s *SantaService) groupWithExclusions(ctx context.Context, groupID string) (*connect.Response[api.RemoveParticipantResponse], error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError("GetGroup", err)
	}
	history, err := s.store.GetHistory(ctx, groupID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}
	return connect.NewResponse(&api.RemoveParticipantResponse{
		Group:      toAPIGroup(group),
		Exclusions: toAPIExclusions(group, history),
	}), nil
}

// AddExclusion forbids giver from drawing receiver in future draws.
func (s *SantaService) AddExclusion(ctx context.Context, req *connect.Request[api.AddExclusionRequest]) (*connect.Response[api.AddExclusionResponse], error) {
	slog.Info("AddExclusion request received",
		"group_id", req.Msg.GroupId,
		"giver", req.Msg.Giver,
		"receiver", req.Msg.Receiver,
	)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	giver, receiver := req.Msg.Giver, req.Msg.Receiver
	switch {
	case giver == "" || receiver == "":
		return nil, connect.NewError(connect.CodeInvalidArgument, models.ErrEmptyName)
	case giver == receiver:
		return nil, connect.NewError(connect.CodeInvalidArgument, models.ErrSelfExclusion)
	case !group.HasMember(giver):
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%q is not in this group", giver))
	case !group.HasMember(receiver):
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%q is not in this group", receiver))
	}

	if err := s.store.AddExclusion(ctx, group.ID, giver, receiver); err != nil {
		return nil, storeError("AddExclusion", err)
	}

	history, err := s.store.GetHistory(ctx, group.ID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}

	return connect.NewResponse(&api.AddExclusionResponse{Exclusions: toAPIExclusions(group, history)}), nil
}

// RemoveExclusion lifts a forbidden pair.
func (s *SantaService) RemoveExclusion(ctx context.Context, req *connect.Request[api.RemoveExclusionRequest]) (*connect.Response[api.RemoveExclusionResponse], error) {
	slog.Info("RemoveExclusion request received",
		"group_id", req.Msg.GroupId,
		"giver", req.Msg.Giver,
		"receiver", req.Msg.Receiver,
	)

	group, err := s.ownedGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	if err := s.store.RemoveExclusion(ctx, group.ID, req.Msg.Giver, req.Msg.Receiver); err != nil {
		return nil, storeError("RemoveExclusion", err)
	}

	history, err := s.store.GetHistory(ctx, group.ID)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}

	return connect.NewResponse(&api.RemoveExclusionResponse{Exclusions: toAPIExclusions(group, history)}), nil
}

func participant(name, phone string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return models.Participant{}, errors.New("participant name is required")
	}
	if err := models.ValidatePhone(phone); err != nil {
		return models.Participant{}, fmt.Errorf("%s: %w", name, err)
	}
	return models.Participant{Name: name, Phone: phone}, nil
}
