package service

import (
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/pkg/api"
)

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]api.Participant, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.Participant{Name: m.Name, Phone: m.Phone}
	}
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

// toAPIExclusions lists history in roster order, so the result does not
// depend on map iteration. Givers that left the roster come last.
func toAPIExclusions(g *models.Group, h models.History) []api.Exclusion {
	out := make([]api.Exclusion, 0, h.Len())
	seen := make(map[string]bool, len(h))
	appendGiver := func(giver string) {
		seen[giver] = true
		for _, receiver := range h[giver] {
			out = append(out, api.Exclusion{Giver: giver, Receiver: receiver})
		}
	}
	for _, giver := range g.Roster() {
		appendGiver(giver)
	}
	for giver := range h {
		if !seen[giver] {
			appendGiver(giver)
		}
	}
	return out
}

func toAPIRecord(r models.EventRecord) *api.Record {
	pairs := make([]api.Pair, len(r.Results))
	for i, p := range r.Results {
		pairs[i] = api.Pair{Giver: p.Giver, Receiver: p.Receiver}
	}
	return &api.Record{
		Title:     r.DisplayTitle(),
		Date:      r.Date,
		MaxAmount: string(r.MaxAmount),
		Pairs:     pairs,
	}
}

func toAPIEvent(e *models.Event) *api.Event {
	return &api.Event{
		Id:        e.ID,
		GroupId:   e.GroupID,
		Record:    *toAPIRecord(e.Record),
		CreatedAt: e.CreatedAt,
	}
}

func toAPIOrganizer(o *models.Organizer) *api.Organizer {
	return &api.Organizer{
		Id:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		CreatedAt:   o.CreatedAt,
	}
}
