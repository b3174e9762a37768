package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/sharecode"
	"github.com/mmynk/secretsanta/pkg/api"
)

func TestDraw(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")
	ctx := context.Background()

	group := createGroup(t, client, "Office", "Ann", "Ben", "Cat", "Dan")
	_, err := client.AddExclusion(ctx, connect.NewRequest(&api.AddExclusionRequest{
		GroupId: group.Id, Giver: "Ann", Receiver: "Ben",
	}))
	if err != nil {
		t.Fatalf("AddExclusion failed: %v", err)
	}

	resp, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{
		GroupId:   group.Id,
		Title:     "Office Party",
		Date:      "2024-12-20",
		MaxAmount: "25",
	}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	record := resp.Msg.Event.Record
	if record.Title != "Office Party" || record.Date != "2024-12-20" || record.MaxAmount != "25" {
		t.Errorf("unexpected metadata: %+v", record)
	}
	if len(record.Pairs) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(record.Pairs))
	}

	receivers := make(map[string]bool)
	for i, p := range record.Pairs {
		if p.Giver != group.Members[i].Name {
			t.Errorf("pair %d: expected giver %s, got %s", i, group.Members[i].Name, p.Giver)
		}
		if p.Giver == p.Receiver {
			t.Errorf("%s drew themselves", p.Giver)
		}
		if p.Giver == "Ann" && p.Receiver == "Ben" {
			t.Error("excluded pair Ann → Ben was drawn")
		}
		receivers[p.Receiver] = true
	}
	if len(receivers) != 4 {
		t.Errorf("expected every participant to receive once, got %v", receivers)
	}

	if resp.Msg.Attempts < 1 {
		t.Errorf("expected at least one attempt, got %d", resp.Msg.Attempts)
	}
	if !strings.HasPrefix(resp.Msg.Link, "https://santa.example/?r=") {
		t.Errorf("unexpected link: %s", resp.Msg.Link)
	}

	payload, err := sharecode.Decode(resp.Msg.Token)
	if err != nil {
		t.Fatalf("token does not decode: %v", err)
	}
	if payload.Shared {
		t.Error("organizer token should not be shared")
	}
	if payload.Results.Title != "Office Party" || len(payload.Results.Results) != 4 {
		t.Errorf("token carries wrong record: %+v", payload.Results)
	}

	if got := testutil.ToFloat64(ts.metrics.Draws.WithLabelValues(metrics.OutcomeOK)); got != 1 {
		t.Errorf("expected 1 successful draw recorded, got %v", got)
	}

	// The event shows up on the group and can be fetched again.
	groupResp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(groupResp.Msg.Events) != 1 || groupResp.Msg.Events[0].Id != resp.Msg.Event.Id {
		t.Fatalf("expected the new event on the group, got %+v", groupResp.Msg.Events)
	}

	eventResp, err := client.GetEvent(ctx, connect.NewRequest(&api.GetEventRequest{EventId: resp.Msg.Event.Id}))
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	for i, p := range eventResp.Msg.Event.Record.Pairs {
		if p != record.Pairs[i] {
			t.Errorf("pair %d: stored %+v, drawn %+v", i, p, record.Pairs[i])
		}
	}
}

func TestDrawDefaultTitle(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")

	group := createGroup(t, client, "Pair", "A", "B")

	resp, err := client.Draw(context.Background(), connect.NewRequest(&api.DrawRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if resp.Msg.Event.Record.Title != "Secret Santa" {
		t.Errorf("expected default title, got %q", resp.Msg.Event.Record.Title)
	}
	pairs := resp.Msg.Event.Record.Pairs
	if pairs[0] != (api.Pair{Giver: "A", Receiver: "B"}) || pairs[1] != (api.Pair{Giver: "B", Receiver: "A"}) {
		t.Errorf("two people can only swap, got %+v", pairs)
	}
}

func TestDrawRejected(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")
	ctx := context.Background()

	t.Run("roster too small", func(t *testing.T) {
		group := createGroup(t, client, "Solo", "A")
		_, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("infeasible", func(t *testing.T) {
		group := createGroup(t, client, "Stuck", "A", "B")
		_, err := client.AddExclusion(ctx, connect.NewRequest(&api.AddExclusionRequest{
			GroupId: group.Id, Giver: "A", Receiver: "B",
		}))
		if err != nil {
			t.Fatalf("AddExclusion failed: %v", err)
		}

		_, err = client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id}))
		assertCode(t, err, connect.CodeFailedPrecondition)
		if !strings.Contains(err.Error(), "unable to generate valid Secret Santa pairings") {
			t.Errorf("expected the generator's message, got %v", err)
		}
		if got := testutil.ToFloat64(ts.metrics.Draws.WithLabelValues(metrics.OutcomeInfeasible)); got != 1 {
			t.Errorf("expected 1 infeasible draw recorded, got %v", got)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		group := createGroup(t, client, "Dated", "A", "B")
		_, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id, Date: "20/12/2024"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestShareAndOpen(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")
	ctx := context.Background()

	group := createGroup(t, client, "Family", "A", "B", "C")
	drawResp, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id, Title: "Family 2024"}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	shareResp, err := client.ShareEvent(ctx, connect.NewRequest(&api.ShareEventRequest{
		EventId: drawResp.Msg.Event.Id,
		Shared:  true,
	}))
	if err != nil {
		t.Fatalf("ShareEvent failed: %v", err)
	}

	// OpenShare works without logging in, and accepts the full link.
	anon := ts.anonymous()
	for _, input := range []string{shareResp.Msg.Token, shareResp.Msg.Link} {
		openResp, err := anon.OpenShare(ctx, connect.NewRequest(&api.OpenShareRequest{Token: input}))
		if err != nil {
			t.Fatalf("OpenShare failed: %v", err)
		}
		if !openResp.Msg.Found || !openResp.Msg.Shared {
			t.Fatalf("expected found shared result, got %+v", openResp.Msg)
		}
		if openResp.Msg.Record.Title != "Family 2024" || len(openResp.Msg.Record.Pairs) != 3 {
			t.Errorf("unexpected record: %+v", openResp.Msg.Record)
		}
		if !strings.HasPrefix(openResp.Msg.Text, "Family 2024\n") {
			t.Errorf("unexpected text export: %q", openResp.Msg.Text)
		}
	}
}

func TestOpenShareInvalidToken(t *testing.T) {
	ts := setupTestServer(t)
	anon := ts.anonymous()

	for _, token := range []string{"", "not-a-token!!", "eyJmb28iOjF9", "https://santa.example/?x=1"} {
		resp, err := anon.OpenShare(context.Background(), connect.NewRequest(&api.OpenShareRequest{Token: token}))
		if err != nil {
			t.Fatalf("OpenShare(%q) returned error: %v", token, err)
		}
		if resp.Msg.Found {
			t.Errorf("OpenShare(%q): expected found=false", token)
		}
	}

	if got := testutil.ToFloat64(ts.metrics.ShareDecodeFail); got != 4 {
		t.Errorf("expected 4 decode failures recorded, got %v", got)
	}
}

func TestRememberEvent(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")
	ctx := context.Background()

	group := createGroup(t, client, "Family", "A", "B", "C", "D")
	drawResp, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	eventID := drawResp.Msg.Event.Id

	resp, err := client.RememberEvent(ctx, connect.NewRequest(&api.RememberEventRequest{EventId: eventID}))
	if err != nil {
		t.Fatalf("RememberEvent failed: %v", err)
	}
	if resp.Msg.Added != 4 || len(resp.Msg.Exclusions) != 4 {
		t.Fatalf("expected 4 exclusions added, got added=%d exclusions=%d", resp.Msg.Added, len(resp.Msg.Exclusions))
	}

	resp, err = client.RememberEvent(ctx, connect.NewRequest(&api.RememberEventRequest{EventId: eventID}))
	if err != nil {
		t.Fatalf("RememberEvent failed: %v", err)
	}
	if resp.Msg.Added != 0 {
		t.Errorf("expected remembering twice to add nothing, got %d", resp.Msg.Added)
	}

	// Next year's draw avoids every remembered pair.
	next, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("second Draw failed: %v", err)
	}
	for i, p := range next.Msg.Event.Record.Pairs {
		if p == drawResp.Msg.Event.Record.Pairs[i] {
			t.Errorf("pair %+v repeated after being remembered", p)
		}
	}
}

func TestNotify(t *testing.T) {
	ts := setupTestServer(t)
	client := ts.organizer(t, "alice@example.com")
	ctx := context.Background()

	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Family",
		Members: []api.Participant{{Name: "A", Phone: "555-111-2222"}, {Name: "B"}},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	drawResp, err := client.Draw(ctx, connect.NewRequest(&api.DrawRequest{GroupId: resp.Msg.Group.Id}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	notifyResp, err := client.Notify(ctx, connect.NewRequest(&api.NotifyRequest{EventId: drawResp.Msg.Event.Id}))
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if notifyResp.Msg.Sent != 2 || len(ts.sender.sent) != 2 {
		t.Fatalf("expected 2 notifications, got sent=%d recorded=%d", notifyResp.Msg.Sent, len(ts.sender.sent))
	}

	first := ts.sender.sent[0]
	if first.Giver != "A" || first.Phone != "555-111-2222" {
		t.Errorf("unexpected first notification: %+v", first)
	}
	if first.Message != "Hello A! You are the Secret Santa for B. Happy gifting!" {
		t.Errorf("unexpected message: %q", first.Message)
	}
}
