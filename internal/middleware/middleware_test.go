package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/secretsanta/internal/auth"
	"github.com/mmynk/secretsanta/internal/metrics"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/pkg/api"
)

const (
	privateProcedure = "/test.v1.Test/Private"
	publicProcedure  = "/test.v1.Test/Public"
)

// whoami echoes the organizer ID found in the context as the token field.
func whoami(ctx context.Context, _ *connect.Request[api.OpenShareRequest]) (*connect.Response[api.ShareEventResponse], error) {
	return connect.NewResponse(&api.ShareEventResponse{Token: GetOrganizerID(ctx)}), nil
}

func setup(t *testing.T) (*auth.JWTManager, *metrics.Metrics, string) {
	t.Helper()

	jwtManager := auth.NewJWTManager("middleware-secret", time.Hour)
	m := metrics.New()
	opts := []connect.HandlerOption{
		connect.WithCodec(api.JSONCodec{}),
		connect.WithInterceptors(Logging(m), Auth(jwtManager, publicProcedure)),
	}

	mux := http.NewServeMux()
	mux.Handle(privateProcedure, connect.NewUnaryHandler(privateProcedure, whoami, opts...))
	mux.Handle(publicProcedure, connect.NewUnaryHandler(publicProcedure, whoami, opts...))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return jwtManager, m, server.URL
}

func call(t *testing.T, url, procedure string, opts ...connect.ClientOption) (string, error) {
	t.Helper()

	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	client := connect.NewClient[api.OpenShareRequest, api.ShareEventResponse](http.DefaultClient, url+procedure, opts...)
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&api.OpenShareRequest{}))
	if err != nil {
		return "", err
	}
	return resp.Msg.Token, nil
}

func TestAuth(t *testing.T) {
	jwtManager, _, url := setup(t)

	token, err := jwtManager.Generate(&models.Organizer{ID: "org-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name      string
		procedure string
		opts      []connect.ClientOption
		wantID    string
		wantCode  connect.Code
	}{
		{"private with token", privateProcedure, []connect.ClientOption{api.WithBearerToken(token)}, "org-1", 0},
		{"private without token", privateProcedure, nil, "", connect.CodeUnauthenticated},
		{"private with garbage", privateProcedure, []connect.ClientOption{api.WithBearerToken("garbage")}, "", connect.CodeUnauthenticated},
		{"public without token", publicProcedure, nil, "", 0},
		{"public with token", publicProcedure, []connect.ClientOption{api.WithBearerToken(token)}, "org-1", 0},
		{"public with garbage", publicProcedure, []connect.ClientOption{api.WithBearerToken("garbage")}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, url, tt.procedure, tt.opts...)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected code %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantID {
				t.Errorf("organizer ID: expected %q, got %q", tt.wantID, got)
			}
		})
	}
}

func TestLoggingCountsCalls(t *testing.T) {
	_, m, url := setup(t)

	if _, err := call(t, url, publicProcedure); err != nil {
		t.Fatalf("public call failed: %v", err)
	}
	if _, err := call(t, url, privateProcedure); err == nil {
		t.Fatal("expected private call without token to fail")
	}

	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues(publicProcedure, "ok")); got != 1 {
		t.Errorf("public ok count: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues(privateProcedure, "unauthenticated")); got != 1 {
		t.Errorf("private unauthenticated count: expected 1, got %v", got)
	}
}

func TestGetOrganizerIDMissing(t *testing.T) {
	if id := GetOrganizerID(context.Background()); id != "" {
		t.Errorf("expected empty ID, got %q", id)
	}
	ctx := WithOrganizer(context.Background(), "org-2", "b@example.com")
	if GetOrganizerID(ctx) != "org-2" || GetEmail(ctx) != "b@example.com" {
		t.Error("WithOrganizer did not round-trip")
	}
}
