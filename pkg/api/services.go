package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// SantaServiceName is the fully-qualified name of the SantaService.
	SantaServiceName = "secretsanta.v1.SantaService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "secretsanta.v1.AuthService"
)

// Procedure paths.
const (
	SantaServiceCreateGroupProcedure       = "/" + SantaServiceName + "/CreateGroup"
	SantaServiceGetGroupProcedure          = "/" + SantaServiceName + "/GetGroup"
	SantaServiceListGroupsProcedure        = "/" + SantaServiceName + "/ListGroups"
	SantaServiceDeleteGroupProcedure       = "/" + SantaServiceName + "/DeleteGroup"
	SantaServiceAddParticipantProcedure    = "/" + SantaServiceName + "/AddParticipant"
	SantaServiceRemoveParticipantProcedure = "/" + SantaServiceName + "/RemoveParticipant"
	SantaServiceAddExclusionProcedure      = "/" + SantaServiceName + "/AddExclusion"
	SantaServiceRemoveExclusionProcedure   = "/" + SantaServiceName + "/RemoveExclusion"
	SantaServiceDrawProcedure              = "/" + SantaServiceName + "/Draw"
	SantaServiceGetEventProcedure          = "/" + SantaServiceName + "/GetEvent"
	SantaServiceShareEventProcedure        = "/" + SantaServiceName + "/ShareEvent"
	SantaServiceOpenShareProcedure         = "/" + SantaServiceName + "/OpenShare"
	SantaServiceRememberEventProcedure     = "/" + SantaServiceName + "/RememberEvent"
	SantaServiceNotifyProcedure            = "/" + SantaServiceName + "/Notify"

	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
)

// PublicProcedures can be called without a bearer token.
var PublicProcedures = []string{
	SantaServiceOpenShareProcedure,
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}

// SantaServiceHandler is implemented by the server.
type SantaServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	AddExclusion(context.Context, *connect.Request[AddExclusionRequest]) (*connect.Response[AddExclusionResponse], error)
	RemoveExclusion(context.Context, *connect.Request[RemoveExclusionRequest]) (*connect.Response[RemoveExclusionResponse], error)
	Draw(context.Context, *connect.Request[DrawRequest]) (*connect.Response[DrawResponse], error)
	GetEvent(context.Context, *connect.Request[GetEventRequest]) (*connect.Response[GetEventResponse], error)
	ShareEvent(context.Context, *connect.Request[ShareEventRequest]) (*connect.Response[ShareEventResponse], error)
	OpenShare(context.Context, *connect.Request[OpenShareRequest]) (*connect.Response[OpenShareResponse], error)
	RememberEvent(context.Context, *connect.Request[RememberEventRequest]) (*connect.Response[RememberEventResponse], error)
	Notify(context.Context, *connect.Request[NotifyRequest]) (*connect.Response[NotifyResponse], error)
}

// AuthServiceHandler is implemented by the server.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// NewSantaServiceHandler builds an HTTP handler for svc. The returned path
// is the prefix to mount it under.
func NewSantaServiceHandler(svc SantaServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SantaServiceCreateGroupProcedure, connect.NewUnaryHandler(SantaServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(SantaServiceGetGroupProcedure, connect.NewUnaryHandler(SantaServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(SantaServiceListGroupsProcedure, connect.NewUnaryHandler(SantaServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(SantaServiceDeleteGroupProcedure, connect.NewUnaryHandler(SantaServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(SantaServiceAddParticipantProcedure, connect.NewUnaryHandler(SantaServiceAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(SantaServiceRemoveParticipantProcedure, connect.NewUnaryHandler(SantaServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	mux.Handle(SantaServiceAddExclusionProcedure, connect.NewUnaryHandler(SantaServiceAddExclusionProcedure, svc.AddExclusion, opts...))
	mux.Handle(SantaServiceRemoveExclusionProcedure, connect.NewUnaryHandler(SantaServiceRemoveExclusionProcedure, svc.RemoveExclusion, opts...))
	mux.Handle(SantaServiceDrawProcedure, connect.NewUnaryHandler(SantaServiceDrawProcedure, svc.Draw, opts...))
	mux.Handle(SantaServiceGetEventProcedure, connect.NewUnaryHandler(SantaServiceGetEventProcedure, svc.GetEvent, opts...))
	mux.Handle(SantaServiceShareEventProcedure, connect.NewUnaryHandler(SantaServiceShareEventProcedure, svc.ShareEvent, opts...))
	mux.Handle(SantaServiceOpenShareProcedure, connect.NewUnaryHandler(SantaServiceOpenShareProcedure, svc.OpenShare, opts...))
	mux.Handle(SantaServiceRememberEventProcedure, connect.NewUnaryHandler(SantaServiceRememberEventProcedure, svc.RememberEvent, opts...))
	mux.Handle(SantaServiceNotifyProcedure, connect.NewUnaryHandler(SantaServiceNotifyProcedure, svc.Notify, opts...))
	return "/" + SantaServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// WithBearerToken makes a client send "Authorization: Bearer <token>".
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}))
}

// SantaServiceClient calls a remote SantaService.
type SantaServiceClient struct {
	createGroup       *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup          *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups        *connect.Client[ListGroupsRequest, ListGroupsResponse]
	deleteGroup       *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	addExclusion      *connect.Client[AddExclusionRequest, AddExclusionResponse]
	removeExclusion   *connect.Client[RemoveExclusionRequest, RemoveExclusionResponse]
	draw              *connect.Client[DrawRequest, DrawResponse]
	getEvent          *connect.Client[GetEventRequest, GetEventResponse]
	shareEvent        *connect.Client[ShareEventRequest, ShareEventResponse]
	openShare         *connect.Client[OpenShareRequest, OpenShareResponse]
	rememberEvent     *connect.Client[RememberEventRequest, RememberEventResponse]
	notify            *connect.Client[NotifyRequest, NotifyResponse]
}

// NewSantaServiceClient creates a client for the service at baseURL.
func NewSantaServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SantaServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SantaServiceClient{
		createGroup:       connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+SantaServiceCreateGroupProcedure, opts...),
		getGroup:          connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+SantaServiceGetGroupProcedure, opts...),
		listGroups:        connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+SantaServiceListGroupsProcedure, opts...),
		deleteGroup:       connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+SantaServiceDeleteGroupProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+SantaServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+SantaServiceRemoveParticipantProcedure, opts...),
		addExclusion:      connect.NewClient[AddExclusionRequest, AddExclusionResponse](httpClient, baseURL+SantaServiceAddExclusionProcedure, opts...),
		removeExclusion:   connect.NewClient[RemoveExclusionRequest, RemoveExclusionResponse](httpClient, baseURL+SantaServiceRemoveExclusionProcedure, opts...),
		draw:              connect.NewClient[DrawRequest, DrawResponse](httpClient, baseURL+SantaServiceDrawProcedure, opts...),
		getEvent:          connect.NewClient[GetEventRequest, GetEventResponse](httpClient, baseURL+SantaServiceGetEventProcedure, opts...),
		shareEvent:        connect.NewClient[ShareEventRequest, ShareEventResponse](httpClient, baseURL+SantaServiceShareEventProcedure, opts...),
		openShare:         connect.NewClient[OpenShareRequest, OpenShareResponse](httpClient, baseURL+SantaServiceOpenShareProcedure, opts...),
		rememberEvent:     connect.NewClient[RememberEventRequest, RememberEventResponse](httpClient, baseURL+SantaServiceRememberEventProcedure, opts...),
		notify:            connect.NewClient[NotifyRequest, NotifyResponse](httpClient, baseURL+SantaServiceNotifyProcedure, opts...),
	}
}

func (c *SantaServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *SantaServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *SantaServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *SantaServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *SantaServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *SantaServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *SantaServiceClient) AddExclusion(ctx context.Context, req *connect.Request[AddExclusionRequest]) (*connect.Response[AddExclusionResponse], error) {
	return c.addExclusion.CallUnary(ctx, req)
}

func (c *SantaServiceClient) RemoveExclusion(ctx context.Context, req *connect.Request[RemoveExclusionRequest]) (*connect.Response[RemoveExclusionResponse], error) {
	return c.removeExclusion.CallUnary(ctx, req)
}

func (c *SantaServiceClient) Draw(ctx context.Context, req *connect.Request[DrawRequest]) (*connect.Response[DrawResponse], error) {
	return c.draw.CallUnary(ctx, req)
}

func (c *SantaServiceClient) GetEvent(ctx context.Context, req *connect.Request[GetEventRequest]) (*connect.Response[GetEventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *SantaServiceClient) ShareEvent(ctx context.Context, req *connect.Request[ShareEventRequest]) (*connect.Response[ShareEventResponse], error) {
	return c.shareEvent.CallUnary(ctx, req)
}

func (c *SantaServiceClient) OpenShare(ctx context.Context, req *connect.Request[OpenShareRequest]) (*connect.Response[OpenShareResponse], error) {
	return c.openShare.CallUnary(ctx, req)
}

func (c *SantaServiceClient) RememberEvent(ctx context.Context, req *connect.Request[RememberEventRequest]) (*connect.Response[RememberEventResponse], error) {
	return c.rememberEvent.CallUnary(ctx, req)
}

func (c *SantaServiceClient) Notify(ctx context.Context, req *connect.Request[NotifyRequest]) (*connect.Response[NotifyResponse], error) {
	return c.notify.CallUnary(ctx, req)
}

// AuthServiceClient calls a remote AuthService.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
