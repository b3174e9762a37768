// Package api defines the Secret Santa RPC messages and the Connect handlers
// and clients that carry them. Messages are plain structs sent as JSON.
package api

// Participant is a roster entry.
type Participant struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Group is an organizer's roster.
type Group struct {
	Id        string        `json:"id"`
	Name      string        `json:"name"`
	Members   []Participant `json:"members"`
	CreatedAt int64         `json:"created_at"`
}

// Exclusion forbids Giver from drawing Receiver.
type Exclusion struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Pair is one assignment.
type Pair struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Record is an assignment set with its metadata.
type Record struct {
	Title     string `json:"title"`
	Date      string `json:"date,omitempty"`
	MaxAmount string `json:"max_amount,omitempty"`
	Pairs     []Pair `json:"pairs"`
}

// Event is a persisted draw.
type Event struct {
	Id        string `json:"id"`
	GroupId   string `json:"group_id"`
	Record    Record `json:"record"`
	CreatedAt int64  `json:"created_at"`
}

// Organizer is the public view of an account.
type Organizer struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string        `json:"name"`
	Members []Participant `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group      *Group      `json:"group"`
	Exclusions []Exclusion `json:"exclusions"`
	// Events are listed newest first, without pairs.
	Events []*Event `json:"events"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type AddParticipantRequest struct {
	GroupId string `json:"group_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
}

type AddParticipantResponse struct {
	Group *Group `json:"group"`
}

type RemoveParticipantRequest struct {
	GroupId string `json:"group_id"`
	Name    string `json:"name"`
}

type RemoveParticipantResponse struct {
	Group      *Group      `json:"group"`
	Exclusions []Exclusion `json:"exclusions"`
}

type AddExclusionRequest struct {
	GroupId  string `json:"group_id"`
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

type AddExclusionResponse struct {
	Exclusions []Exclusion `json:"exclusions"`
}

type RemoveExclusionRequest struct {
	GroupId  string `json:"group_id"`
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

type RemoveExclusionResponse struct {
	Exclusions []Exclusion `json:"exclusions"`
}

type DrawRequest struct {
	GroupId   string `json:"group_id"`
	Title     string `json:"title,omitempty"`
	Date      string `json:"date,omitempty"`
	MaxAmount string `json:"max_amount,omitempty"`
}

type DrawResponse struct {
	Event *Event `json:"event"`
	// Token is an organizer token (shared=false) for the new event.
	Token    string `json:"token"`
	Link     string `json:"link"`
	Attempts int    `json:"attempts"`
}

type GetEventRequest struct {
	EventId string `json:"event_id"`
}

type GetEventResponse struct {
	Event *Event `json:"event"`
}

type ShareEventRequest struct {
	EventId string `json:"event_id"`
	Shared  bool   `json:"shared"`
}

type ShareEventResponse struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

type OpenShareRequest struct {
	Token string `json:"token"`
}

type OpenShareResponse struct {
	// Found is false for any token that does not decode.
	Found  bool    `json:"found"`
	Shared bool    `json:"shared"`
	Record *Record `json:"record,omitempty"`
	Text   string  `json:"text,omitempty"`
}

type RememberEventRequest struct {
	EventId string `json:"event_id"`
}

type RememberEventResponse struct {
	Added      int         `json:"added"`
	Exclusions []Exclusion `json:"exclusions"`
}

type NotifyRequest struct {
	EventId string `json:"event_id"`
}

type NotifyResponse struct {
	Sent int `json:"sent"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Organizer *Organizer `json:"organizer"`
	Token     string     `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Organizer *Organizer `json:"organizer"`
	Token     string     `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Organizer *Organizer `json:"organizer"`
}
