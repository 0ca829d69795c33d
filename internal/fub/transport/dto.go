// Package transport provides DTOs for the Follow Up Boss domain.
package transport

// Agent is a Follow Up Boss user who can own deals.
type Agent struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Deal is a Follow Up Boss deal.
type Deal struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Stage    string `json:"stage,omitempty"`
	Status   string `json:"status,omitempty"`
	Type     string `json:"type,omitempty"`
	PersonID int64  `json:"personId,omitempty"`
	AgentID  int64  `json:"agentId,omitempty"`
}

// Person is a Follow Up Boss contact (lead).
type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// EventPerson identifies the contact an event is about.
type EventPerson struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// CreateEventRequest describes an event to record. Zero IDs are omitted.
type CreateEventRequest struct {
	Source  string
	Type    string
	Message string
	DealID  int64
	AgentID int64
	Person  EventPerson
}

// CreateEventResult is what Follow Up Boss returns for a created event.
type CreateEventResult struct {
	ID int64 `json:"id"`
}

// AddNoteRequest describes a note to attach to a deal. Zero AgentID is omitted.
type AddNoteRequest struct {
	DealID  int64
	Body    string
	AgentID int64
}
