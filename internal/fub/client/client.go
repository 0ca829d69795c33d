// Package client provides the HTTP client for the Follow Up Boss API.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"transaction_form/internal/fub/transport"
	"transaction_form/platform/apperr"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"
)

const (
	serviceName = "followupboss"
	pageLimit   = 100
	maxPages    = 20
)

// Client is the HTTP client for the Follow Up Boss API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	systemName string
	systemKey  string
	log        *logger.Logger
}

// New creates a Follow Up Boss API client.
func New(cfg config.FUBConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.GetFUBTimeout()},
		baseURL:    strings.TrimRight(cfg.GetFUBBaseURL(), "/"),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.GetFUBAPIKey()+":")),
		systemName: cfg.GetFUBSystemName(),
		systemKey:  cfg.GetFUBSystemKey(),
		log:        log,
	}
}

// ListUsers returns every user on the account.
func (c *Client) ListUsers(ctx context.Context) ([]transport.Agent, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(pageLimit))

	users, err := listAll[apiUser](ctx, c, "list_users", "users", c.baseURL+"/users?"+params.Encode())
	if err != nil {
		return nil, err
	}

	agents := make([]transport.Agent, 0, len(users))
	for _, u := range users {
		agents = append(agents, u.toTransport())
	}
	return agents, nil
}

// ListDeals returns deals, restricted to one user when userID is non-zero.
func (c *Client) ListDeals(ctx context.Context, userID int64) ([]transport.Deal, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(pageLimit))
	if userID != 0 {
		params.Set("userId", strconv.FormatInt(userID, 10))
	}

	deals, err := listAll[apiDeal](ctx, c, "list_deals", "deals", c.baseURL+"/deals?"+params.Encode())
	if err != nil {
		return nil, err
	}

	result := make([]transport.Deal, 0, len(deals))
	for _, d := range deals {
		result = append(result, d.toTransport())
	}
	return result, nil
}

// GetPerson fetches one contact. A missing contact is an apperr.NotFound.
func (c *Client) GetPerson(ctx context.Context, personID int64) (*transport.Person, error) {
	reqURL := fmt.Sprintf("%s/people/%d", c.baseURL, personID)

	var p apiPerson
	if err := c.request(ctx, "get_person", http.MethodGet, reqURL, nil, &p, true); err != nil {
		return nil, err
	}
	person := p.toTransport()
	return &person, nil
}

// CreateEvent records an event. Follow Up Boss answers 204 when it
// deduplicates an event; the result then has a zero ID.
func (c *Client) CreateEvent(ctx context.Context, req transport.CreateEventRequest) (transport.CreateEventResult, error) {
	payload := apiEventRequest{
		Source:     req.Source,
		System:     c.systemName,
		Type:       req.Type,
		Message:    req.Message,
		DealID:     req.DealID,
		AssignedTo: req.AgentID,
		Person: apiEventPerson{
			FirstName: req.Person.FirstName,
			LastName:  req.Person.LastName,
		},
	}
	if req.Person.Email != "" {
		payload.Person.Emails = []apiContactValue{{Value: req.Person.Email}}
	}
	if req.Person.Phone != "" {
		payload.Person.Phones = []apiContactValue{{Value: req.Person.Phone}}
	}

	var result transport.CreateEventResult
	if err := c.do(ctx, "create_event", http.MethodPost, c.baseURL+"/events", payload, &result); err != nil {
		return transport.CreateEventResult{}, err
	}
	return result, nil
}

// AddDealNote attaches a note to a deal.
func (c *Client) AddDealNote(ctx context.Context, req transport.AddNoteRequest) error {
	payload := apiNoteRequest{
		Body:   req.Body,
		Source: c.systemName,
		UserID: req.AgentID,
	}
	reqURL := fmt.Sprintf("%s/deals/%d/notes", c.baseURL, req.DealID)
	return c.do(ctx, "add_deal_note", http.MethodPost, reqURL, payload, nil)
}

// Ping checks that the credentials are accepted.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, c.baseURL+"/users?limit=1", nil, nil)
}

// do sends one request. Any non-2xx answer, 404 included, is an
// apperr.Upstream.
func (c *Client) do(ctx context.Context, op, method, reqURL string, body, out any) error {
	return c.request(ctx, op, method, reqURL, body, out, false)
}

// request is do with notFound reporting a 404 as apperr.NotFound, for
// lookups of a single resource.
func (c *Client) request(ctx context.Context, op, method, reqURL string, body, out any, notFound bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "encode request", err).WithOp(op)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "create request", err).WithOp(op)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.systemName != "" {
		req.Header.Set("X-System", c.systemName)
	}
	if c.systemKey != "" {
		req.Header.Set("X-System-Key", c.systemKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(serviceName, op, 0, err)
		return apperr.Upstream("FUB API request failed", err).WithOp(op)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// decode below
	case notFound && resp.StatusCode == http.StatusNotFound:
		c.log.Debug("fub resource not found", "operation", op, "url", reqURL)
		return apperr.NotFound("not found").WithOp(op)
	default:
		statusErr := fmt.Errorf("FUB API error: %s", resp.Status)
		c.log.UpstreamError(serviceName, op, resp.StatusCode, statusErr)
		return apperr.Upstream(statusErr.Error(), statusErr).WithOp(op)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.log.UpstreamError(serviceName, op, resp.StatusCode, err)
		return apperr.Upstream("FUB API returned an unreadable response", err).WithOp(op)
	}
	return nil
}

// listAll follows _metadata.nextLink while it stays on the configured host.
func listAll[T any](ctx context.Context, c *Client, op, collection, reqURL string) ([]T, error) {
	var out []T
	for page := 0; reqURL != "" && page < maxPages; page++ {
		var raw map[string]json.RawMessage
		if err := c.do(ctx, op, http.MethodGet, reqURL, nil, &raw); err != nil {
			return nil, err
		}

		if data, ok := raw[collection]; ok {
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return nil, apperr.Upstream("FUB API returned an unreadable response", err).WithOp(op)
			}
			out = append(out, items...)
		}

		reqURL = ""
		var meta apiMetadata
		if data, ok := raw["_metadata"]; ok && json.Unmarshal(data, &meta) == nil {
			if strings.HasPrefix(meta.NextLink, c.baseURL+"/") {
				reqURL = meta.NextLink
			}
		}
	}
	return out, nil
}

type apiMetadata struct {
	Total    int    `json:"total"`
	NextLink string `json:"nextLink"`
}

type apiUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Role      string `json:"role"`
}

// toTransport splits name on the first space when first/last are absent.
func (u apiUser) toTransport() transport.Agent {
	first, last := u.FirstName, u.LastName
	if first == "" && last == "" && u.Name != "" {
		parts := strings.SplitN(strings.TrimSpace(u.Name), " ", 2)
		first = parts[0]
		if len(parts) > 1 {
			last = strings.TrimSpace(parts[1])
		}
	}
	kind := u.Type
	if kind == "" {
		kind = u.Role
	}
	return transport.Agent{
		ID:        u.ID,
		FirstName: first,
		LastName:  last,
		Email:     u.Email,
		Type:      kind,
	}
}

type apiDeal struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Stage        string  `json:"stage"`
	StageName    string  `json:"stageName"`
	Status       string  `json:"status"`
	Type         string  `json:"type"`
	PipelineName string  `json:"pipelineName"`
	People       []apiID `json:"people"`
	Users        []apiID `json:"users"`
}

type apiID struct {
	ID int64 `json:"id"`
}

func (d apiDeal) toTransport() transport.Deal {
	deal := transport.Deal{
		ID:     d.ID,
		Name:   d.Name,
		Stage:  d.StageName,
		Status: d.Status,
		Type:   d.PipelineName,
	}
	if deal.Stage == "" {
		deal.Stage = d.Stage
	}
	if deal.Type == "" {
		deal.Type = d.Type
	}
	if len(d.People) > 0 {
		deal.PersonID = d.People[0].ID
	}
	if len(d.Users) > 0 {
		deal.AgentID = d.Users[0].ID
	}
	return deal
}

type apiContactValue struct {
	Value     string `json:"value"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

type apiPerson struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Emails    []apiContactValue `json:"emails"`
	Phones    []apiContactValue `json:"phones"`
}

func (p apiPerson) toTransport() transport.Person {
	first, last := p.FirstName, p.LastName
	if first == "" && last == "" && p.Name != "" {
		parts := strings.SplitN(strings.TrimSpace(p.Name), " ", 2)
		first = parts[0]
		if len(parts) > 1 {
			last = strings.TrimSpace(parts[1])
		}
	}
	return transport.Person{
		ID:        p.ID,
		FirstName: first,
		LastName:  last,
		Email:     primaryValue(p.Emails),
		Phone:     primaryValue(p.Phones),
	}
}

func primaryValue(values []apiContactValue) string {
	for _, v := range values {
		if v.IsPrimary {
			return v.Value
		}
	}
	if len(values) > 0 {
		return values[0].Value
	}
	return ""
}

type apiEventPerson struct {
	FirstName string            `json:"firstName,omitempty"`
	LastName  string            `json:"lastName,omitempty"`
	Emails    []apiContactValue `json:"emails,omitempty"`
	Phones    []apiContactValue `json:"phones,omitempty"`
}

type apiEventRequest struct {
	Source     string         `json:"source"`
	System     string         `json:"system,omitempty"`
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	DealID     int64          `json:"dealId,omitempty"`
	AssignedTo int64          `json:"assignedTo,omitempty"`
	Person     apiEventPerson `json:"person"`
}

type apiNoteRequest struct {
	Body   string `json:"body"`
	Source string `json:"source,omitempty"`
	UserID int64  `json:"userId,omitempty"`
}
