package web

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"transaction_form/internal/formlinks"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"
	"transaction_form/platform/httpkit"
	"transaction_form/platform/sanitize"

	"github.com/gin-gonic/gin"
)

const msgAgentNotFound = "Agent not found"

// Directory resolves agents and contacts for form links.
type Directory interface {
	ListAgents(ctx context.Context) ([]ports.Agent, error)
	GetLead(ctx context.Context, personID string) (ports.Lead, error)
}

// OptionsQuery is the selection sent by the page while it is being filled in.
type OptionsQuery struct {
	BuyerOrSeller   string `form:"buyerOrSeller"`
	TransactionType string `form:"transactionType"`
}

// FormLinkQuery identifies the external form and the values injected into it.
type FormLinkQuery struct {
	BuyerOrSeller   string `form:"buyerOrSeller"`
	TransactionType string `form:"transactionType"`
	AgentID         string `form:"agentId"`
	ClientName      string `form:"clientName"`
	ClientEmail     string `form:"clientEmail"`
	ClientPhone     string `form:"clientPhone"`
	PersonID        string `form:"personId"`
}

// FormLinkResponse carries the built link.
type FormLinkResponse struct {
	URL string `json:"url"`
}

type pageData struct {
	Title        string
	Rules        []domain.Rule
	Categories   []Option
	Kinds        []Option
	ListingKinds []Option
}

// Handler serves the form page and its helper endpoints.
type Handler struct {
	page  *template.Template
	links *formlinks.Builder
	dir   Directory
}

// NewHandler creates the handler. It fails if the embedded page does not parse.
func NewHandler(links *formlinks.Builder, dir Directory) (*Handler, error) {
	page, err := template.ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, err
	}
	return &Handler{page: page, links: links, dir: dir}, nil
}

// RegisterPageRoutes mounts the page and its static assets on the engine.
func (h *Handler) RegisterPageRoutes(engine *gin.Engine) {
	engine.GET("/", h.Page)
	engine.GET("/form", h.Page)
	engine.GET("/static/form.js", h.serveAsset("assets/form.js", "application/javascript; charset=utf-8"))
	engine.GET("/static/form.css", h.serveAsset("assets/form.css", "text/css; charset=utf-8"))
}

// RegisterAPIRoutes mounts the JSON helpers on the /api group.
func (h *Handler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/form/options", h.Options)
	rg.GET("/form-link", h.FormLink)
}

// Page renders the transaction form.
func (h *Handler) Page(c *gin.Context) {
	kinds := domain.Kinds()
	data := pageData{
		Title:        "Transaction Form",
		Rules:        domain.Rules(),
		Categories:   categoryOptions(),
		Kinds:        kindOptions(kinds),
		ListingKinds: listingOptions(),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.page.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) serveAsset(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := assetFS.ReadFile(name)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, contentType, content)
	}
}

// Options returns the fields visible for a selection.
func (h *Handler) Options(c *gin.Context) {
	var q OptionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	httpkit.OK(c, OptionsFor(q.BuyerOrSeller, q.TransactionType))
}

// FormLink builds the deep-link into the external form for a selection.
func (h *Handler) FormLink(c *gin.Context) {
	var q FormLinkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	ctx := c.Request.Context()

	in := formlinks.Input{
		Category:    domain.Category(strings.ToLower(strings.TrimSpace(q.BuyerOrSeller))),
		Kind:        domain.Kind(strings.ToLower(strings.TrimSpace(q.TransactionType))),
		ClientEmail: q.ClientEmail,
		ClientPhone: q.ClientPhone,
	}
	in.ClientFirst, in.ClientLast = sanitize.SplitName(sanitize.Text(q.ClientName))

	if agentID := strings.TrimSpace(q.AgentID); agentID != "" {
		agents, err := h.dir.ListAgents(ctx)
		if httpkit.HandleError(c, err) {
			return
		}
		found := false
		for _, a := range agents {
			if a.ID == agentID {
				in.AgentFirst, in.AgentLast, in.AgentEmail = a.FirstName, a.LastName, a.Email
				found = true
				break
			}
		}
		if !found {
			httpkit.HandleError(c, apperr.NotFound(msgAgentNotFound))
			return
		}
	}

	if personID := strings.TrimSpace(q.PersonID); personID != "" {
		lead, err := h.dir.GetLead(ctx, personID)
		if httpkit.HandleError(c, err) {
			return
		}
		if in.ClientFirst == "" && in.ClientLast == "" {
			in.ClientFirst, in.ClientLast = lead.FirstName, lead.LastName
		}
		if in.ClientEmail == "" {
			in.ClientEmail = lead.Email
		}
		if in.ClientPhone == "" {
			in.ClientPhone = lead.Phone
		}
	}

	link, err := h.links.Build(in)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, FormLinkResponse{URL: link})
}
