// Package handler provides the HTTP handlers of the transactions API.
package handler

import (
	"net/http"

	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/service"
	"transaction_form/internal/transactions/transport"
	"transaction_form/platform/httpkit"
	"transaction_form/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles the transactions API.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the public routes. submitLimit guards POST /transactions.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, submitLimit gin.HandlerFunc) {
	rg.GET("/agents", h.ListAgents)
	rg.GET("/deals", h.ListDeals)
	rg.GET("/lead/:personId", h.GetLead)
	if submitLimit != nil {
		rg.POST("/transactions", submitLimit, h.Submit)
	} else {
		rg.POST("/transactions", h.Submit)
	}
}

// RegisterAdminRoutes mounts the form store routes on an authenticated group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms", h.ListForms)
	rg.GET("/forms/:id", h.GetForm)
}

// ListAgents returns the CRM agents.
func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.svc.ListAgents(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, agents)
}

// ListDeals returns the agent's deals for a category/kind pair.
func (h *Handler) ListDeals(c *gin.Context) {
	var q transport.DealsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	deals, err := h.svc.ListDeals(c.Request.Context(), q)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, deals)
}

// Submit validates and relays a transaction form.
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Normalize()

	if err := h.val.Struct(req); err != nil {
		fieldErrs := transport.FieldErrors(validator.Violations(err))
		if len(fieldErrs) == 0 {
			httpkit.Fail(c, http.StatusBadRequest, msgValidationFailed, nil)
			return
		}
		fieldErrs = transport.MergeFieldErrors(fieldErrs, domain.Validate(req.Submission()))
		httpkit.Fail(c, http.StatusBadRequest, fieldErrs[0].Message, fieldErrs)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req.Submission())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetLead returns a CRM contact for prefilling the form.
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.svc.GetLead(c.Request.Context(), c.Param("personId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// ListForms returns stored submissions, newest first.
func (h *Handler) ListForms(c *gin.Context) {
	forms, err := h.svc.ListForms(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, forms)
}

// GetForm returns one stored submission.
func (h *Handler) GetForm(c *gin.Context) {
	form, err := h.svc.GetForm(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, form)
}
