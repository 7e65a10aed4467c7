package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket/service"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/logger"
)

const (
	idParam        = "ticket_id"
	detailNotFound = "Ticket not found"
)

// createTicketRequest requires both fields to be present; empty strings are
// accepted.
type createTicketRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
}

type ticketHandler struct {
	svc service.Service
}

// RegisterTicketRoutes mounts the ticket endpoints on r.
func RegisterTicketRoutes(r gin.IRoutes, svc service.Service) {
	useJSONFieldNames()
	h := &ticketHandler{svc: svc}
	r.GET("/tickets", h.list)
	r.GET("/tickets/:"+idParam, h.get)
	r.POST("/tickets", h.create)
	r.PUT("/tickets/:"+idParam, h.update)
}

func (h *ticketHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ticketHandler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param(idParam))
	if err != nil {
		abortValidation(c, []FieldError{pathIntError(idParam)})
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ticketHandler) create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, bindErrors(err))
		return
	}
	t, err := h.svc.Create(c.Request.Context(), ticket.CreateRequest{Title: *req.Title, Description: *req.Description})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *ticketHandler) update(c *gin.Context) {
	var details []FieldError
	id, err := strconv.Atoi(c.Param(idParam))
	if err != nil {
		details = append(details, pathIntError(idParam))
	}
	var req ticket.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details = append(details, bindErrors(err)...)
	}
	if len(details) > 0 {
		abortValidation(c, details)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ticketHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
		return
	}
	logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}
