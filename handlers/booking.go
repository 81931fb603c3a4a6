package handlers

import (
	"net/http"
	"time"

	"astromitra/models"
	"astromitra/services/booking"
	"astromitra/services/draft"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler drives the booking draft editor and the booking list
// operations. Writes flow through the editor so validation and failure
// notices behave the same as on the client.
type BookingHandler struct {
	Service booking.BookingService
	Editor  *draft.BookingEditor
	State   *state.Store
}

func NewBookingHandler(svc booking.BookingService, editor *draft.BookingEditor, store *state.Store) *BookingHandler {
	return &BookingHandler{Service: svc, Editor: editor, State: store}
}

// CreateHandler handles POST /api/bookings.
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	var d models.EventDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking draft", err.Error())
		return
	}
	h.State.SetEventDraft(d)
	if err := draft.ValidateEventDraft(d); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	if !h.Editor.BookNow(c.Request.Context()) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking requested"})
}

// ListHandler handles GET /api/bookings. Statuses are derived at read
// time so past approved bookings report as completed.
func (h *BookingHandler) ListHandler(c *gin.Context) {
	if !h.Service.FetchMyBookings(c.Request.Context()) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	now := time.Now()
	bookings := h.State.Bookings()
	out := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, gin.H{"booking": b, "displayStatus": booking.DisplayStatus(b, now)})
	}
	c.JSON(http.StatusOK, out)
}

// UpdateHandler handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateHandler(c *gin.Context) {
	var d models.EventDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking draft", err.Error())
		return
	}
	d.ID = c.Param("id")
	h.State.SetEventDraft(d)
	if err := draft.ValidateEventDraft(d); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	if h.State.UserType() == models.UserTypeProfessional && d.Status == models.BookingStatusWaiting {
		utils.JSONError(c, http.StatusUnprocessableEntity, draft.MsgPendingApproval, "")
		return
	}
	if !h.Editor.Save(c.Request.Context()) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated"})
}

// DeleteHandler handles DELETE /api/bookings/:id. The record is kept
// and flagged deleted rather than removed.
func (h *BookingHandler) DeleteHandler(c *gin.Context) {
	if !h.Service.SoftDeleteBooking(c.Request.Context(), c.Param("id")) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// StatusHandler handles PATCH /api/bookings/:id/status, the
// astrologer-side approve/reject action.
func (h *BookingHandler) StatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status request", err.Error())
		return
	}
	if req.Status != models.BookingStatusApproved && req.Status != models.BookingStatusRejected {
		utils.JSONError(c, http.StatusBadRequest, "Unsupported booking status", req.Status)
		return
	}
	if !h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking " + req.Status})
}
