package handlers

import (
	"net/http"

	"astromitra/models"
	"astromitra/services/draft"
	"astromitra/services/slot"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler manages availability slots for astrologers.
type SlotHandler struct {
	Service slot.SlotService
	Editor  *draft.SlotEditor
	State   *state.Store
}

func NewSlotHandler(svc slot.SlotService, editor *draft.SlotEditor, store *state.Store) *SlotHandler {
	return &SlotHandler{Service: svc, Editor: editor, State: store}
}

// SaveHandler handles POST /api/slots. A draft carrying an ID updates
// the existing slot, otherwise a new one is created.
func (h *SlotHandler) SaveHandler(c *gin.Context) {
	var d models.SlotDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot draft", err.Error())
		return
	}
	h.State.UpdateSlotDraft(func(cur *models.SlotDraft) { *cur = d })
	if err := draft.ValidateSlotDraft(d); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	if !h.Editor.Save(c.Request.Context()) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot saved"})
}

// ListHandler handles GET /api/slots for the signed-in astrologer, or
// GET /api/slots?astrologerId= when a requester browses availability.
func (h *SlotHandler) ListHandler(c *gin.Context) {
	ownerID := c.Query("astrologerId")
	if ownerID == "" {
		if prof := h.State.Professional(); prof != nil {
			ownerID = prof.ID
		}
	}
	if ownerID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing astrologerId", "")
		return
	}
	if !h.Service.FetchSlots(c.Request.Context(), ownerID) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, h.State.Slots())
}

// DeleteHandler handles DELETE /api/slots/:id.
func (h *SlotHandler) DeleteHandler(c *gin.Context) {
	if !h.Service.DeleteSlot(c.Request.Context(), c.Param("id")) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}
