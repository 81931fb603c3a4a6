package handlers

import (
	"net/http"

	"astromitra/services/identity"
	"astromitra/services/user"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the account-facing data access operations.
type UserHandler struct {
	Service  user.UserService
	Identity identity.IdentityService
	State    *state.Store
}

func NewUserHandler(svc user.UserService, ids identity.IdentityService, store *state.Store) *UserHandler {
	return &UserHandler{Service: svc, Identity: ids, State: store}
}

func uidFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get("uid")
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return "", false
	}
	uid, ok := v.(string)
	if !ok || uid == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return "", false
	}
	return uid, true
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		Email       string `json:"email" binding:"required"`
		FullName    string `json:"fullName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration request", err.Error())
		return
	}
	if !h.Service.CreateAccount(c.Request.Context(), uid, req.PhoneNumber, req.Email, req.FullName) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created"})
}

// ExistsHandler handles GET /api/users/exists?phone=. Absence is a 404
// so the client can block OTP dispatch for unregistered numbers.
func (h *UserHandler) ExistsHandler(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing phone parameter", "")
		return
	}
	if !h.Service.UserExists(c.Request.Context(), phone) {
		utils.JSONError(c, http.StatusNotFound, "User does not exist", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true})
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	if !h.Service.FetchCurrentUser(c.Request.Context(), uid) {
		utils.JSONError(c, http.StatusNotFound, "User does not exist", "")
		return
	}
	if prof := h.State.Professional(); prof != nil {
		c.JSON(http.StatusOK, prof)
		return
	}
	c.JSON(http.StatusOK, h.State.Profile())
}

// AstrologersHandler handles GET /api/astrologers.
func (h *UserHandler) AstrologersHandler(c *gin.Context) {
	if !h.Service.FetchAstrologers(c.Request.Context()) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, h.State.Astrologers())
}

// AstrologerDetailHandler handles GET /api/astrologers/:id, returning
// the profile together with its reviews.
func (h *UserHandler) AstrologerDetailHandler(c *gin.Context) {
	detail := h.Service.FetchAstrologerDetail(c.Request.Context(), c.Param("id"))
	if detail == nil {
		utils.JSONError(c, http.StatusNotFound, "Astrologer does not exist", "")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateProfileHandler handles PATCH /api/users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile patch", err.Error())
		return
	}
	if len(fields) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No updatable fields provided", "")
		return
	}
	if !h.Service.UpdateProfile(c.Request.Context(), uid, fields) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// PushTokenHandler handles PUT /api/users/me/push-token.
func (h *UserHandler) PushTokenHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid push token request", err.Error())
		return
	}
	if !h.Service.RegisterPushToken(c.Request.Context(), uid, req.Token) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token registered"})
}

// SignOutHandler handles POST /api/users/signout: every cached slice is
// cleared, including the persisted user slice.
func (h *UserHandler) SignOutHandler(c *gin.Context) {
	h.State.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// PhoneHandler handles GET /api/users/me/phone, the one-off read that
// also hydrates the contact field of the in-progress booking draft.
func (h *UserHandler) PhoneHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	phone, ok := h.Service.FetchUserPhoneNumber(c.Request.Context(), uid)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "User does not exist", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"phoneNumber": phone})
}

// PhoneChangeInitHandler handles POST /api/users/me/phone/initiate.
func (h *UserHandler) PhoneChangeInitHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid phone change request", err.Error())
		return
	}
	if !h.Identity.InitiatePhoneChange(c.Request.Context(), uid, req.PhoneNumber) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// PhoneChangeConfirmHandler handles POST /api/users/me/phone/confirm.
// The profile patch is applied together with the verified number.
func (h *UserHandler) PhoneChangeConfirmHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		PhoneNumber string         `json:"phoneNumber" binding:"required"`
		OTP         string         `json:"otp" binding:"required"`
		Fields      map[string]any `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid phone change request", err.Error())
		return
	}
	if !h.Identity.ConfirmPhoneChange(c.Request.Context(), uid, req.PhoneNumber, req.OTP, req.Fields) {
		utils.JSONError(c, http.StatusBadRequest, "Phone verification failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Phone number updated"})
}
