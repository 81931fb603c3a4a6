package routes

import (
	"time"

	"astromitra/handlers"
	"astromitra/middleware"
	"astromitra/services/identity"
	"astromitra/state"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and astrologer directory endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	users := r.Group("/api/users")
	{
		// Existence check runs before sign-in, so it stays public.
		users.GET("/exists", hb.User.ExistsHandler)

		users.Use(auth)
		users.POST("/register", hb.User.RegisterHandler)
		users.GET("/me", hb.User.MeHandler)
		users.PATCH("/me", hb.User.UpdateProfileHandler)
		users.PUT("/me/push-token", hb.User.PushTokenHandler)
		users.GET("/me/phone", hb.User.PhoneHandler)
		users.POST("/me/phone/initiate", hb.User.PhoneChangeInitHandler)
		users.POST("/me/phone/confirm", hb.User.PhoneChangeConfirmHandler)
		users.POST("/signout", hb.User.SignOutHandler)
	}

	astrologers := r.Group("/api/astrologers")
	{
		astrologers.Use(auth)
		astrologers.GET("", hb.User.AstrologersHandler)
		astrologers.GET("/:id", hb.User.AstrologerDetailHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(auth)
		bookings.POST("", hb.Booking.CreateHandler)
		bookings.GET("", hb.Booking.ListHandler)
		bookings.PUT("/:id", hb.Booking.UpdateHandler)
		bookings.DELETE("/:id", hb.Booking.DeleteHandler)
		bookings.PATCH("/:id/status", hb.Booking.StatusHandler)
	}
}

// RegisterSlotRoutes registers availability slot endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	slots := r.Group("/api/slots")
	{
		slots.Use(auth)
		slots.POST("", hb.Slot.SaveHandler)
		slots.GET("", hb.Slot.ListHandler)
		slots.DELETE("/:id", hb.Slot.DeleteHandler)
	}
}

// RegisterWalletRoutes registers top-up and ledger endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	wallet := r.Group("/api/wallet")
	{
		wallet.Use(auth)
		wallet.POST("/topup", hb.Wallet.TopUpBeginHandler)
		wallet.POST("/topup/complete", hb.Wallet.TopUpCompleteHandler)
		wallet.GET("/transactions", hb.Wallet.TransactionsHandler)
	}
}

// RegisterChatRoutes registers conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	chat := r.Group("/api/chat")
	{
		chat.Use(auth)
		chat.POST("/messages", hb.Chat.SendHandler)
		chat.GET("/messages", hb.Chat.ListHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, ids identity.IdentityService, store *state.Store) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.AuthMiddleware(ids, store)

	RegisterHealthRoute(r)
	r.GET("/api/reference", handlers.ReferenceHandler(store))
	RegisterUserRoutes(r, hb, auth)
	RegisterBookingRoutes(r, hb, auth)
	RegisterSlotRoutes(r, hb, auth)
	RegisterWalletRoutes(r, hb, auth)
	RegisterChatRoutes(r, hb, auth)
}
