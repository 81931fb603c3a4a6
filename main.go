package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astromitra/config"
	"astromitra/database"
	astroRepo "astromitra/database/repository/astrologer"
	bookingRepo "astromitra/database/repository/booking"
	chatRepo "astromitra/database/repository/chat"
	slotRepo "astromitra/database/repository/slot"
	txnRepo "astromitra/database/repository/transaction"
	userRepo "astromitra/database/repository/user"
	"astromitra/handlers"
	"astromitra/middleware"
	"astromitra/models"
	"astromitra/routes"
	"astromitra/services/booking"
	"astromitra/services/chat"
	"astromitra/services/draft"
	"astromitra/services/identity"
	"astromitra/services/notification"
	"astromitra/services/slot"
	"astromitra/services/storage"
	"astromitra/services/user"
	"astromitra/services/wallet"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitOTPCache()
	utils.FirebaseInit()

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}
	authClient := utils.GetAuthClient()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Client state cache, hydrated from the durable user slice.
	store := state.New(state.NewRedisPersister(utils.GetCacheClient()))
	if err := store.Hydrate(context.Background()); err != nil {
		logger.Sugar().Warnf("main: state hydration skipped: %v", err)
	}
	store.SetReferenceLists(
		[]models.Language{
			{ID: "hi", Name: "Hindi"},
			{ID: "en", Name: "English"},
			{ID: "mr", Name: "Marathi"},
			{ID: "ta", Name: "Tamil"},
			{ID: "te", Name: "Telugu"},
			{ID: "bn", Name: "Bengali"},
		},
		[]models.Speciality{
			{ID: "vedic", Name: "Vedic"},
			{ID: "tarot", Name: "Tarot"},
			{ID: "numerology", Name: "Numerology"},
			{ID: "palmistry", Name: "Palmistry"},
			{ID: "vastu", Name: "Vastu"},
		},
	)

	// repositories.
	users := userRepo.NewMongoUserRepo()
	astrologers := astroRepo.NewMongoAstrologerRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	slots := slotRepo.NewMongoSlotRepo()
	transactions := txnRepo.NewMongoTransactionRepo()
	chats := chatRepo.NewMongoChatRepo()

	// services.
	notifier := notification.LogNotifier{}
	push := notification.NewRelayPushService()
	blobStorage := storage.NewCloudinaryStorage(cld)

	userService := &user.DefaultUserService{
		Users:       users,
		Astrologers: astrologers,
		Storage:     blobStorage,
		State:       store,
		Notifier:    notifier,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:    bookings,
		Users:       users,
		Astrologers: astrologers,
		Storage:     blobStorage,
		State:       store,
		Notifier:    notifier,
		Push:        push,
	}
	slotService := &slot.DefaultSlotService{
		Slots:    slots,
		State:    store,
		Notifier: notifier,
	}
	walletService := &wallet.DefaultWalletService{
		Users:        users,
		Transactions: transactions,
		Gateway:      wallet.StripeGateway{},
		State:        store,
		Notifier:     notifier,
	}
	chatService := &chat.DefaultChatService{
		Messages: chats,
		State:    store,
		Notifier: notifier,
	}
	identityService := &identity.DefaultIdentityService{
		Auth:        authClient,
		OTPStore:    utils.GetOTPCacheClient(),
		Users:       users,
		Astrologers: astrologers,
		State:       store,
		Notifier:    notifier,
	}

	bookingEditor := &draft.BookingEditor{State: store, Bookings: bookingService, Notifier: notifier}
	slotEditor := &draft.SlotEditor{State: store, Slots: slotService, Notifier: notifier}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		User:    handlers.NewUserHandler(userService, identityService, store),
		Booking: handlers.NewBookingHandler(bookingService, bookingEditor, store),
		Slot:    handlers.NewSlotHandler(slotService, slotEditor, store),
		Wallet:  handlers.NewWalletHandler(walletService, store),
		Chat:    handlers.NewChatHandler(chatService, store),
	}

	routes.RegisterRoutes(router, handlerBundle, identityService, store)

	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetOTPCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
