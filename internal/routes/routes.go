package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	"github.com/BruksfildServices01/escape-booking/internal/config"
	userdomain "github.com/BruksfildServices01/escape-booking/internal/domain/user"
	"github.com/BruksfildServices01/escape-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/lock"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	ucAuth "github.com/BruksfildServices01/escape-booking/internal/usecase/auth"
	ucCart "github.com/BruksfildServices01/escape-booking/internal/usecase/cart"
	ucCoupon "github.com/BruksfildServices01/escape-booking/internal/usecase/coupon"
	ucOrder "github.com/BruksfildServices01/escape-booking/internal/usecase/order"
	ucRoom "github.com/BruksfildServices01/escape-booking/internal/usecase/room"
	ucSchedule "github.com/BruksfildServices01/escape-booking/internal/usecase/schedule"
	ucSettings "github.com/BruksfildServices01/escape-booking/internal/usecase/settings"
	ucSlot "github.com/BruksfildServices01/escape-booking/internal/usecase/slot"
)

// Deps are the optional integrations. Nil members switch the feature off.
type Deps struct {
	Locker   lock.RoomLocker
	Photos   ucRoom.PhotoStore
	Payments ucOrder.PaymentLinker
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(), middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	slotRepo := infraRepo.NewSlotGormRepository(db)
	cartRepo := infraRepo.NewCartGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	couponRepo := infraRepo.NewCouponGormRepository(db)
	settingsRepo := infraRepo.NewSettingsGormRepository(db)
	roomRepo := infraRepo.NewRoomGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := deps.Audit
	if auditDispatcher == nil {
		auditDispatcher = audit.NewDispatcher(auditLogger)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	saveSlotUC := ucSlot.NewSaveSlot(slotRepo, deps.Locker, auditDispatcher)
	deleteSlotUC := ucSlot.NewDeleteSlot(slotRepo, auditDispatcher)
	calendarUC := ucSlot.NewCalendar(slotRepo)

	saveScheduleUC := ucSchedule.NewSaveSchedule(saveSlotUC, auditDispatcher)
	deleteScheduleUC := ucSchedule.NewDeleteSchedule(slotRepo, auditDispatcher)

	createCartUC := ucCart.NewCreateCart(cartRepo, auditDispatcher)
	getCartUC := ucCart.NewGetCart(cartRepo)
	addAppointmentUC := ucCart.NewAddAppointment(cartRepo, auditDispatcher)
	addCouponProductUC := ucCart.NewAddCouponProduct(cartRepo, auditDispatcher)
	applyCouponUC := ucCart.NewApplyCoupon(cartRepo, auditDispatcher)
	removeCouponUC := ucCart.NewRemoveCoupon(cartRepo)
	removeItemUC := ucCart.NewRemoveItem(cartRepo, auditDispatcher)

	checkoutUC := ucOrder.NewCheckout(orderRepo, deps.Payments, auditDispatcher)
	getOrderUC := ucOrder.NewGetOrder(orderRepo)
	cancelOrderUC := ucOrder.NewCancelOrder(orderRepo, auditDispatcher)
	editItemsUC := ucOrder.NewEditItems(orderRepo)

	createCouponUC := ucCoupon.NewCreateCoupon(couponRepo, auditDispatcher)
	listCouponsUC := ucCoupon.NewListCoupons(couponRepo)

	manageSettingsUC := ucSettings.NewManageSettings(settingsRepo, auditDispatcher)

	listRoomsUC := ucRoom.NewListRooms(roomRepo)
	saveRoomUC := ucRoom.NewSaveRoom(roomRepo, auditDispatcher)
	uploadPhotoUC := ucRoom.NewUploadRoomPhoto(roomRepo, deps.Photos, auditDispatcher)
	saveGroupUC := ucRoom.NewSaveProductGroup(roomRepo, auditDispatcher)
	saveProductUC := ucRoom.NewSaveProduct(roomRepo, auditDispatcher)
	listCatalogUC := ucRoom.NewListCatalog(roomRepo)

	loginUC := ucAuth.NewLogin(userRepo, cfg.JWTSecret)
	createStaffUC := ucAuth.NewCreateStaff(userRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(loginUC, createStaffUC)
	calendarHandler := handlers.NewCalendarHandler(calendarUC)
	slotHandler := handlers.NewSlotHandler(saveSlotUC, deleteSlotUC, saveScheduleUC, deleteScheduleUC)
	cartHandler := handlers.NewCartHandler(
		createCartUC,
		getCartUC,
		addAppointmentUC,
		addCouponProductUC,
		applyCouponUC,
		removeCouponUC,
		removeItemUC,
		checkoutUC,
	)
	orderHandler := handlers.NewOrderHandler(getOrderUC, cancelOrderUC, editItemsUC)
	couponHandler := handlers.NewCouponHandler(createCouponUC, listCouponsUC)
	settingsHandler := handlers.NewSettingsHandler(manageSettingsUC)
	roomHandler := handlers.NewRoomHandler(
		listRoomsUC,
		saveRoomUC,
		uploadPhotoUC,
		saveGroupUC,
		saveProductUC,
		listCatalogUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/rooms", roomHandler.ListActive)
			public.GET("/products", roomHandler.Catalog)

			public.GET("/calendar/days", calendarHandler.Days)
			public.GET("/calendar/slots", calendarHandler.Day)

			public.POST("/carts", cartHandler.Create)
			public.GET("/carts/:token", cartHandler.Get)
			public.POST("/carts/:token/appointments", cartHandler.AddAppointment)
			public.POST("/carts/:token/coupon-products", cartHandler.AddCouponProduct)
			public.DELETE("/carts/:token/items/:itemId", cartHandler.RemoveItem)
			public.POST("/carts/:token/coupons", cartHandler.ApplyCoupon)
			public.DELETE("/carts/:token/coupons/:code", cartHandler.RemoveCoupon)
			public.POST("/carts/:token/checkout", cartHandler.Checkout)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/calendar/slots", calendarHandler.StaffDay)

			secured.POST("/slots", slotHandler.CreateSlot)
			secured.PUT("/slots/:id", slotHandler.UpdateSlot)
			secured.DELETE("/slots/:id", slotHandler.DeleteSlot)

			secured.POST("/schedules", slotHandler.CreateSchedule)
			secured.PUT("/schedules/:id", slotHandler.UpdateSchedule)
			secured.DELETE("/schedules/:id", slotHandler.DeleteSchedule)

			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.PATCH("/orders/:id/cancel", orderHandler.Cancel)
			secured.POST("/orders/:id/items", orderHandler.AddItem)
			secured.PUT("/orders/:id/items/:itemId", orderHandler.UpdateItem)
			secured.DELETE("/orders/:id/items/:itemId", orderHandler.DeleteItem)

			secured.GET("/coupons", couponHandler.List)
			secured.POST("/coupons", couponHandler.Create)

			secured.GET("/rooms", roomHandler.ListAll)
			secured.POST("/rooms", roomHandler.SaveRoom)
			secured.PUT("/rooms/:id", roomHandler.SaveRoom)
			secured.POST("/rooms/:id/photo", roomHandler.UploadPhoto)
			secured.POST("/product-groups", roomHandler.SaveProductGroup)
			secured.PUT("/product-groups/:id", roomHandler.SaveProductGroup)
			secured.POST("/products", roomHandler.SaveProduct)
			secured.PUT("/products/:id", roomHandler.SaveProduct)

			// ------------------------------
			// ADMIN ONLY
			// ------------------------------
			admin := secured.Group("")
			admin.Use(middleware.RequireRole(userdomain.RoleAdmin))
			{
				admin.GET("/settings", settingsHandler.Get)
				admin.PUT("/settings/appointments", settingsHandler.UpdateAppointments)
				admin.PUT("/settings/shop", settingsHandler.UpdateShop)

				admin.POST("/users", authHandler.CreateStaff)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
