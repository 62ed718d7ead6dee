package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/classicrowndev/cc-hotel-backend-sub000/docs"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/handler"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/middleware"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// Services are the core use cases the router exposes.
type Services struct {
	Identity        ports.Authenticator
	Auth            ports.AuthService
	Staff           ports.StaffService
	Guests          ports.GuestService
	Rooms           ports.RoomService
	Bookings        ports.BookingService
	Laundry         ports.LaundryService
	Halls           ports.HallService
	Dishes          ports.DishService
	Inventory       ports.InventoryService
	ServiceRequests ports.ServiceRequestService
	Payments        ports.PaymentService
	Dashboard       ports.DashboardService
}

type Options struct {
	// AllowOrigins feeds the CORS middleware; empty allows any origin.
	AllowOrigins []string
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins(opts.AllowOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, "x-auth-token", "From",
		},
	}))
	e.Use(echoprometheus.NewMiddleware("hotel"))

	// --- Dependencies ---
	authn := middleware.Authenticate(svc.Identity)
	protect := func(rule domain.Rule) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{authn, middleware.Require(rule)}
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	staffHandler := handler.NewStaffHandler(svc.Staff)
	guestHandler := handler.NewGuestHandler(svc.Guests)
	roomHandler := handler.NewRoomHandler(svc.Rooms, svc.Bookings)
	laundryHandler := handler.NewLaundryHandler(svc.Laundry)
	hallHandler := handler.NewHallHandler(svc.Halls)
	dishHandler := handler.NewDishHandler(svc.Dishes)
	inventoryHandler := handler.NewInventoryHandler(svc.Inventory)
	requestHandler := handler.NewServiceRequestHandler(svc.ServiceRequests)
	paymentHandler := handler.NewPaymentHandler(svc.Payments, log)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/guests/register", authHandler.RegisterGuest)
	v1.POST("/auth/guests/login", authHandler.GuestLogin)
	v1.POST("/auth/staff/login", authHandler.StaffLogin)
	v1.POST("/auth/password/forgot", authHandler.ForgotPassword)
	v1.POST("/auth/password/reset", authHandler.ResetPassword)
	v1.GET("/auth/me", authHandler.Me, protect(anyPrincipal)...)

	// --- Staff administration ---
	v1.POST("/staff", staffHandler.Create, protect(managers)...)
	v1.GET("/staff", staffHandler.List, protect(managers)...)
	v1.GET("/staff/:id", staffHandler.Get, protect(managers)...)
	v1.PATCH("/staff/:id", staffHandler.Update, protect(managers)...)
	v1.PATCH("/staff/:id/block", staffHandler.Block, protect(managers)...)
	v1.PATCH("/staff/:id/unblock", staffHandler.Unblock, protect(managers)...)
	v1.DELETE("/staff/:id", staffHandler.Delete, protect(managers)...)

	// --- Guests ---
	guestAdmin := staffWith(domain.TaskGuest)
	v1.GET("/guests", guestHandler.List, protect(guestAdmin)...)
	v1.GET("/guests/:id", guestHandler.Get, protect(guestAdmin)...)
	v1.PATCH("/guests/:id/block", guestHandler.Block, protect(guestAdmin)...)
	v1.PATCH("/guests/:id/unblock", guestHandler.Unblock, protect(guestAdmin)...)
	v1.PATCH("/guests/:id/ban", guestHandler.Ban, protect(guestAdmin)...)
	v1.DELETE("/guests/:id", guestHandler.Delete, protect(managers)...)

	// --- Rooms and bookings ---
	bookingStaff := staffWith(domain.TaskBooking)
	v1.GET("/rooms", roomHandler.ListRooms)
	v1.GET("/rooms/:id", roomHandler.GetRoom)
	v1.POST("/rooms", roomHandler.CreateRoom, protect(bookingStaff)...)
	v1.PATCH("/rooms/:id", roomHandler.UpdateRoom, protect(bookingStaff)...)
	v1.DELETE("/rooms/:id", roomHandler.DeleteRoom, protect(bookingStaff)...)
	v1.POST("/rooms/:id/images", roomHandler.UploadRoomImages, protect(bookingStaff)...)

	v1.POST("/bookings", roomHandler.CreateBooking, protect(guestOnly)...)
	v1.GET("/bookings/mine", roomHandler.MyBookings, protect(guestOnly)...)
	v1.PATCH("/bookings/:id/cancel", roomHandler.CancelBooking, protect(guestOnly)...)
	v1.GET("/bookings", roomHandler.ListBookings, protect(bookingStaff)...)
	v1.GET("/bookings/:id", roomHandler.GetBooking, protect(bookingStaff)...)
	v1.PATCH("/bookings/:id/status", roomHandler.UpdateBookingStatus, protect(bookingStaff)...)

	// --- Laundry ---
	laundryStaff := staffWith(domain.TaskLaundry)
	v1.GET("/laundry/items", laundryHandler.ListItems)
	v1.GET("/laundry/items/:id", laundryHandler.GetItem)
	v1.POST("/laundry/items", laundryHandler.CreateItem, protect(laundryStaff)...)
	v1.PATCH("/laundry/items/:id", laundryHandler.UpdateItem, protect(laundryStaff)...)
	v1.DELETE("/laundry/items/:id", laundryHandler.DeleteItem, protect(laundryStaff)...)

	v1.POST("/laundry/orders", laundryHandler.CreateOrder, protect(guestOnly)...)
	v1.GET("/laundry/orders/mine", laundryHandler.MyOrders, protect(guestOnly)...)
	v1.GET("/laundry/orders", laundryHandler.ListOrders, protect(laundryStaff)...)
	v1.GET("/laundry/orders/:id", laundryHandler.GetOrder, protect(laundryStaff)...)
	v1.PATCH("/laundry/orders/:id", laundryHandler.UpdateOrder, protect(laundryStaff)...)
	v1.PATCH("/laundry/orders/:id/status", laundryHandler.UpdateOrderStatus, protect(laundryStaff)...)

	// --- Halls and events ---
	hallStaff := staffWith(domain.TaskHall)
	v1.GET("/halls", hallHandler.ListHalls)
	v1.GET("/halls/:id", hallHandler.GetHall)
	v1.POST("/halls", hallHandler.CreateHall, protect(hallStaff)...)
	v1.PATCH("/halls/:id", hallHandler.UpdateHall, protect(hallStaff)...)
	v1.DELETE("/halls/:id", hallHandler.DeleteHall, protect(hallStaff)...)
	v1.POST("/halls/:id/images", hallHandler.UploadHallImages, protect(hallStaff)...)

	v1.POST("/halls/reservations", hallHandler.Reserve, protect(guestOnly)...)
	v1.GET("/halls/reservations/mine", hallHandler.MyReservations, protect(guestOnly)...)
	v1.GET("/halls/reservations", hallHandler.ListReservations, protect(hallStaff)...)
	v1.GET("/halls/reservations/:id", hallHandler.GetReservation, protect(hallStaff)...)
	v1.PATCH("/halls/reservations/:id/status", hallHandler.UpdateReservationStatus, protect(hallStaff)...)

	// --- Dishes ---
	dishStaff := staffWith(domain.TaskDish)
	v1.GET("/dishes", dishHandler.ListDishes)
	v1.GET("/dishes/:id", dishHandler.GetDish)
	v1.POST("/dishes", dishHandler.CreateDish, protect(dishStaff)...)
	v1.PATCH("/dishes/:id", dishHandler.UpdateDish, protect(dishStaff)...)
	v1.DELETE("/dishes/:id", dishHandler.DeleteDish, protect(dishStaff)...)
	v1.POST("/dishes/:id/images", dishHandler.UploadDishImage, protect(dishStaff)...)

	v1.POST("/dishes/orders", dishHandler.PlaceOrder, protect(guestOnly)...)
	v1.GET("/dishes/orders/mine", dishHandler.MyOrders, protect(guestOnly)...)
	v1.GET("/dishes/orders", dishHandler.ListOrders, protect(dishStaff)...)
	v1.GET("/dishes/orders/:id", dishHandler.GetOrder, protect(dishStaff)...)
	v1.PATCH("/dishes/orders/:id/status", dishHandler.UpdateOrderStatus, protect(dishStaff)...)

	// --- Inventory ---
	inv := v1.Group("/inventory")
	inventoryStaff := staffWith(domain.TaskInventory)
	inv.POST("/suppliers", inventoryHandler.CreateSupplier, protect(inventoryStaff)...)
	inv.GET("/suppliers", inventoryHandler.ListSuppliers, protect(inventoryStaff)...)
	inv.GET("/suppliers/:id", inventoryHandler.GetSupplier, protect(inventoryStaff)...)
	inv.PATCH("/suppliers/:id", inventoryHandler.UpdateSupplier, protect(inventoryStaff)...)
	inv.DELETE("/suppliers/:id", inventoryHandler.DeleteSupplier, protect(inventoryStaff)...)
	inv.POST("/items", inventoryHandler.CreateItem, protect(inventoryStaff)...)
	inv.GET("/items", inventoryHandler.ListItems, protect(inventoryStaff)...)
	inv.GET("/items/low-stock", inventoryHandler.LowStock, protect(inventoryStaff)...)
	inv.GET("/items/:id", inventoryHandler.GetItem, protect(inventoryStaff)...)
	inv.PATCH("/items/:id", inventoryHandler.UpdateItem, protect(inventoryStaff)...)
	inv.DELETE("/items/:id", inventoryHandler.DeleteItem, protect(inventoryStaff)...)
	inv.POST("/items/:id/adjust", inventoryHandler.Adjust, protect(inventoryStaff)...)

	// --- Service requests ---
	requestStaff := staffWith(domain.TaskServiceRequest)
	v1.POST("/service-requests", requestHandler.Create, protect(guestOnly)...)
	v1.GET("/service-requests/mine", requestHandler.Mine, protect(guestOnly)...)
	v1.GET("/service-requests", requestHandler.List, protect(requestStaff)...)
	v1.GET("/service-requests/:id", requestHandler.Get, protect(requestStaff)...)
	v1.PATCH("/service-requests/:id/status", requestHandler.UpdateStatus, protect(guestOrStaffWith(domain.TaskServiceRequest))...)

	// --- Payments ---
	v1.POST("/payments/initialize", paymentHandler.Initialize, protect(guestOnly)...)
	v1.GET("/payments/verify/:reference", paymentHandler.Verify, protect(guestOnly)...)
	v1.GET("/payments/mine", paymentHandler.Mine, protect(guestOnly)...)
	v1.GET("/payments", paymentHandler.List, protect(managers)...)
	v1.POST("/payments/webhook", paymentHandler.Webhook)

	// --- Dashboard ---
	v1.GET("/dashboard", dashboardHandler.Summary, protect(managers)...)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func allowOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			switch {
			case v.Status >= 500:
				event = log.Error().Err(v.Error)
			case v.Error != nil:
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
