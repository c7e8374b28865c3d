package http

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/eventmanager/internal/config"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/geocoder89/eventmanager/internal/http/handlers"
	"github.com/geocoder89/eventmanager/internal/http/middlewares"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Stores are the repositories behind the API, postgres or memory backed.
type Stores struct {
	Events    handlers.EventsStore
	Packets   handlers.PacketsStore
	Tickets   handlers.TicketsStore
	Relations handlers.RelationsStore
}

type Deps struct {
	Stores Stores
	// Limiter defaults to an in-process fixed window limiter.
	Limiter middlewares.Limiter
	Prom    *observability.Prom
	// Gatherer backs /metrics when set.
	Gatherer prometheus.Gatherer
	Checks   map[string]handlers.Check
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	switch cfg.Env {
	case "dev":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// middleware
	r.Use(middlewares.RequestID())
	r.Use(gin.CustomRecovery(func(ctx *gin.Context, rec any) {
		log.ErrorContext(ctx.Request.Context(), "panic recovered", "panic", rec)
		middlewares.AbortWithError(ctx, http.StatusInternalServerError, "Internal Server Error", "An internal server error occurred.")
	}))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	r.NoRoute(func(ctx *gin.Context) {
		middlewares.AbortWithError(ctx, http.StatusNotFound, "Resource Not Found", "No route matches "+ctx.Request.URL.Path+".")
	})
	r.NoMethod(func(ctx *gin.Context) {
		middlewares.AbortWithError(ctx, http.StatusMethodNotAllowed, "Method Not Allowed", ctx.Request.Method+" is not supported here.")
	})

	// health
	h := handlers.NewHealthHandler(deps.Checks)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middlewares.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middlewares.RateLimit(limiter, middlewares.KeyByIP, log))
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.RequireJSON())

	res := links.NewResources(cfg.LinkBaseURL())

	eventsHandler := handlers.NewEventsHandler(deps.Stores.Events, res, log)
	packetsHandler := handlers.NewPacketsHandler(deps.Stores.Packets, res, log)
	ticketsHandler := handlers.NewTicketsHandler(deps.Stores.Tickets, res, log)
	relationsHandler := handlers.NewRelationsHandler(deps.Stores.Relations, res, log)

	// events
	api.POST("/events", eventsHandler.CreateEvent)
	api.GET("/events", eventsHandler.ListEvents)
	api.GET("/events/:id", eventsHandler.GetEvent)
	api.PUT("/events/:id", eventsHandler.UpdateEvent)
	api.DELETE("/events/:id", eventsHandler.DeleteEvent)
	api.GET("/events/:id/event-packets", relationsHandler.ListPacketsOfEvent)
	api.POST("/events/:id/event-packets", relationsHandler.AddPacketToEvent)

	// event packets
	api.POST("/event-packets", packetsHandler.CreatePacket)
	api.GET("/event-packets", packetsHandler.ListPackets)
	api.GET("/event-packets/:id", packetsHandler.GetPacket)
	api.PUT("/event-packets/:id", packetsHandler.UpdatePacket)
	api.DELETE("/event-packets/:id", packetsHandler.DeletePacket)
	api.GET("/event-packets/:id/events", relationsHandler.ListEventsOfPacket)
	api.POST("/event-packets/:id/events", relationsHandler.AddEventToPacket)

	// tickets, top level and nested under their owner
	registerTickets(api.Group("/tickets"), ticketsHandler.Routes(ticket.AnyOwner))
	registerTickets(api.Group("/events/:id/tickets"), ticketsHandler.Routes(ticket.EventOwner))
	registerTickets(api.Group("/event-packets/:id/tickets"), ticketsHandler.Routes(ticket.PacketOwner))

	return r
}

func registerTickets(g *gin.RouterGroup, routes handlers.TicketRoutes) {
	g.GET("", routes.List)
	g.POST("", routes.Create)
	g.GET("/:cod", routes.Get)
	g.PUT("/:cod", routes.Update)
	g.DELETE("/:cod", routes.Delete)
}
