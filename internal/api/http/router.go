package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/web"
)

type RouterOptions struct {
	AllowedOrigins []string
	SignInURL      string
	Identity       identity.Provider
	Templates      *template.Template
	Metrics        http.Handler
	RateLimiter    *RateLimiter
	Log            *slog.Logger
}

func SetupRouter(opts RouterOptions, homeController *HomeController, callsController *CallsController, apiController *APIController) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	router := gin.Default()
	if len(opts.AllowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = opts.AllowedOrigins
		config.AllowCredentials = true
		config.AllowHeaders = []string{
			"Authorization",
			"Content-Type",
			"Origin",
			"Accept",
			"HX-Request",
			"HX-Current-URL",
			"HX-Target",
			"HX-Trigger",
		}
		config.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
		config.ExposeHeaders = []string{"HX-Redirect"}
		router.Use(cors.New(config))
	}
	if opts.Templates != nil {
		router.SetHTMLTemplate(opts.Templates)
	}

	router.StaticFS("/static", http.FS(web.Static()))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	pages := router.Group("/")
	if opts.Identity != nil {
		pages.Use(identity.Middleware(opts.Identity, log), identity.RequireUser(opts.SignInURL))
	}

	actions := pages.Group("/")
	if opts.RateLimiter != nil {
		actions.Use(opts.RateLimiter.Middleware())
	}

	if homeController != nil {
		pages.GET("/", homeController.Home)

		meetingType := actions.Group("/meeting-type")
		meetingType.POST("/select", homeController.Select)
		meetingType.POST("/close", homeController.Close)
		meetingType.POST("/values", homeController.Values)
		meetingType.POST("/submit", homeController.Submit)
		meetingType.POST("/recordings", homeController.Recordings)
	}

	if callsController != nil {
		pages.GET("/upcoming", callsController.List(domain.CallListUpcoming))
		pages.GET("/previous", callsController.List(domain.CallListEnded))
		pages.GET("/recordings", callsController.List(domain.CallListRecordings))
		pages.GET("/meeting/:id", callsController.Meeting)
		pages.GET("/meeting/:id/calendar.ics", callsController.Calendar)
		pages.GET("/personal-room", callsController.PersonalRoom)
		actions.POST("/personal-room/start", callsController.StartPersonalRoom)
	}

	if apiController != nil {
		api := pages.Group("/api")
		api.GET("/token", apiController.Token)
		api.GET("/calls/:id", apiController.GetCall)

		apiActions := actions.Group("/api")
		apiActions.POST("/calls/:id/recordings", apiController.AddRecording)
	}

	return router
}
