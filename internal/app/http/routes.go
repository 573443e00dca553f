package routes

import (
	"net/http"

	"orfanato-app/config"
	adminapi "orfanato-app/internal/api/admin"
	authapi "orfanato-app/internal/api/auth"
	"orfanato-app/internal/api/comments"
	"orfanato-app/internal/api/contacts"
	"orfanato-app/internal/api/documents"
	"orfanato-app/internal/api/events"
	"orfanato-app/internal/api/ideaspages"
	"orfanato-app/internal/api/imagepages"
	"orfanato-app/internal/api/informatives"
	"orfanato-app/internal/api/mediaitems"
	"orfanato-app/internal/api/meditations"
	"orfanato-app/internal/api/pagelas"
	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/api/routesapi"
	shelteredapi "orfanato-app/internal/api/sheltered"
	sheltersapi "orfanato-app/internal/api/shelters"
	"orfanato-app/internal/api/sitefeedbacks"
	"orfanato-app/internal/api/videopages"
	"orfanato-app/internal/app/http/middleware"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/route"
	"orfanato-app/internal/domain/users"
	"orfanato-app/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Storage media.Storage
	Limiter *middleware.RateLimiter
	Log     zerolog.Logger
}

// crud is the handler shape shared by the content areas.
type crud interface {
	Create(*gin.Context)
	List(*gin.Context)
	Get(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	maxBytes := cfg.MaxUploadBytes()
	rl := d.Limiter

	processor := media.NewProcessor(logging.Component(d.Log, "media"))
	routeSvc := route.NewService(d.DB, logging.Component(d.Log, "routes"))
	pages := pagesvc.Deps{
		DB:      d.DB,
		Media:   processor,
		Routes:  routeSvc,
		Storage: d.Storage,
		Log:     logging.Component(d.Log, "pages"),
	}

	sections := ideaspages.NewSectionService(pages)
	shelteredSvc := shelteredapi.NewService(d.DB, logging.Component(d.Log, "sheltered"))

	authH := authapi.NewHandler(authapi.NewService(d.DB,
		authapi.NewIssuer(cfg.JWTSecret, cfg.JWTTTL), logging.Component(d.Log, "auth")))
	adminH := adminapi.NewHandler(adminapi.NewService(d.DB, logging.Component(d.Log, "admin")))
	routesH := routesapi.NewHandler(routeSvc)
	mediaH := mediaitems.NewHandler(d.DB, processor)
	sheltersH := sheltersapi.NewHandler(sheltersapi.NewService(d.DB, logging.Component(d.Log, "shelters")))
	shelteredH := shelteredapi.NewHandler(shelteredSvc)
	pagelasH := pagelas.NewHandler(pagelas.NewService(d.DB, shelteredSvc, logging.Component(d.Log, "pagelas")))
	commentsH := comments.NewHandler(comments.NewService(d.DB))
	contactsH := contacts.NewHandler(contacts.NewService(d.DB))
	feedbacksH := sitefeedbacks.NewHandler(sitefeedbacks.NewService(d.DB))
	sectionsH := ideaspages.NewSectionHandler(sections, maxBytes)
	eventsH := events.NewHandler(events.NewService(pages), maxBytes)
	meditationsH := meditations.NewHandler(meditations.NewService(pages), maxBytes)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := middleware.AuthMiddleware(cfg.JWTSecret)
	optional := middleware.OptionalAuth(cfg.JWTSecret)
	admin := []gin.HandlerFunc{authenticated, middleware.AdminRoleGuard()}
	staff := middleware.RequireRole(users.RoleAdmin, users.RoleLeader, users.RoleTeacher)
	sanitize := middleware.SanitizeAndCleanInputMiddleware()

	api := r.Group("/")
	api.Use(rl.RateLimit(middleware.RateGeneral))

	// Auth
	api.POST("/auth/login", rl.RateLimit(middleware.RateAuth), authH.Login)
	api.GET("/auth/me", authenticated, authH.Me)
	api.POST("/auth/change-password", rl.RateLimit(middleware.RateAuth), authenticated, authH.ChangePassword)

	// Content areas: public reads, admin writes with uploads
	content := map[string]crud{
		"/video-pages":    videopages.NewHandler(videopages.NewService(pages), maxBytes),
		"/image-pages":    imagepages.NewHandler(imagepages.NewService(pages), maxBytes),
		"/ideas-pages":    ideaspages.NewHandler(ideaspages.NewService(pages, sections), maxBytes),
		"/documents":      documents.NewHandler(documents.NewService(pages), maxBytes),
		"/meditations":    meditationsH,
		"/events":         eventsH,
		"/informatives":   informatives.NewHandler(informatives.NewService(pages)),
		"/ideas-sections": sectionsH,
	}
	api.GET("/events/upcoming", optional, eventsH.Upcoming)
	api.GET("/meditations/this-week", optional, meditationsH.ThisWeek)
	for path, h := range content {
		registerContent(api, path, h, optional, admin, rl)
	}
	api.POST("/ideas-sections/:id/attach/:pageId", append(admin, rl.RateLimit(middleware.RateWrite), sectionsH.Attach)...)

	// Routes and media
	api.GET("/routes", optional, routesH.List)
	api.GET("/routes/resolve", optional, routesH.Resolve)
	api.GET("/routes/:id", append(admin, routesH.Get)...)
	api.GET("/media-items", append(admin, mediaH.List)...)

	// Public submissions
	write := rl.RateLimit(middleware.RateWrite)
	api.POST("/comments", write, sanitize, commentsH.Create)
	api.GET("/comments", optional, commentsH.List)
	api.POST("/contact", write, sanitize, contactsH.Create)
	api.POST("/site-feedbacks", write, sanitize, feedbacksH.Create)

	adm := api.Group("/")
	adm.Use(admin...)
	adm.PATCH("/comments/:id/publish", commentsH.Publish)
	adm.DELETE("/comments/:id", commentsH.Delete)
	adm.GET("/contact", contactsH.List)
	adm.PATCH("/contact/:id/read", contactsH.MarkRead)
	adm.DELETE("/contact/:id", contactsH.Delete)
	adm.GET("/site-feedbacks", feedbacksH.List)
	adm.PATCH("/site-feedbacks/:id/read", feedbacksH.MarkRead)
	adm.DELETE("/site-feedbacks/:id", feedbacksH.Delete)

	// Users
	adm.GET("/users", adminH.ListUsers)
	adm.GET("/users/:id", adminH.GetUser)
	adm.POST("/users", write, adminH.CreateUser)
	adm.PUT("/users/:id", write, adminH.UpdateUser)
	adm.DELETE("/users/:id", adminH.DeleteUser)

	// Shelters and teams
	stf := api.Group("/")
	stf.Use(authenticated, staff)
	stf.GET("/shelters", sheltersH.List)
	stf.GET("/shelters/:id", sheltersH.Get)
	stf.GET("/shelters/:id/teams", sheltersH.ListTeams)
	adm.POST("/shelters", write, sheltersH.Create)
	adm.PUT("/shelters/:id", write, sheltersH.Update)
	adm.DELETE("/shelters/:id", sheltersH.Delete)
	adm.POST("/shelters/:id/teams", write, sheltersH.CreateTeam)
	adm.PUT("/shelters/:id/teams/:teamId", write, sheltersH.UpdateTeam)
	adm.DELETE("/shelters/:id/teams/:teamId", sheltersH.DeleteTeam)
	adm.PUT("/shelters/:id/teams/:teamId/leaders", write, sheltersH.SetLeaders)
	adm.PUT("/shelters/:id/teams/:teamId/teachers", write, sheltersH.SetTeachers)

	// Sheltered people and pagelas
	managers := middleware.RequireRole(users.RoleAdmin, users.RoleLeader)
	stf.GET("/sheltered", shelteredH.List)
	stf.GET("/sheltered/:id", shelteredH.Get)
	stf.POST("/sheltered", managers, write, shelteredH.Create)
	stf.PUT("/sheltered/:id", managers, write, shelteredH.Update)
	stf.DELETE("/sheltered/:id", managers, shelteredH.Delete)

	stf.GET("/pagelas", pagelasH.List)
	stf.GET("/pagelas/:id", pagelasH.Get)
	stf.POST("/pagelas", write, pagelasH.Create)
	stf.PUT("/pagelas/:id", write, pagelasH.Update)
	stf.DELETE("/pagelas/:id", pagelasH.Delete)
}

func registerContent(g *gin.RouterGroup, path string, h crud, optional gin.HandlerFunc, admin []gin.HandlerFunc, rl *middleware.RateLimiter) {
	with := func(extra ...gin.HandlerFunc) []gin.HandlerFunc {
		out := append([]gin.HandlerFunc{}, admin...)
		return append(out, extra...)
	}
	g.GET(path, optional, h.List)
	g.GET(path+"/:id", optional, h.Get)
	g.POST(path, with(rl.RateLimit(middleware.RateUpload), h.Create)...)
	g.PUT(path+"/:id", with(rl.RateLimit(middleware.RateUpload), h.Update)...)
	g.DELETE(path+"/:id", with(rl.RateLimit(middleware.RateWrite), h.Delete)...)
}
