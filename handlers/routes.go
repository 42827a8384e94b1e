package handlers

import (
	"fmt"
	"html/template"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Router bundles what NewRouter wires into the engine
type Router struct {
	Auth     *AuthHandler
	Requests *RequestHandler
	Pages    *PageHandler
	Static   *StaticHandler
	Health   *HealthHandler

	// RequireSession gates the member routes
	RequireSession gin.HandlerFunc
	// LoginLimiter is optional and only applied to POST /login
	LoginLimiter gin.HandlerFunc
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// honored. Empty means the socket address is the client IP.
	TrustedProxies []string

	Templates *template.Template
	Log       logging.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(rt Router) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(rt.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.Use(gin.Recovery(), middleware.RequestLogger(rt.Log))
	r.SetHTMLTemplate(rt.Templates)

	RegisterRoutes(r, rt)
	return r, nil
}

// RegisterRoutes registers the application routes on r
func RegisterRoutes(r *gin.Engine, rt Router) {
	r.GET("/", rt.Pages.Index)
	r.GET("/health", rt.Health.Health)
	if rt.Static != nil {
		r.GET("/static/*filepath", rt.Static.Serve)
	}

	r.GET("/register", rt.Auth.ShowRegister)
	r.POST("/register", rt.Auth.Register)
	r.GET("/login", rt.Auth.ShowLogin)
	if rt.LoginLimiter != nil {
		r.POST("/login", rt.LoginLimiter, rt.Auth.Login)
	} else {
		r.POST("/login", rt.Auth.Login)
	}
	r.GET("/logout", rt.Auth.Logout)

	members := r.Group("/")
	members.Use(rt.RequireSession)
	{
		members.GET("/create_request", rt.Requests.ShowCreateRequest)
		members.POST("/create_request", rt.Requests.CreateRequest)
		members.GET("/all_requests", rt.Requests.ListRequests)
		members.GET("/request_details/:id", rt.Requests.GetRequest)
		members.POST("/accept_request/:id", rt.Requests.AcceptRequest)
		members.GET("/my_neighbors", rt.Requests.ListNeighbors)
		members.GET("/about", rt.Pages.About)
		members.GET("/help", rt.Pages.Help)
	}

	r.NoRoute(rt.Pages.NotFound)
}
