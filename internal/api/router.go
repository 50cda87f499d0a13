package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourname/exercisetracker/web"
)

func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogger(app.Logger()), MetricsMiddleware(), Recovery(app.Logger()))

	r.GET("/", Home(app))
	r.StaticFS("/public", web.Public())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ex := r.Group("/api/exercise")
	ex.POST("/new-user", PostNewUser(app))
	ex.POST("/add", PostExercise(app))
	ex.GET("/users", GetUsers(app))
	ex.GET("/log", GetLog(app))

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
	return r
}

// NewHandler is the router behind CORS.
func NewHandler(app App, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})(NewRouter(app))
}

func Home(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := web.IndexHTML()
		if err != nil {
			HandleError(c, app.Logger(), err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
