// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpools/internal/http/handlers"
	"carpools/internal/http/middleware"
	"carpools/internal/modules/drive"
	"carpools/internal/modules/matching"
	"carpools/internal/modules/rider"
)

type RouterDeps struct {
	Drives        *drive.Service
	Matcher       *matching.Service
	Riders        *rider.Service
	Roster        handlers.RosterSource
	SpreadsheetID string
	CORSOrigin    string
	Log           *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Log),
		middleware.Logging(deps.Log),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.Use(middleware.CORS(deps.CORSOrigin))

	driveHandler := handlers.NewDriveHandler(deps.Drives, deps.Matcher, deps.Log)
	api.GET("/drives", driveHandler.List)
	api.POST("/drives", driveHandler.Create)
	api.GET("/drives/:id", driveHandler.Get)
	api.DELETE("/drives/:id", driveHandler.Delete)
	api.POST("/drives/:id/signup", driveHandler.Signup)

	riderHandler := handlers.NewRiderHandler(deps.Riders)
	api.GET("/riders", riderHandler.List)
	api.POST("/riders", riderHandler.Register)

	sheetsHandler := handlers.NewSheetsHandler(deps.Roster, deps.SpreadsheetID)
	api.GET("/sheets", sheetsHandler.Fetch)

	return r
}
