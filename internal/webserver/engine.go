package webserver

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/filedrop/filedrop/internal/database"
	"github.com/filedrop/filedrop/internal/storage"
	middlewarepkg "github.com/filedrop/filedrop/internal/webserver/middleware"
	"github.com/filedrop/filedrop/internal/webserver/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/logger"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Logger   logger.Logger
	Database database.Client
	Storage  storage.Backend
	//
	AccessKey     string
	StoragePath   string
	MaxUploadSize string
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Gzip())
	engine.Use(middlewarepkg.Logger(ctrl.Logger))

	engine.HTTPErrorHandler = middlewarepkg.NewHTTPErrorHandler(ctrl.Logger)

	//
	//
	//

	router := engine.Group("")

	// Generic handlers
	//
	router.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "File Hosting Server")
	})
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	// Upload
	//
	upload := upload{
		logger:   ctrl.Logger,
		ingestor: service.NewIngestor(ctrl.Storage, storage.NewNamer(), ctrl.Database),
	}
	router.POST("/upload", upload.Create,
		middlewarepkg.Authenticate(ctrl.AccessKey),
		middleware.BodyLimit(ctrl.MaxUploadSize),
	)

	// Download
	//
	// Stored files are served back unauthenticated.
	router.Static("/files", ctrl.StoragePath)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
