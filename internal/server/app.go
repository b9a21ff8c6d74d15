// app.go
//
// A site builder data service: ordered site components and static HTML/CSS export
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of sitebuilder.
// sitebuilder is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sitebuilder is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sitebuilder.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package server

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/handlers"
	"github.com/localnerve/sitebuilder/internal/metrics"
	"github.com/localnerve/sitebuilder/internal/middleware"
	"github.com/localnerve/sitebuilder/internal/services"
	"gorm.io/gorm"

	_ "github.com/localnerve/sitebuilder/docs/api" // Swagger docs
)

// ServiceName prefixes the HTTP and domain metrics
const ServiceName = "sitebuilder"

// Options overrides parts of the app wiring
type Options struct {
	// Auth replaces the Authorizer session gate
	Auth fiber.Handler

	// Metrics receives domain metrics; nil registers Prometheus collectors
	// on the default registry
	Metrics metrics.Recorder

	// DisableHTTPMetrics skips the fiberprometheus middleware and /metrics
	DisableHTTPMetrics bool

	// DisableAccessLog skips the request logger
	DisableAccessLog bool
}

// New builds the Fiber app with its middleware and routes
func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      ServiceName,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	if !opts.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(compress.New())

	// Prometheus metrics
	if !opts.DisableHTTPMetrics {
		prometheus := fiberprometheus.New(ServiceName)
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	rec := opts.Metrics
	if rec == nil {
		rec = metrics.NewPrometheusRecorder(ServiceName, nil)
	}

	auth := opts.Auth
	if auth == nil {
		auth = middleware.AuthUser(cfg)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Liveness
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":        true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	locks := services.NewSiteLocks()
	siteHandler := &handlers.SiteHandler{
		Sites: services.NewSiteService(db, rec),
	}
	componentHandler := &handlers.ComponentHandler{
		Components: services.NewComponentService(db, locks, rec, cfg.StrictReorder()),
	}

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Public
	api.Get("/components/defaults", handlers.ComponentDefaults)

	// Sites (all require user authentication)
	sites := api.Group("/sites", auth)
	sites.Get("/", siteHandler.ListSites)
	sites.Post("/", siteHandler.CreateSite)
	sites.Get("/:id", siteHandler.GetSite)
	sites.Put("/:id", siteHandler.UpdateSite)
	sites.Delete("/:id", siteHandler.DeleteSite)
	sites.Post("/:id/preview", siteHandler.SetPreview)
	sites.Get("/:id/full", siteHandler.GetFullSite)
	sites.Get("/:id/export", siteHandler.ExportSite)
	sites.Get("/:id/render", siteHandler.RenderSite)

	// Components
	sites.Get("/:siteId/components", componentHandler.ListComponents)
	sites.Post("/:siteId/components", componentHandler.CreateComponents)
	sites.Put("/:siteId/components/:componentId", componentHandler.UpdateComponent)
	sites.Delete("/:siteId/components/:componentId", componentHandler.DeleteComponent)
	sites.Put("/:siteId/components-order", componentHandler.ReorderComponents)

	// 404 handler
	app.Use(handlers.NotFound)

	return app
}
