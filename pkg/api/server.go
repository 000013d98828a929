package api

import (
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/ridership/pkg/api/routes"
)

func NewApp(store routes.MetricStore, responseCache *cache.Cache[string]) *fiber.App {
	webApp := fiber.New(fiber.Config{
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.RidershipRouter(webApp.Group("/routes"), &routes.RidershipHandler{
		Store: store,
		Cache: responseCache,
	})

	return webApp
}

func SetupServer(listen string, store routes.MetricStore, responseCache *cache.Cache[string]) error {
	return NewApp(store, responseCache).Listen(listen)
}
