package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/database"
	"github.com/travigo/ridership/pkg/ridership"
)

type MetricStore interface {
	Routes(ctx context.Context) ([]string, error)
	RouteRecords(ctx context.Context, route string) ([]*ridership.Record, error)
	LatestRecord(ctx context.Context, route string) (*ridership.Record, error)
}

type RidershipHandler struct {
	Store MetricStore
	// Optional, responses are not cached when nil
	Cache *cache.Cache[string]
}

type routeMetrics struct {
	Route   string              `json:"route" groups:"basic,detailed"`
	Records []*ridership.Record `json:"records" groups:"basic,detailed"`
}

type latestMetric struct {
	Route            string           `json:"route"`
	Date             ridership.Period `json:"date"`
	DateEnd          ridership.Day    `json:"date_end"`
	Ridership        float64          `json:"ridership"`
	RidershipPerDay  float64          `json:"ridership_per_day"`
	RidershipWeekday float64          `json:"ridership_weekday"`

	ChangeVs1YearsAgo *float64 `json:"change_vs_1_years_ago"`
}

func RidershipRouter(router fiber.Router, handler *RidershipHandler) {
	router.Get("/", handler.listRoutes)
	router.Get("/:route/metrics", handler.getRouteMetrics)
	router.Get("/:route/latest", handler.getLatestMetric)
}

func (h *RidershipHandler) listRoutes(c *fiber.Ctx) error {
	routes, err := h.Store.Routes(c.UserContext())
	if err != nil {
		return err
	}

	slices.Sort(routes)

	return c.JSON(routes)
}

func (h *RidershipHandler) getRouteMetrics(c *fiber.Ctx) error {
	route := c.Params("route")
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	cacheKey := fmt.Sprintf("ridership:metrics:%s:%t", route, c.QueryBool("detailed"))
	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.UserContext(), cacheKey); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	records, err := h.Store.RouteRecords(c.UserContext(), route)
	if errors.Is(err, database.ErrNoRecords) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find ridership for route",
		})
	}
	if err != nil {
		return err
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, &routeMetrics{Route: route, Records: records})
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce route metrics",
		})
	}

	response, err := json.Marshal(reduced)
	if err != nil {
		return err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(c.UserContext(), cacheKey, string(response)); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache response")
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(response)
}

func (h *RidershipHandler) getLatestMetric(c *fiber.Ctx) error {
	record, err := h.Store.LatestRecord(c.UserContext(), c.Params("route"))
	if errors.Is(err, database.ErrNoRecords) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find ridership for route",
		})
	}
	if err != nil {
		return err
	}

	var latest latestMetric
	if err := copier.Copy(&latest, record); err != nil {
		return err
	}

	return c.JSON(latest)
}
