package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

// Locals y headers del request.
const (
	LocalRequestID  = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// RequestID propaga el X-Request-ID recibido o genera uno nuevo y lo deja en c.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// GetRequestID devuelve el ID del request (después de RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// AccessLog registra método, ruta, status y duración de cada request.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("http")
		return err
	}
}

// Metrics registra cada request en Prometheus con el patrón de la ruta, no la URL concreta.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		m.RecordHTTPRequest(c.Method(), path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}

// listResponse envuelve un listado; page nil para listados sin paginar.
func listResponse[T any](list []*T, page *dto.PageResponse) dto.ListResponse[*T] {
	if list == nil {
		list = []*T{}
	}
	return dto.ListResponse[*T]{Data: list, Page: page}
}

// defaultPager mismos valores por defecto que appstate cuando el router no recibe Pager.
type defaultPager struct{}

func (defaultPager) Page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = appstate.DefaultPageLimit
	}
	if limit > appstate.MaxPageLimit {
		limit = appstate.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pageOf aplica el Pager y devuelve la página efectiva.
func pageOf(p Pager, limit, offset int) *dto.PageResponse {
	l, o := p.Page(limit, offset)
	return &dto.PageResponse{Limit: l, Offset: o}
}
