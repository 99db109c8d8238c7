package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProxyHandler describes the component responsible for serving webseed
// requests for a single log. It allows injecting fake handlers during tests.
type ProxyHandler interface {
	Handle(fiber.Ctx, *LogTarget) error
}

// ProxyHandlerFunc adapts a function to the ProxyHandler interface.
type ProxyHandlerFunc func(fiber.Ctx, *LogTarget) error

// Handle makes ProxyHandlerFunc satisfy ProxyHandler.
func (f ProxyHandlerFunc) Handle(c fiber.Ctx, target *LogTarget) error {
	return f(c, target)
}

// AppOptions controls how the Fiber application should behave.
type AppOptions struct {
	Logger   *logrus.Logger
	Registry *LogRegistry
	Proxy    ProxyHandler
}

const contextKeyRequestID = "_heliostat_request_id"

// NewApp builds a Fiber application with the per-log webseed mounts and
// structured error handling. 统计页/静态目录等附加路由由 routes 包注册。
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("log registry is required")
	}
	if opts.Proxy == nil {
		return nil, errors.New("proxy handler is required")
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())

	app.Get("/webseed/:log/*", func(c fiber.Ctx) error {
		name := c.Params("log")
		target, ok := opts.Registry.Lookup(name)
		if !ok {
			return renderLogUnmapped(c, opts.Logger, name)
		}
		return opts.Proxy.Handle(c, target)
	})

	return app, nil
}

// requestIDMiddleware 为每个请求生成 UUID，方便日志关联。
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

func renderLogUnmapped(c fiber.Ctx, logger *logrus.Logger, name string) error {
	logger.WithFields(logrus.Fields{
		"action": "log_lookup",
		"log":    name,
	}).Warn("log unmapped")

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "log_unmapped",
	})
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
