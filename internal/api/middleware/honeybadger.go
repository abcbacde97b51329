package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// HoneybadgerConfig enables error reporting when APIKey is set.
type HoneybadgerConfig struct {
	APIKey string
	Env    string
}

// HoneybadgerMiddleware sends error/warning notifications to Honeybadger.
// On panic, it notifies Honeybadger and re-panics to allow gin.Recovery to handle the response.
// Missing resources (404) are part of normal API traffic and are not reported.
func HoneybadgerMiddleware(cfg HoneybadgerConfig, log *logrus.Entry) gin.HandlerFunc {
	if cfg.APIKey == "" {
		log.Info("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: cfg.APIKey,
		Env:    cfg.Env,
	})
	log.Info("Honeybadger error reporting is enabled.")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				honeybadger.Notify(fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path),
					c.Request, honeybadger.Context{"stack": string(debug.Stack())}, honeybadger.Tags{"panic", "http"})
				log.Errorf("recovered from panic, notified Honeybadger: %v", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest || status == http.StatusNotFound {
			return
		}
		requestID := honeybadger.Context{"request_id": c.GetString(RequestIDKey)}
		if status >= http.StatusInternalServerError {
			honeybadger.Notify(fmt.Sprintf("Error: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				c.Request, requestID, honeybadger.Tags{"5XX", "http"})
		} else {
			honeybadger.Notify(fmt.Sprintf("Warning: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				requestID, honeybadger.Tags{"4XX", "http"})
		}
		log.Warnf("Honeybadger reported HTTP %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
	}
}
