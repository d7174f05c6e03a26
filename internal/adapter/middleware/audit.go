package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sangam-backend/internal/audit"
)

const (
	auditActionKey      = "audit.action"
	auditEntityTypeKey  = "audit.entity_type"
	auditEntityIDKey    = "audit.entity_id"
	auditDescriptionKey = "audit.description"
	auditDetailsKey     = "audit.details"
)

// SetAudit lets a handler enrich the activity record for the current request.
// details may be any JSON-serializable value; it is captured by value here,
// before the request scope is torn down.
func SetAudit(c echo.Context, action, entityType, entityID string, details any) {
	c.Set(auditActionKey, action)
	c.Set(auditEntityTypeKey, entityType)
	c.Set(auditEntityIDKey, entityID)
	c.Set(auditDetailsKey, details)
}

// SetAuditDescription adds the free-form description line.
func SetAuditDescription(c echo.Context, description string) {
	c.Set(auditDescriptionKey, description)
}

// ActivityLog captures who-did-what for every request on the group it is
// mounted on and hands the captured values to the sink after the response is
// decided. The enqueue is non-blocking; nothing here can fail the request.
func ActivityLog(sink audit.Sink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// resolve the response now so the recorded status is final
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			entry := audit.Entry{
				Action:     stringAt(c, auditActionKey),
				EntityType: stringAt(c, auditEntityTypeKey),
				EntityID:   stringAt(c, auditEntityIDKey),

				Description: stringAt(c, auditDescriptionKey),
				Details:     c.Get(auditDetailsKey),

				Method:     req.Method,
				Endpoint:   c.Path(),
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: status,
				IsSuccess:  status < http.StatusBadRequest,
				Timestamp:  start.UTC(),
				DurationMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				entry.ErrorMessage = err.Error()
			}
			if ident, ok := IdentityFrom(c); ok {
				entry.ActorID = ident.UserID
				entry.ActorName = ident.Name
				entry.ActorRole = ident.Role
			}
			if entry.Action == "" {
				entry.Action = req.Method + " " + c.Path()
			}

			sink.Enqueue(entry)
			return nil
		}
	}
}

func stringAt(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
