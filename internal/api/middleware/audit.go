package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelchain/booking-portal/internal/core/domain"
	"github.com/hotelchain/booking-portal/internal/core/ports"
)

// auditExempt are the operational endpoints kept out of the audit trail;
// scrapes and probes are not visitor traffic.
var auditExempt = map[string]struct{}{
	"/metrics":      {},
	"/health":       {},
	"/health/ready": {},
}

// Audit records every request in the audit trail after the handler has run.
// Recording is asynchronous; a slow or unavailable trail never delays the
// response.
func Audit(rec ports.AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := auditExempt[c.Path()]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler assign the final status first.
				c.Error(err)
			}

			entry := domain.AuditEntry{
				Method:     c.Request().Method,
				Endpoint:   c.Path(),
				StatusCode: c.Response().Status,
				Duration:   time.Since(start),
				Timestamp:  start.UTC(),
			}
			if st := SessionFrom(c); st != nil {
				entry.SessionID = st.ID()
				if id, ok := st.Identity(); ok {
					entry.UserID = id.ID
					entry.Username = id.Username
				}
			}
			rec.Record(entry)
			return nil
		}
	}
}
