package ports

import (
	"context"

	"github.com/hotelchain/booking-portal/internal/core/domain"
)

// AuditRepository persists request audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts audit entries for asynchronous recording. Record
// must not block the request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// InFlightGuard prevents duplicate concurrent submits of the same action for
// a session. Begin reports false when the action is already outstanding;
// End releases it.
type InFlightGuard interface {
	Begin(ctx context.Context, sessionID, action string) (bool, error)
	End(ctx context.Context, sessionID, action string) error
}
