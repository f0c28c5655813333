package usecase

import "fergetid/internal/domain/entity"

// VerdictFormatter renders a verdict as a user-facing message.
type VerdictFormatter interface {
	Format(v entity.Verdict) string
}
