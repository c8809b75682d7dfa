package domain

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// BlockedTime is an ad-hoc closure of a tenant on a date.
// A nil StartTime or EndTime blocks the whole day; otherwise [StartTime, EndTime) is blocked.
type BlockedTime struct {
	ID        int64
	TenantID  int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// IsWholeDay returns true when the block covers the entire date
func (b *BlockedTime) IsWholeDay() bool {
	return b.StartTime == nil || b.EndTime == nil
}
