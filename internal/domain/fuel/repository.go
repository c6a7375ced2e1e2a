package fuel

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error

	// Get by public record_id; gorm.ErrRecordNotFound when absent
	GetByRecordID(ctx context.Context, recordID string) (*Record, error)

	// Highest odometer reading seen for the vehicle; nil when none recorded
	LatestOdometer(ctx context.Context, vehicleID string) (*decimal.Decimal, error)

	SumCostByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}
