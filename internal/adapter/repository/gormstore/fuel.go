package gormstore

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/fuel"
)

type FuelRecordRepository struct{ db *gorm.DB }

func NewFuelRecordRepository(db *gorm.DB) *FuelRecordRepository {
	return &FuelRecordRepository{db: db}
}

func (r *FuelRecordRepository) Create(ctx context.Context, rec *fuel.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *FuelRecordRepository) GetByRecordID(ctx context.Context, recordID string) (*fuel.Record, error) {
	var out fuel.Record
	res := r.db.WithContext(ctx).Where("record_id = ?", recordID).First(&out)
	return &out, res.Error
}

func (r *FuelRecordRepository) LatestOdometer(ctx context.Context, vehicleID string) (*decimal.Decimal, error) {
	var out []fuel.Record
	err := r.db.WithContext(ctx).
		Select("odometer_reading").
		Where("vehicle_id = ? AND odometer_reading IS NOT NULL", vehicleID).
		Order("odometer_reading DESC").
		Limit(1).
		Find(&out).Error
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return out[0].OdometerReading, nil
}

func (r *FuelRecordRepository) SumCostByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var costs []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&fuel.Record{}).
		Where("bulk_account_id = ?", accountID).
		Pluck("total_cost", &costs).Error
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, c := range costs {
		sum = sum.Add(c)
	}
	return sum, nil
}
