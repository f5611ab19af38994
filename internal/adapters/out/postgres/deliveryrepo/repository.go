package deliveryrepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add inserts a new delivery. The gorm connection must be opened with
// TranslateError so duplicates surface as gorm.ErrDuplicatedKey.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order_id", dto.OrderID, err)
		}
		return err
	}

	return nil
}

func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("city", "street", "zip", "status", "update_date").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order_id", strconv.FormatInt(dto.OrderID, 10))
	}

	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx), orderID)
}

func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), orderID)
}

func (r *GormDeliveryRepository) Delete(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	d, err := r.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}

	return d, nil
}

func (r *GormDeliveryRepository) List(ctx context.Context, skip, limit int) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).Order("order_id").Offset(skip).Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormDeliveryRepository) ListInProgress(ctx context.Context, olderThan time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{delivery.Packaged.String(), delivery.Delivering.String()}).
		Where("update_date < ?", olderThan).
		Order("order_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormDeliveryRepository) first(db *gorm.DB, orderID int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := db.First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", strconv.FormatInt(orderID, 10))
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomainList(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
