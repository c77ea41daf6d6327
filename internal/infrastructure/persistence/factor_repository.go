package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFactorRepository implements FactorRepository using GORM
type GormFactorRepository struct {
	db *gorm.DB
}

// NewGormFactorRepository creates a new GormFactorRepository
func NewGormFactorRepository(db *gorm.DB) *GormFactorRepository {
	return &GormFactorRepository{db: db}
}

// FindByID finds a factor by its ID
func (r *GormFactorRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Factor, error) {
	var model models.FactorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a factor by its invoice number
func (r *GormFactorRepository) FindByNumber(ctx context.Context, number int64) (*billing.Factor, error) {
	var model models.FactorModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDateRange finds all factors issued within [from, to]
func (r *GormFactorRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Factor, error) {
	var factorModels []models.FactorModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FactorModel{}).
			Where("issued_at >= ? AND issued_at <= ?", from, to),
		filter,
	)

	if err := query.Find(&factorModels).Error; err != nil {
		return nil, err
	}

	return toDomainFactors(factorModels), nil
}

// FindAll finds all factors matching the filter
func (r *GormFactorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Factor, error) {
	var factorModels []models.FactorModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FactorModel{}), filter)

	if err := query.Find(&factorModels).Error; err != nil {
		return nil, err
	}

	return toDomainFactors(factorModels), nil
}

// FindPaginated finds factors matching the filter along with the total count
func (r *GormFactorRepository) FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Factor], error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Factor]{}, err
	}

	factors, err := r.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Factor]{}, err
	}

	return shared.NewPaginated(factors, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a factor. A factor without a number takes the next
// one in sequence; generation runs inside the billing unit of work so a batch
// gets consecutive numbers.
func (r *GormFactorRepository) Save(ctx context.Context, factor *billing.Factor) error {
	if factor.Number == 0 {
		next, err := r.nextNumber(ctx)
		if err != nil {
			return err
		}
		factor.Number = next
	}

	model := models.FactorModelFromDomain(factor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a factor
func (r *GormFactorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FactorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts factors matching the filter
func (r *GormFactorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FactorModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFactorRepository) nextNumber(ctx context.Context) (int64, error) {
	var current int64
	if err := r.db.WithContext(ctx).Model(&models.FactorModel{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&current).Error; err != nil {
		return 0, err
	}
	return current + 1, nil
}

// applyFilter applies filter options to the query
func (r *GormFactorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("number DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFactorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "settled":
			if value == true {
				query = query.Where("remaining_payment = 0")
			} else {
				query = query.Where("remaining_payment > 0")
			}
		case "issued_from":
			query = query.Where("issued_at >= ?", value)
		case "issued_to":
			query = query.Where("issued_at <= ?", value)
		}
	}

	return query
}

func toDomainFactors(factorModels []models.FactorModel) []billing.Factor {
	factors := make([]billing.Factor, len(factorModels))
	for i, model := range factorModels {
		factors[i] = *model.ToDomain()
	}
	return factors
}

// Ensure GormFactorRepository implements FactorRepository
var _ billing.FactorRepository = (*GormFactorRepository)(nil)
