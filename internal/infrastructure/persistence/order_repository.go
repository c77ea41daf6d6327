package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple orders by their IDs. Missing IDs are skipped; the
// caller compares lengths when every order must exist.
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Order, error) {
	if len(ids) == 0 {
		return []ledger.Order{}, nil
	}

	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindByCompany finds all orders billed to the given company
func (r *GormOrderRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ledger.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindByDateRange finds all orders whose order date falls within [from, to]
func (r *GormOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]ledger.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Where("order_date >= ? AND order_date <= ?", from, to),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindPaginated finds orders matching the filter along with the total count
func (r *GormOrderRepository) FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[ledger.Order], error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ledger.Order]{}, err
	}

	orders, err := r.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ledger.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *ledger.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// orderStatsRow receives the aggregate scan. COALESCE keeps the sums at zero
// for an empty order set.
type orderStatsRow struct {
	TotalOrders   int64
	TotalCosts    decimal.Decimal
	TotalPayments decimal.Decimal
}

const orderStatsSelect = "COUNT(*) AS total_orders, " +
	"COALESCE(SUM(total_cost), 0) AS total_costs, " +
	"COALESCE(SUM(payment), 0) AS total_payments"

// AggregateByCompany computes order aggregates with a full scan of the
// company's current orders
func (r *GormOrderRepository) AggregateByCompany(ctx context.Context, companyID uuid.UUID) (ledger.OrderStats, error) {
	var row orderStatsRow
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(orderStatsSelect).
		Where("company_id = ?", companyID).
		Scan(&row).Error; err != nil {
		return ledger.ZeroOrderStats(), err
	}

	return ledger.OrderStats{
		TotalOrders:   row.TotalOrders,
		TotalCosts:    row.TotalCosts,
		TotalPayments: row.TotalPayments,
	}, nil
}

// AggregateByDateRange computes order aggregates over [from, to]
func (r *GormOrderRepository) AggregateByDateRange(ctx context.Context, from, to time.Time) (ledger.OrderStats, error) {
	var row orderStatsRow
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(orderStatsSelect).
		Where("order_date >= ? AND order_date <= ?", from, to).
		Scan(&row).Error; err != nil {
		return ledger.ZeroOrderStats(), err
	}

	return ledger.OrderStats{
		TotalOrders:   row.TotalOrders,
		TotalCosts:    row.TotalCosts,
		TotalPayments: row.TotalPayments,
	}, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("order_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR customer_name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "customer_name":
			query = query.Where("customer_name = ?", value)
		case "done":
			query = query.Where("done = ?", value)
		case "paid":
			query = query.Where("paid = ?", value)
		case "order_date_from":
			query = query.Where("order_date >= ?", value)
		case "order_date_to":
			query = query.Where("order_date <= ?", value)
		}
	}

	return query
}

func toDomainOrders(orderModels []models.OrderModel) []ledger.Order {
	orders := make([]ledger.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ ledger.OrderRepository = (*GormOrderRepository)(nil)
