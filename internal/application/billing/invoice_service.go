package billing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/rendering"
)

// InvoiceService turns batches of orders into printed invoices. One batch
// yields one PDF document with one page per billee group, plus a persisted
// factor per page. Factors for a batch are written in a single transaction
// before the PDF is rendered; a failed render leaves the factors in place and
// the batch can be re-rendered from them.
type InvoiceService struct {
	orderRepo   ledger.OrderRepository
	companyRepo ledger.CompanyRepository
	uow         billing.BillingUnitOfWork
	template    *rendering.InvoiceTemplate
	renderer    rendering.PDFRenderer
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. The template may be nil
// when the invoice font failed to load at startup; generation is then
// disabled while the rest of the API keeps working.
func NewInvoiceService(
	orderRepo ledger.OrderRepository,
	companyRepo ledger.CompanyRepository,
	uow billing.BillingUnitOfWork,
	template *rendering.InvoiceTemplate,
	renderer rendering.PDFRenderer,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		uow:         uow,
		template:    template,
		renderer:    renderer,
		logger:      logger,
	}
}

// Generate produces the invoice PDF for the selected orders
func (s *InvoiceService) Generate(ctx context.Context, req GenerateInvoicesRequest) (*GeneratedInvoices, error) {
	if s.template == nil || s.renderer == nil {
		return nil, shared.NewDomainError("INVOICE_DISABLED",
			"Invoice generation is unavailable because the invoice font is not loaded")
	}

	orders, err := s.orderRepo.FindByIDs(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(req.OrderIDs) {
		return nil, shared.NewDomainError("NOT_FOUND", "One or more selected orders do not exist")
	}

	groups := billing.GroupOrders(orders)
	if err := billing.CheckCapacity(groups); err != nil {
		return nil, err
	}

	companies, err := s.loadCompanies(ctx, groups)
	if err != nil {
		return nil, err
	}

	// Totals are computed purely per group, then all factors for the batch
	// are persisted together.
	factors := make([]*billing.Factor, 0, len(groups))
	for _, group := range groups {
		factors = append(factors, billing.NewFactor(group.Billee, group.Totals()))
	}

	err = s.uow.Execute(ctx, func(repo billing.FactorRepository) error {
		for _, factor := range factors {
			if err := repo.Save(ctx, factor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := s.buildDocument(groups, factors, companies)

	html, err := s.template.Render(doc)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &rendering.RenderRequest{
		HTML:  html,
		Title: "factor",
	})
	if err != nil {
		return nil, err
	}

	numbers := make([]int64, 0, len(factors))
	for _, factor := range factors {
		numbers = append(numbers, factor.Number)
	}

	filename := invoiceFilename(numbers, time.Now())

	s.logger.Info("invoice batch generated",
		zap.Int("orders", len(orders)),
		zap.Int("invoices", len(factors)),
		zap.String("filename", filename))

	return &GeneratedInvoices{
		Filename:      filename,
		PDF:           result.PDFData,
		FactorNumbers: numbers,
	}, nil
}

func (s *InvoiceService) buildDocument(
	groups []billing.OrderGroup,
	factors []*billing.Factor,
	companies map[uuid.UUID]*ledger.Company,
) rendering.InvoiceDocument {
	pages := make([]rendering.InvoicePage, 0, len(groups))

	for i, group := range groups {
		factor := factors[i]

		var company *ledger.Company
		if id, ok := group.Billee.CompanyID(); ok {
			company = companies[id]
		}

		phone := ""
		if company != nil {
			phone = company.PhoneNumber
		} else if len(group.Orders) > 0 {
			phone = group.Orders[0].PhoneNumber
		}

		page := rendering.InvoicePage{
			Number:           factor.Number,
			BilleeName:       group.Billee.DisplayName(company),
			PhoneNumber:      phone,
			IssuedAt:         factor.IssuedAt,
			TotalCost:        factor.TotalCost,
			TotalPayment:     factor.Payment,
			RemainingPayment: factor.RemainingPayment,
		}

		for j, order := range group.Orders {
			page.Rows = append(page.Rows, rendering.InvoiceRow{
				Index:      j + 1,
				Title:      order.Title,
				Dimensions: order.Dimensions(),
				Amount:     order.Amount,
				UnitCost:   order.UnitCost,
				TotalCost:  order.TotalCost,
				Payment:    order.Payment,
				Remaining:  order.RemainingPayment,
			})
		}

		pages = append(pages, page)
	}

	return rendering.InvoiceDocument{Pages: pages}
}

func (s *InvoiceService) loadCompanies(ctx context.Context, groups []billing.OrderGroup) (map[uuid.UUID]*ledger.Company, error) {
	companies := make(map[uuid.UUID]*ledger.Company)
	for _, group := range groups {
		id, ok := group.Billee.CompanyID()
		if !ok {
			continue
		}
		company, err := s.companyRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		companies[id] = company
	}
	return companies, nil
}

// invoiceFilename builds the download name for a batch,
// factor_<numbers>_<jalali date>.pdf.
func invoiceFilename(numbers []int64, now time.Time) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, strconv.FormatInt(n, 10))
	}
	return "factor_" + strings.Join(parts, "_") + "_" + rendering.JalaliFileDate(now) + ".pdf"
}
