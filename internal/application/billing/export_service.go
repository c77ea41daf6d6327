package billing

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/rendering"
)

// Column headers as they appear in the exported spreadsheets.
var exportHeaders = []string{
	"عنوان سفارش",
	"توضیحات",
	"نام مشتری",
	"نام شرکت",
	"قیمت واحد",
	"قیمت کل",
	"مبلغ پرداختی",
	"پرداخت باقی‌مانده",
	"وضعیت سفارش",
	"تاریخ ایجاد",
}

const (
	statusDone    = "تکمیل شده"
	statusPending = "در حال انتظار"
)

// ExportService produces spreadsheet downloads of selected orders
type ExportService struct {
	orderRepo   ledger.OrderRepository
	companyRepo ledger.CompanyRepository
}

// NewExportService creates a new ExportService
func NewExportService(orderRepo ledger.OrderRepository, companyRepo ledger.CompanyRepository) *ExportService {
	return &ExportService{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
	}
}

// ExportCSV renders the selected orders as UTF-8 CSV. The byte order mark
// makes Excel detect the encoding and display the Persian text correctly.
func (s *ExportService) ExportCSV(ctx context.Context, req ExportOrdersRequest) (*ExportResult, error) {
	rows, err := s.buildRows(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename:    "orders.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// ExportXLSX renders the selected orders as an Excel workbook
func (s *ExportService) ExportXLSX(ctx context.Context, req ExportOrdersRequest) (*ExportResult, error) {
	rows, err := s.buildRows(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename:    "orders.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func (s *ExportService) buildRows(ctx context.Context, ids []uuid.UUID) ([][]string, error) {
	orders, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(ids) {
		return nil, shared.NewDomainError("NOT_FOUND", "One or more selected orders do not exist")
	}

	companies := make(map[uuid.UUID]*ledger.Company)
	rows := make([][]string, 0, len(orders))

	for i := range orders {
		order := &orders[i]

		// The billee column shows the company name when the order belongs to
		// a company, otherwise the walk-in customer name.
		billeeName := order.Billee.CustomerName()
		if id, ok := order.Billee.CompanyID(); ok {
			company, loaded := companies[id]
			if !loaded {
				company, err = s.companyRepo.FindByID(ctx, id)
				if err != nil && err != shared.ErrNotFound {
					return nil, err
				}
				companies[id] = company
			}
			if company != nil {
				billeeName = company.Name
			}
		}

		status := statusPending
		if order.Done {
			status = statusDone
		}

		rows = append(rows, []string{
			order.Title,
			order.Description,
			order.Billee.CustomerName(),
			billeeName,
			order.UnitCost.Truncate(0).String(),
			order.TotalCost.Truncate(0).String(),
			order.Payment.Truncate(0).String(),
			order.RemainingPayment.Truncate(0).String(),
			status,
			formatExportDate(order.OrderDate),
		})
	}

	return rows, nil
}

func formatExportDate(t time.Time) string {
	return rendering.JalaliDateTime(t)
}
