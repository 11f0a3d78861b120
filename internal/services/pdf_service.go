package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type PDFService interface {
	// RenderInvoice produces a printable A4 invoice from the stored snapshot
	// data. Live item and tax rate rows are never consulted.
	RenderInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]byte, error)
}

type pdfService struct {
	invoiceRepo repositories.InvoiceRepository
	orgRepo     repositories.OrganizationRepository
	partyRepo   repositories.PartyRepository
}

func NewPDFService(invoiceRepo repositories.InvoiceRepository, orgRepo repositories.OrganizationRepository, partyRepo repositories.PartyRepository) PDFService {
	return &pdfService{
		invoiceRepo: invoiceRepo,
		orgRepo:     orgRepo,
		partyRepo:   partyRepo,
	}
}

func (s *pdfService) RenderInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, common.SecureErrorMessage("load invoice", err)
	}
	items, err := s.invoiceRepo.GetItems(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, common.SecureErrorMessage("load invoice items", err)
	}
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, common.SecureErrorMessage("load organization", err)
	}
	party, err := s.partyRepo.GetByID(ctx, organizationID, invoice.PartyID)
	if err != nil {
		return nil, common.SecureErrorMessage("load party", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 15.0
	marginY := 15.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	// Seller header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "TAX INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, org.Name)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if org.GSTIN != nil && *org.GSTIN != "" {
		pdf.Cell(0, 6, fmt.Sprintf("GSTIN: %s", *org.GSTIN))
		pdf.Ln(6)
	}
	if org.Address != nil && *org.Address != "" {
		pdf.Cell(0, 6, *org.Address)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Invoice details
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Number: %s", invoice.InvoiceNumber))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice Date: %s", invoice.IssuedDate.Format("02-Jan-2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("02-Jan-2006")))
	pdf.Ln(8)

	// Buyer details
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "BILL TO:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, party.Name)
	pdf.Ln(6)
	if party.GSTIN != nil && *party.GSTIN != "" {
		pdf.Cell(0, 6, fmt.Sprintf("GSTIN: %s", *party.GSTIN))
		pdf.Ln(6)
	}
	if party.BillingAddress != nil && *party.BillingAddress != "" {
		pdf.Cell(0, 6, *party.BillingAddress)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)

	interState := invoice.GSTMode == models.GSTInterState
	var headers []string
	var colWidths []float64
	if interState {
		headers = []string{"Item", "HSN", "Qty", "Rate", "Taxable", "IGST", "Cess", "Amount"}
		colWidths = []float64{50, 18, 16, 20, 22, 20, 14, 20}
	} else {
		headers = []string{"Item", "HSN", "Qty", "Rate", "Taxable", "CGST", "SGST", "Cess", "Amount"}
		colWidths = []float64{42, 16, 14, 18, 20, 18, 18, 14, 20}
	}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(255, 255, 255)
	for _, item := range items {
		hsn := ""
		if item.HSNCode != nil {
			hsn = *item.HSNCode
		}
		cells := []string{
			item.ItemName,
			hsn,
			item.Quantity.Round(2).String(),
			item.UnitPrice.Round(2).String(),
			item.TaxableAmount.Round(2).String(),
		}
		if interState {
			cells = append(cells, item.IGSTAmount.Round(2).String())
		} else {
			cells = append(cells, item.CGSTAmount.Round(2).String(), item.SGSTAmount.Round(2).String())
		}
		cells = append(cells, item.CessAmount.Round(2).String(), item.NetAmount.Round(2).String())

		for i, cell := range cells {
			align := "R"
			if i == 0 || i == 1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[i], 8, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(8)
	}
	pdf.Ln(4)

	// Totals block
	pdf.SetFont("Arial", "", 10)
	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(140, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, value, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	totalRow("Subtotal:", invoice.Subtotal.Round(2).String(), false)
	if invoice.TotalDiscountAmount.IsPositive() {
		totalRow("Discount:", invoice.TotalDiscountAmount.Round(2).String(), false)
	}
	totalRow("Total Tax:", invoice.TotalTaxAmount.Round(2).String(), false)
	if invoice.RoundOffEnabled && !invoice.RoundOffAmount.IsZero() {
		totalRow("Round Off:", invoice.RoundOffAmount.Round(2).String(), false)
	}
	totalRow("Total:", invoice.FinalTotal.Round(2).String(), true)

	if invoice.Notes != nil && *invoice.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, *invoice.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, common.SecureErrorMessage("render invoice pdf", err)
	}
	return buf.Bytes(), nil
}
