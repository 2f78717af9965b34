package booking

import (
	"bytes"
	"context"
	"fmt"

	"horizon/models"
	"horizon/services/storage"
	"horizon/utils"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// VoucherService renders a booking into a paginated PDF voucher and attaches
// the hosted document URL to the booking.
type VoucherService interface {
	GenerateAndAttach(ctx context.Context, b *models.Booking) (string, error)
}

type DefaultVoucherService struct {
	Storage storage.StorageService
	Setter  VoucherURLSetter
	Logger  *zap.Logger
}

// VoucherURLSetter is the slice of the booking repository the voucher flow needs.
type VoucherURLSetter interface {
	SetVoucherURL(ctx context.Context, bookingID, url string) error
}

// GenerateAndAttach renders the voucher, uploads it, and writes the URL onto the
// booking. The voucher URL is a post-commit mutation; everything else on the
// booking stays frozen.
func (v *DefaultVoucherService) GenerateAndAttach(ctx context.Context, b *models.Booking) (string, error) {
	pdfBytes, err := RenderVoucher(b)
	if err != nil {
		return "", fmt.Errorf("render voucher for %s: %w", b.ID, err)
	}

	url, err := v.Storage.UploadBytes(ctx, pdfBytes, utils.VoucherFolder, "voucher-"+b.ID)
	if err != nil {
		return "", fmt.Errorf("upload voucher for %s: %w", b.ID, err)
	}

	if err := v.Setter.SetVoucherURL(ctx, b.ID, url); err != nil {
		return "", err
	}
	b.VoucherURL = url

	v.Logger.Info("voucher attached",
		zap.String("bookingId", b.ID), zap.String("url", url))
	return url, nil
}

const voucherPageBreakY = 260

// RenderVoucher lays out the booking voucher. The layout is plain sequential
// drawing with page-break checks, nothing dynamic.
func RenderVoucher(b *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher "+b.ID, false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Horizon Retreats")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Booking Voucher")
	pdf.Ln(12)

	writeRow := func(label, value string) {
		if pdf.GetY() > voucherPageBreakY {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	writeRow("Booking ID", b.ID)
	writeRow("Status", string(b.Status))
	writeRow("Type", string(b.Type))
	writeRow("Item", b.ItemTitle)
	writeRow("Start Date", b.StartDate)
	if b.EndDate != "" {
		writeRow("End Date", b.EndDate)
	}
	writeRow("Guest", b.CustomerName)
	writeRow("Email", b.CustomerEmail)
	writeRow("Phone", b.CustomerPhone)
	if b.EmergencyContact.Name != "" {
		writeRow("Emergency Contact", fmt.Sprintf("%s (%s)", b.EmergencyContact.Name, b.EmergencyContact.Phone))
	}
	if b.SpecialRequests != "" {
		writeRow("Special Requests", b.SpecialRequests)
	}
	pdf.Ln(6)

	// Participants
	if len(b.ParticipantList) > 0 {
		if pdf.GetY() > voucherPageBreakY-20 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 9, fmt.Sprintf("Travellers (%d)", b.Participants))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, 7, "Name", "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, "Age", "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 7, "ID Number", "1", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, p := range b.ParticipantList {
			if pdf.GetY() > voucherPageBreakY {
				pdf.AddPage()
			}
			pdf.CellFormat(90, 7, p.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%d", p.Age), "1", 0, "C", false, 0, "")
			pdf.CellFormat(0, 7, p.IDNumber, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	// Payment summary
	if pdf.GetY() > voucherPageBreakY-30 {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 9, "Payment")
	pdf.Ln(10)
	writeRow("Amount", fmt.Sprintf("%s %.2f", b.Currency, b.TotalAmount))
	writeRow("Payment Reference", b.PaymentID)
	writeRow("Payment Status", b.PaymentStatus)
	writeRow("Booked On", b.CreatedAt.Format("02 Jan 2006 15:04"))

	// Terms
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 9, "Terms & Conditions")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	for _, term := range voucherTerms {
		if pdf.GetY() > voucherPageBreakY {
			pdf.AddPage()
		}
		pdf.MultiCell(0, 5, "- "+term, "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var voucherTerms = []string{
	"Present this voucher together with a valid photo ID at the start of your trip.",
	"Cancellations follow the policy shown at checkout; cancelling does not remove the booking record.",
	"Rescheduling requests must reach us at least 48 hours before the start date.",
	"Horizon Retreats is not liable for delays caused by weather or local authorities.",
	"This document is generated automatically and is valid without a signature.",
}
