// Package render writes a finalized booking record into an XLSX invoice.
package render

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

// Writer produces invoice workbooks. It consumes records; it never reaches
// back into the extraction engine.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

const sheetName = "Invoice"

// InvoiceXLSX renders rec, plus any attached document images, into workbook
// bytes. Attachments land on a separate sheet so the invoice layout stays
// printable.
func (w *Writer) InvoiceXLSX(rec *booking.Record, attachments [][]byte) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	row := 1
	writeRow := func(label string, value any) {
		if value == nil {
			return
		}
		lc, _ := excelize.CoordinatesToCellName(1, row)
		vc, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheetName, lc, label)
		_ = f.SetCellValue(sheetName, vc, value)
		row++
	}
	writeHeading := func(h string) {
		row++
		lc, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, lc, h)
		row++
	}

	writeRow("Invoice No.", strOrNil(rec.InvoiceNumber))
	writeRow("Invoice Date", strOrNil(rec.InvoiceDate))

	writeHeading("Customer")
	writeRow("Name", strOrNil(rec.CustomerName))
	writeRow("Company", strOrNil(rec.CompanyName))
	writeRow("Mobile", strOrNil(rec.MobileNumber))
	writeRow("Address", strOrNil(rec.Address))
	writeRow("GSTIN", strOrNil(rec.TaxID))

	writeHeading("Vehicle & Period")
	writeRow("Vehicle", strOrNil(rec.VehicleName))
	writeRow("Registration", strOrNil(rec.VehicleNumber))
	writeRow("Included KM", intOrNil(rec.IncludedKM))
	writeRow("From", strOrNil(rec.StartDatetime))
	writeRow("To", strOrNil(rec.EndDatetime))
	writeRow("Days", intOrNil(rec.DurationDays))

	writeHeading("Charges")
	writeRow("Base Rent", numOrNil(rec.BaseRent))
	writeRow("Extra KM", numOrNil(rec.ExtraKM))
	writeRow("Extra KM Rate", numOrNil(rec.ExtraKMRate))
	writeRow("Extra KM Charge", numOrNil(rec.ExtraKMCharge))
	writeRow("Extra Hour Charge", numOrNil(rec.ExtraHourCharge))
	writeRow("Driver Allowance", numOrNil(rec.DriverAllowance))
	writeRow("Pickup/Drop", numOrNil(rec.PickupDropCharges))
	writeRow("Other Charges", numOrNil(rec.OtherCharges))
	writeRow("Security Deposit", numOrNil(rec.SecurityDeposit))
	writeRow("Total", numOrNil(rec.TotalAmount))
	writeRow("Advance Paid", numOrNil(rec.AdvancePaid))
	writeRow("Balance Due", numOrNil(rec.BalanceDue))

	writeHeading("Terms")
	writeRow("Fuel Included", flagOrNil(rec.FuelIncluded))
	writeRow("Toll Included", flagOrNil(rec.TollIncluded))
	writeRow("Pickup/Drop Extra", flagOrNil(rec.PickupDropExtra))
	writeRow("Payment Mode", strOrNil(rec.PaymentMode))
	writeRow("Place of Supply", strOrNil(rec.PlaceOfSupply))

	writeHeading("Extraction")
	writeRow("Method", rec.ExtractionMethod)
	writeRow("Confidence", string(rec.ExtractionConfidence))
	writeRow("Calculation Verified", rec.CalculationVerified)
	writeRow("Notes", strOrNil(rec.Notes))

	_ = f.SetColWidth(sheetName, "A", "A", 22)
	_ = f.SetColWidth(sheetName, "B", "B", 48)

	if err := w.attachImages(f, attachments); err != nil {
		// Attachments are best-effort: the invoice still renders.
		w.logger.Warn("render.attachments_failed", "error", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("render.invoice.ok",
		"rows", row,
		"attachments", len(attachments),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (w *Writer) attachImages(f *excelize.File, attachments [][]byte) error {
	if len(attachments) == 0 {
		return nil
	}
	const docsSheet = "Documents"
	if _, err := f.NewSheet(docsSheet); err != nil {
		return err
	}
	for i, img := range attachments {
		cell, _ := excelize.CoordinatesToCellName(1, 1+i*30)
		if err := f.AddPictureFromBytes(docsSheet, cell, &excelize.Picture{
			Extension: ".jpg",
			File:      img,
		}); err != nil {
			return fmt.Errorf("attach image %d: %w", i, err)
		}
	}
	return nil
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func numOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func flagOrNil(p *bool) any {
	if p == nil {
		return nil
	}
	if *p {
		return "Yes"
	}
	return "No"
}
