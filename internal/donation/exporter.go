package donation

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// donorLabel substitutes a placeholder for anonymous gifts.
func donorLabel(name string) string {
	if name == "" {
		return "Anonymous"
	}
	return name
}

// Exporter renders donation data as downloadable files.
type Exporter interface {
	Export(format string, donations []Donation) ([]byte, string, string, error)
	Receipt(d *Donation) ([]byte, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, donations []Donation) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportCSV(donations)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("donations_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatExcel:
		data, err := e.exportExcel(donations)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("donations_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	default:
		return nil, "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (e *exporter) exportCSV(donations []Donation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Donor Name", "Amount", "Donation Type", "Donation Date", "Notes", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, d := range donations {
		record := []string{
			d.ID,
			donorLabel(d.DonorName),
			fmt.Sprintf("%.2f", d.Amount),
			d.DonationType,
			d.DonationDate,
			d.Notes,
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(donations []Donation) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Donations"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Donor Name", "Amount", "Donation Type", "Donation Date", "Notes", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, d := range donations {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), donorLabel(d.DonorName))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), d.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), d.DonationType)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), d.DonationDate)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), d.Notes)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), d.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Receipt renders a single-donation PDF acknowledgment.
func (e *exporter) Receipt(d *Donation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Donation Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Receipt No.", d.ID},
		{"Donor", donorLabel(d.DonorName)},
		{"Amount", fmt.Sprintf("%.2f", d.Amount)},
		{"Type", d.DonationType},
		{"Date", d.DonationDate},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(120, 8, row[1], "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, "Thank you for your generous gift.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("donation_receipt_%s.pdf", d.ID), nil
}
