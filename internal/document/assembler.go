package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/docugen/docgen_bot/internal/model"
)

// Assembler собирает PDF-документ из финализированной анкеты.
// Получает только полностью провалидированные данные: незавершенная
// сессия сюда не попадает.
type Assembler struct{}

// NewAssembler создает генератор документов.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Render маршрутизирует по категории и возвращает содержимое PDF.
// Для payroll и taxslip ожидается непустой result.
func (a *Assembler) Render(category, templateID string, fields map[string]string, result *model.PayrollResult) ([]byte, error) {
	pdf := newPage()

	switch category {
	case "payroll":
		a.buildPayroll(pdf, templateID, fields, result)
	case "bank":
		if err := a.buildBankStatement(pdf, fields); err != nil {
			return nil, err
		}
	case "bill":
		a.buildBill(pdf, templateID, fields)
	case "taxslip":
		a.buildTaxSlip(pdf, templateID, fields, result)
	case "letter":
		a.buildLetter(pdf, templateID, fields)
	default:
		return nil, fmt.Errorf("unknown document category: %s", category)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s document: %w", category, err)
	}
	return buf.Bytes(), nil
}

func newPage() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	return pdf
}

// title рисует центрированный заголовок документа.
func title(pdf *fpdf.Fpdf, text string, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 12, text, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

// section рисует подзаголовок раздела.
func section(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// infoRow рисует пару "метка — значение" без рамки.
func infoRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

// tableHeader рисует залитую строку заголовка таблицы сумм.
func tableHeader(pdf *fpdf.Fpdf, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(120, 9, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 9, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
}

// tableRow рисует строку таблицы сумм; bold выделяет итоговые строки.
func tableRow(pdf *fpdf.Fpdf, label, amount string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(120, 8, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, 8, amount, "1", 1, "R", false, 0, "")
}

// footer рисует дисклеймер и дату генерации. Дата — метаданные рендера,
// в вычисленные суммы она не входит.
func footer(pdf *fpdf.Fpdf) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "This document is generated for informational purposes only.", "", 1, "L", false, 0, "")
}

// money форматирует сумму с разделителями тысяч: 52,000.00 $.
func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]
	var grouped []string
	for len(whole) > 3 {
		grouped = append([]string{whole[len(whole)-3:]}, grouped...)
		whole = whole[:len(whole)-3]
	}
	grouped = append([]string{whole}, grouped...)

	out := strings.Join(grouped, ",") + "." + parts[1] + " $"
	if neg {
		out = "-" + out
	}
	return out
}

// fullName собирает полное имя из полей анкеты.
func fullName(fields map[string]string) string {
	return strings.TrimSpace(fields["first_name"] + " " + fields["last_name"])
}

// fullAddress собирает адресную строку с учетом необязательной квартиры.
func fullAddress(fields map[string]string) string {
	parts := []string{fields["address"]}
	if fields["unit"] != "" {
		parts = append(parts, "Unit "+fields["unit"])
	}
	parts = append(parts, fields["city"]+", "+fields["postal_code"])
	return strings.Join(parts, ", ")
}

// holderBlock рисует общий блок с данными владельца документа.
func holderBlock(pdf *fpdf.Fpdf, heading string, fields map[string]string) {
	section(pdf, heading)
	infoRow(pdf, "Full name:", fullName(fields))
	infoRow(pdf, "Address:", fullAddress(fields))
	if fields["phone"] != "" {
		infoRow(pdf, "Phone:", fields["phone"])
	}
	pdf.Ln(4)
}
