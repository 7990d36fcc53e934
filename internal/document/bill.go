package document

import (
	"strconv"

	"github.com/go-pdf/fpdf"
)

var billTitles = map[string]string{
	"bill_utility": "UTILITY BILL",
	"bill_telecom": "TELECOM BILL",
	"bill_rent":    "RENT RECEIPT",
	"bill_invoice": "INVOICE",
}

// ставка налога с продаж для счетов
const salesTaxRate = 0.15

// buildBill собирает счет: поставщик, блок плательщика, сумма с налогом
// и срок оплаты.
func (a *Assembler) buildBill(pdf *fpdf.Fpdf, templateID string, fields map[string]string) {
	heading := billTitles[templateID]
	if heading == "" {
		heading = "BILL STATEMENT"
	}
	title(pdf, heading, 139, 0, 0)

	section(pdf, fields["company"])
	pdf.Ln(2)

	holderBlock(pdf, "BILLED TO", fields)

	// сумма уже нормализована мастером
	amount, _ := strconv.ParseFloat(fields["amount"], 64)
	tax := amount * salesTaxRate
	total := amount + tax

	section(pdf, "CHARGES")
	tableHeader(pdf, 139, 0, 0)
	tableRow(pdf, "Services", money(amount), false)
	tableRow(pdf, "Sales tax (GST/QST)", money(tax), false)
	tableRow(pdf, "TOTAL DUE", money(total), true)
	pdf.Ln(4)

	infoRow(pdf, "Due date:", fields["due_date"])

	footer(pdf)
}
