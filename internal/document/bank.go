package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// показатели сводки выписки; выписка иллюстративная,
// реальные транзакции в анкете не собираются
const (
	openingBalance = 1000.00
	totalDeposits  = 2500.00
	totalWithdraws = 1200.00
)

// buildBankStatement собирает банковскую выписку: блок владельца,
// сводная таблица и график динамики баланса.
func (a *Assembler) buildBankStatement(pdf *fpdf.Fpdf, fields map[string]string) error {
	title(pdf, "BANK STATEMENT", 0, 100, 0)

	holderBlock(pdf, "ACCOUNT HOLDER", fields)

	section(pdf, "ACCOUNT")
	infoRow(pdf, "Account number:", fields["account"])
	pdf.Ln(4)

	closing := openingBalance + totalDeposits - totalWithdraws

	section(pdf, "SUMMARY")
	tableHeader(pdf, 0, 100, 0)
	tableRow(pdf, "Opening balance", money(openingBalance), false)
	tableRow(pdf, "Total deposits", "+"+money(totalDeposits), false)
	tableRow(pdf, "Total withdrawals", "-"+money(totalWithdraws), false)
	tableRow(pdf, "Closing balance", money(closing), true)
	pdf.Ln(6)

	png, err := renderBalanceChart(openingBalance, closing)
	if err != nil {
		return fmt.Errorf("failed to render balance chart: %w", err)
	}

	section(pdf, "BALANCE TREND")
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("balance_trend", opts, bytes.NewReader(png))
	pdf.ImageOptions("balance_trend", 20, pdf.GetY(), 170, 0, true, opts, 0, "")

	footer(pdf)
	return nil
}
