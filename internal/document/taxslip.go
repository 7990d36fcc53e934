package document

import (
	"github.com/go-pdf/fpdf"

	"github.com/docugen/docgen_bot/internal/model"
)

var slipTitles = map[string]string{
	"slip_t4":  "T4 — STATEMENT OF REMUNERATION PAID",
	"slip_t4a": "T4A — STATEMENT OF OTHER INCOME",
}

// buildTaxSlip собирает годовую налоговую форму в стиле боксов T4:
// доход и удержанные за год суммы из рассчитанной раскладки.
func (a *Assembler) buildTaxSlip(pdf *fpdf.Fpdf, templateID string, fields map[string]string, result *model.PayrollResult) {
	heading := slipTitles[templateID]
	if heading == "" {
		heading = "TAX SLIP"
	}
	title(pdf, heading, 51, 51, 51)

	holderBlock(pdf, "EMPLOYEE", fields)

	section(pdf, "EMPLOYER")
	infoRow(pdf, "Company:", fields["employer"])
	if result != nil {
		infoRow(pdf, "Province of employment:", result.Province)
	}
	pdf.Ln(4)

	if result != nil {
		section(pdf, "ANNUAL AMOUNTS")
		tableHeader(pdf, 51, 51, 51)
		tableRow(pdf, "Box 14 — Employment income", money(result.GrossAnnual), false)
		tableRow(pdf, "Box 22 — Income tax deducted",
			money(result.FederalTaxAnnual+result.ProvincialTaxAnnual), false)
		tableRow(pdf, "Box 18 — EI premiums", money(result.EIAnnual), false)
		tableRow(pdf, "Box 16 — CPP/QPP contributions", money(result.PensionAnnual), false)
		tableRow(pdf, "Net income",
			money(result.GrossAnnual-result.FederalTaxAnnual-result.ProvincialTaxAnnual-
				result.EIAnnual-result.PensionAnnual), true)
	}

	footer(pdf)
}
