package document

import (
	"github.com/go-pdf/fpdf"

	"github.com/docugen/docgen_bot/internal/model"
)

var payrollTitles = map[string]string{
	"pay_standard": "PAY STATEMENT",
	"pay_detailed": "DETAILED PAY STATEMENT",
	"pay_simple":   "PAY STATEMENT",
	"pay_biweekly": "BI-WEEKLY PAY STATEMENT",
}

var frequencyNames = map[string]string{
	"weekly":   "Weekly",
	"biweekly": "Bi-weekly",
	"monthly":  "Monthly",
	"annual":   "Annual",
}

// buildPayroll собирает расчетный листок: блок сотрудника, таблица
// начислений и удержаний из рассчитанной раскладки, блок работодателя.
func (a *Assembler) buildPayroll(pdf *fpdf.Fpdf, templateID string, fields map[string]string, result *model.PayrollResult) {
	heading := payrollTitles[templateID]
	if heading == "" {
		heading = "PAY STATEMENT"
	}
	title(pdf, heading, 0, 51, 102)

	holderBlock(pdf, "EMPLOYEE INFORMATION", fields)

	section(pdf, "PAY DETAILS")
	tableHeader(pdf, 0, 51, 102)
	if result != nil {
		tableRow(pdf, "Gross pay", money(result.GrossPeriod), false)
		tableRow(pdf, "DEDUCTIONS", "", true)
		tableRow(pdf, "Federal income tax", "-"+money(result.FederalTaxPeriod), false)
		tableRow(pdf, "Provincial income tax", "-"+money(result.ProvincialTaxPeriod), false)
		tableRow(pdf, "Employment insurance (EI)", "-"+money(result.EIPeriod), false)
		tableRow(pdf, "Pension plan (CPP/QPP)", "-"+money(result.PensionPeriod), false)
		tableRow(pdf, "NET PAY", money(result.NetPeriod), true)
	}
	pdf.Ln(6)

	if templateID == "pay_detailed" && result != nil {
		section(pdf, "YEAR-TO-DATE EQUIVALENT")
		tableHeader(pdf, 0, 51, 102)
		tableRow(pdf, "Annualized gross", money(result.GrossAnnual), false)
		tableRow(pdf, "Federal income tax", money(result.FederalTaxAnnual), false)
		tableRow(pdf, "Provincial income tax", money(result.ProvincialTaxAnnual), false)
		tableRow(pdf, "Employment insurance (EI)", money(result.EIAnnual), false)
		tableRow(pdf, "Pension plan (CPP/QPP)", money(result.PensionAnnual), false)
		pdf.Ln(6)
	}

	section(pdf, "EMPLOYER")
	infoRow(pdf, "Company:", fields["employer"])
	if result != nil {
		infoRow(pdf, "Pay frequency:", frequencyNames[result.Frequency])
		infoRow(pdf, "Province:", result.Province)
	}

	footer(pdf)
}
