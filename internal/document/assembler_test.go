package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docugen/docgen_bot/internal/model"
	"github.com/docugen/docgen_bot/internal/tax"
)

func sampleFields() map[string]string {
	return map[string]string{
		"first_name":  "John",
		"last_name":   "Doe",
		"address":     "12 Main St",
		"city":        "Montreal",
		"postal_code": "H3Z 2Y7",
		"unit":        "4B",
		"phone":       "514-555-0101",
	}
}

func sampleResult() *model.PayrollResult {
	result := tax.DefaultTable().Compute(2000, tax.FreqBiweekly, "QC")
	return &result
}

func TestRenderPayrollProducesPDF(t *testing.T) {
	fields := sampleFields()
	fields["employer"] = "Acme Corp"
	fields["salary"] = "2000.00"

	content, err := NewAssembler().Render("payroll", "pay_standard", fields, sampleResult())

	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestRenderDetailedPayrollIncludesAnnualTable(t *testing.T) {
	fields := sampleFields()
	fields["employer"] = "Acme Corp"

	detailed, err := NewAssembler().Render("payroll", "pay_detailed", fields, sampleResult())
	require.NoError(t, err)
	simple, err := NewAssembler().Render("payroll", "pay_simple", fields, sampleResult())
	require.NoError(t, err)

	// детальный шаблон несет дополнительную годовую таблицу
	assert.Greater(t, len(detailed), len(simple))
}

func TestRenderBankStatementEmbedsChart(t *testing.T) {
	fields := sampleFields()
	fields["account"] = "****-****-1234"

	content, err := NewAssembler().Render("bank", "bank_monthly", fields, nil)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
	// PNG графика заметно тяжелее голого текстового PDF
	assert.Greater(t, len(content), 5000)
}

func TestRenderBillComputesSalesTax(t *testing.T) {
	fields := sampleFields()
	fields["company"] = "Hydro Quebec"
	fields["amount"] = "150.50"
	fields["due_date"] = "2025-01-15"

	content, err := NewAssembler().Render("bill", "bill_utility", fields, nil)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestRenderTaxSlipAndLetter(t *testing.T) {
	slip := sampleFields()
	slip["employer"] = "Acme Corp"
	slip["income"] = "52000.00"
	content, err := NewAssembler().Render("taxslip", "slip_t4", slip, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))

	letter := sampleFields()
	letter["employer"] = "Acme Corp"
	letter["position"] = "Developer"
	letter["start_date"] = "2022-03-01"
	letter["salary"] = "3200.00"
	letter["employment_type"] = "full_time"
	content, err = NewAssembler().Render("letter", "letter_salary", letter, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestRenderUnknownCategoryFails(t *testing.T) {
	_, err := NewAssembler().Render("mortgage", "x", sampleFields(), nil)
	assert.Error(t, err)
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "0.00 $", money(0))
	assert.Equal(t, "150.50 $", money(150.5))
	assert.Equal(t, "2,500.00 $", money(2500))
	assert.Equal(t, "52,000.00 $", money(52000))
	assert.Equal(t, "1,234,567.89 $", money(1234567.89))
	assert.Equal(t, "-1,200.00 $", money(-1200))
}

func TestRenderBalanceChartPNG(t *testing.T) {
	png, err := renderBalanceChart(1000, 2300)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// сигнатура PNG
	assert.Equal(t, byte(0x89), png[0])
	assert.Equal(t, "PNG", string(png[1:4]))
}
