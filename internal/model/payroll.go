package model

// PayrollResult — неизменяемый снимок расчета зарплаты за период.
// Все годовые суммы считаются по прогрессивным шкалам,
// периодные получаются деаннуализацией.
type PayrollResult struct {
	Province  string `json:"province"`
	Frequency string `json:"frequency"`

	GrossPeriod float64 `json:"gross_period"`
	GrossAnnual float64 `json:"gross_annual"`

	FederalTaxAnnual    float64 `json:"federal_tax_annual"`
	FederalTaxPeriod    float64 `json:"federal_tax_period"`
	ProvincialTaxAnnual float64 `json:"provincial_tax_annual"`
	ProvincialTaxPeriod float64 `json:"provincial_tax_period"`

	EIAnnual      float64 `json:"ei_annual"`
	EIPeriod      float64 `json:"ei_period"`
	PensionAnnual float64 `json:"pension_annual"`
	PensionPeriod float64 `json:"pension_period"`

	NetPeriod float64 `json:"net_period"`
}

// TotalDeductionsPeriod возвращает сумму всех удержаний за период.
func (r *PayrollResult) TotalDeductionsPeriod() float64 {
	return r.FederalTaxPeriod + r.ProvincialTaxPeriod + r.EIPeriod + r.PensionPeriod
}
