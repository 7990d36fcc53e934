package tax

import (
	"math"

	"github.com/docugen/docgen_bot/internal/model"
)

// PayFrequency — периодичность выплат.
type PayFrequency string

const (
	FreqWeekly   PayFrequency = "weekly"
	FreqBiweekly PayFrequency = "biweekly"
	FreqMonthly  PayFrequency = "monthly"
	FreqAnnual   PayFrequency = "annual"
)

// PeriodsPerYear возвращает множитель аннуализации.
// Неизвестная периодичность трактуется как двухнедельная.
func (f PayFrequency) PeriodsPerYear() float64 {
	switch f {
	case FreqWeekly:
		return 52
	case FreqBiweekly:
		return 26
	case FreqMonthly:
		return 12
	case FreqAnnual:
		return 1
	}
	return 26
}

// Annualize переводит сумму за период в годовую.
func Annualize(amount float64, freq PayFrequency) float64 {
	return amount * freq.PeriodsPerYear()
}

// Deannualize переводит годовую сумму обратно в сумму за период.
func Deannualize(annual float64, freq PayFrequency) float64 {
	return annual / freq.PeriodsPerYear()
}

// computeBracketTax сворачивает шкалу по возрастанию границ.
// Внутри цикла нет округления; доход ровно на границе ступени
// облагается целиком в нижней ступени (min(income, limit) == limit,
// следующая итерация останавливается на income <= prevLimit).
func computeBracketTax(income float64, brackets []Bracket) float64 {
	total := 0.0
	prevLimit := 0.0
	for _, b := range brackets {
		if income <= prevLimit {
			break
		}
		taxable := math.Min(income, b.UpTo) - prevLimit
		total += taxable * b.Rate
		prevLimit = b.UpTo
	}
	return total
}

// creditedTax применяет базовый личный вычет юрисдикции
// и не дает налогу уйти в минус.
func creditedTax(tax float64, j Jurisdiction) float64 {
	credit := j.BasicPersonal * j.lowestRate()
	return math.Max(0, tax-credit)
}

// round2 округляет до центов. Применяется ровно один раз,
// к уже вычисленной итоговой сумме.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute превращает брутто за период в полную раскладку удержаний.
// Функция чистая: одинаковые входы дают побитово одинаковый результат.
// Валидация суммы — забота машины состояний, здесь вход считается
// корректным и положительным.
func (t *Table) Compute(gross float64, freq PayFrequency, province string) model.PayrollResult {
	annual := Annualize(gross, freq)

	federal := creditedTax(computeBracketTax(annual, t.Federal.Brackets), t.Federal)

	var provincial float64
	if j, ok := t.Provinces[province]; ok {
		provincial = creditedTax(computeBracketTax(annual, j.Brackets), j)
	} else {
		// неизвестная провинция: плоская ставка без шкалы и без вычета
		provincial = annual * t.DefaultProvincialRate
	}

	ei := math.Min(annual*t.EI.Rate, t.EI.MaxAnnual)

	pension := t.Pension
	if province == provinceQuebec {
		pension = t.PensionQC
	}
	pensionable := math.Max(0, annual-pension.Exemption)
	pensionDed := math.Min(pensionable*pension.Rate, pension.MaxAnnual)

	result := model.PayrollResult{
		Province:  province,
		Frequency: string(freq),

		GrossPeriod: round2(gross),
		GrossAnnual: round2(annual),

		FederalTaxAnnual:    round2(federal),
		FederalTaxPeriod:    round2(Deannualize(federal, freq)),
		ProvincialTaxAnnual: round2(provincial),
		ProvincialTaxPeriod: round2(Deannualize(provincial, freq)),

		EIAnnual:      round2(ei),
		EIPeriod:      round2(Deannualize(ei, freq)),
		PensionAnnual: round2(pensionDed),
		PensionPeriod: round2(Deannualize(pensionDed, freq)),
	}

	// нетто собирается из уже округленных периодных сумм,
	// чтобы колонки документа сходились цент в цент
	result.NetPeriod = round2(result.GrossPeriod -
		result.FederalTaxPeriod -
		result.ProvincialTaxPeriod -
		result.EIPeriod -
		result.PensionPeriod)

	return result
}
