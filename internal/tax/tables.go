package tax

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Bracket — одна ступень прогрессивной шкалы: верхняя граница и
// маржинальная ставка. Граница включительна: доход ровно на границе
// облагается целиком в этой ступени. У последней ступени UpTo = +Inf
// (в YAML записывается как .inf).
type Bracket struct {
	UpTo float64 `yaml:"up_to"`
	Rate float64 `yaml:"rate"`
}

// Jurisdiction — шкала одной юрисдикции и её базовый личный вычет.
type Jurisdiction struct {
	Name          string    `yaml:"name"`
	Brackets      []Bracket `yaml:"brackets"`
	BasicPersonal float64   `yaml:"basic_personal"`
}

// lowestRate возвращает минимальную маржинальную ставку шкалы.
// Вычет считается как BasicPersonal * lowestRate.
func (j Jurisdiction) lowestRate() float64 {
	if len(j.Brackets) == 0 {
		return 0
	}
	low := j.Brackets[0].Rate
	for _, b := range j.Brackets[1:] {
		if b.Rate < low {
			low = b.Rate
		}
	}
	return low
}

// EIParams — страхование занятости: ставка и годовой потолок взноса.
type EIParams struct {
	Rate      float64 `yaml:"rate"`
	MaxAnnual float64 `yaml:"max_annual"`
}

// PensionParams — пенсионный взнос: ставка, годовое освобождение
// и годовой потолок взноса.
type PensionParams struct {
	Rate      float64 `yaml:"rate"`
	Exemption float64 `yaml:"exemption"`
	MaxAnnual float64 `yaml:"max_annual"`
}

// Table — полный набор ставок одного налогового года.
// Таблица — значение: несколько лет могут сосуществовать в процессе,
// каждый вызов Compute работает только с той таблицей, на которой вызван.
type Table struct {
	Year      int                     `yaml:"year"`
	Federal   Jurisdiction            `yaml:"federal"`
	Provinces map[string]Jurisdiction `yaml:"provinces"`
	// Плоская ставка для провинций, отсутствующих в таблице
	DefaultProvincialRate float64       `yaml:"default_provincial_rate"`
	EI                    EIParams      `yaml:"ei"`
	Pension               PensionParams `yaml:"pension"`
	// Квебек администрирует собственный пенсионный план (QPP)
	// с отличной парой ставка/потолок
	PensionQC PensionParams `yaml:"pension_qc"`
}

// провинция с собственным пенсионным планом
const provinceQuebec = "QC"

// DefaultTable возвращает встроенную таблицу ставок за 2024 год.
func DefaultTable() *Table {
	inf := math.Inf(1)
	return &Table{
		Year: 2024,
		Federal: Jurisdiction{
			Name: "Federal",
			Brackets: []Bracket{
				{UpTo: 55867, Rate: 0.15},
				{UpTo: 111733, Rate: 0.205},
				{UpTo: 173205, Rate: 0.26},
				{UpTo: 246752, Rate: 0.29},
				{UpTo: inf, Rate: 0.33},
			},
			BasicPersonal: 15705,
		},
		Provinces: map[string]Jurisdiction{
			"QC": {
				Name: "Quebec",
				Brackets: []Bracket{
					{UpTo: 51780, Rate: 0.14},
					{UpTo: 103545, Rate: 0.19},
					{UpTo: 126000, Rate: 0.24},
					{UpTo: inf, Rate: 0.2575},
				},
				BasicPersonal: 18056,
			},
			"ON": {
				Name: "Ontario",
				Brackets: []Bracket{
					{UpTo: 51446, Rate: 0.0505},
					{UpTo: 102894, Rate: 0.0915},
					{UpTo: 150000, Rate: 0.1116},
					{UpTo: 220000, Rate: 0.1216},
					{UpTo: inf, Rate: 0.1316},
				},
				BasicPersonal: 12399,
			},
			"BC": {
				Name: "British Columbia",
				Brackets: []Bracket{
					{UpTo: 47937, Rate: 0.0506},
					{UpTo: 95875, Rate: 0.077},
					{UpTo: 110076, Rate: 0.105},
					{UpTo: 133664, Rate: 0.1229},
					{UpTo: 181232, Rate: 0.147},
					{UpTo: 252752, Rate: 0.168},
					{UpTo: inf, Rate: 0.205},
				},
				BasicPersonal: 12580,
			},
			"AB": {
				Name: "Alberta",
				Brackets: []Bracket{
					{UpTo: 148269, Rate: 0.10},
					{UpTo: 177922, Rate: 0.12},
					{UpTo: 237230, Rate: 0.13},
					{UpTo: 355845, Rate: 0.14},
					{UpTo: inf, Rate: 0.15},
				},
				BasicPersonal: 21885,
			},
			"MB": {
				Name: "Manitoba",
				Brackets: []Bracket{
					{UpTo: 47000, Rate: 0.108},
					{UpTo: 100000, Rate: 0.1275},
					{UpTo: inf, Rate: 0.174},
				},
				BasicPersonal: 15780,
			},
			"SK": {
				Name: "Saskatchewan",
				Brackets: []Bracket{
					{UpTo: 52057, Rate: 0.105},
					{UpTo: 148734, Rate: 0.125},
					{UpTo: inf, Rate: 0.145},
				},
				BasicPersonal: 18491,
			},
			"NS": {
				Name: "Nova Scotia",
				Brackets: []Bracket{
					{UpTo: 29590, Rate: 0.0879},
					{UpTo: 59180, Rate: 0.1495},
					{UpTo: 93000, Rate: 0.1667},
					{UpTo: 150000, Rate: 0.175},
					{UpTo: inf, Rate: 0.21},
				},
				BasicPersonal: 8481,
			},
			"NB": {
				Name: "New Brunswick",
				Brackets: []Bracket{
					{UpTo: 49958, Rate: 0.094},
					{UpTo: 99916, Rate: 0.14},
					{UpTo: 185064, Rate: 0.16},
					{UpTo: inf, Rate: 0.195},
				},
				BasicPersonal: 13044,
			},
		},
		DefaultProvincialRate: 0.10,
		EI: EIParams{
			Rate:      0.0166,
			MaxAnnual: 1049.12,
		},
		Pension: PensionParams{
			Rate:      0.0595,
			Exemption: 3500,
			MaxAnnual: 3867.50,
		},
		PensionQC: PensionParams{
			Rate:      0.064,
			Exemption: 3500,
			MaxAnnual: 4160.00,
		},
	}
}

// LoadTable читает таблицу ставок из YAML-файла и валидирует её.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse tax table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax table %s: %w", path, err)
	}
	return &table, nil
}

// Validate проверяет структурные инварианты таблицы: непустая федеральная
// шкала, строго возрастающие границы, бесконечная последняя ступень,
// ставки в диапазоне [0, 1].
func (t *Table) Validate() error {
	if err := validateBrackets("federal", t.Federal.Brackets); err != nil {
		return err
	}
	for code, j := range t.Provinces {
		if err := validateBrackets(code, j.Brackets); err != nil {
			return err
		}
	}
	if t.DefaultProvincialRate < 0 || t.DefaultProvincialRate > 1 {
		return fmt.Errorf("default provincial rate out of range: %v", t.DefaultProvincialRate)
	}
	return nil
}

func validateBrackets(name string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s: empty bracket list", name)
	}
	prev := 0.0
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("%s: bracket %d rate out of range: %v", name, i, b.Rate)
		}
		if b.UpTo <= prev {
			return fmt.Errorf("%s: bracket %d bound %v is not increasing", name, i, b.UpTo)
		}
		prev = b.UpTo
	}
	last := brackets[len(brackets)-1]
	if !math.IsInf(last.UpTo, 1) {
		return fmt.Errorf("%s: last bracket bound must be infinite, got %v", name, last.UpTo)
	}
	return nil
}
