package tax

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	require.NoError(t, DefaultTable().Validate())
}

func TestValidateRejectsEmptyFederal(t *testing.T) {
	table := DefaultTable()
	table.Federal.Brackets = nil
	assert.Error(t, table.Validate())
}

func TestValidateRejectsNonIncreasingBounds(t *testing.T) {
	table := DefaultTable()
	table.Federal.Brackets = []Bracket{
		{UpTo: 50000, Rate: 0.15},
		{UpTo: 40000, Rate: 0.20},
		{UpTo: math.Inf(1), Rate: 0.30},
	}
	assert.Error(t, table.Validate())
}

func TestValidateRejectsFiniteLastBound(t *testing.T) {
	table := DefaultTable()
	table.Federal.Brackets = []Bracket{
		{UpTo: 50000, Rate: 0.15},
		{UpTo: 100000, Rate: 0.20},
	}
	assert.Error(t, table.Validate())
}

func TestValidateRejectsRateOutOfRange(t *testing.T) {
	table := DefaultTable()
	table.Provinces["ON"] = Jurisdiction{
		Name: "Ontario",
		Brackets: []Bracket{
			{UpTo: math.Inf(1), Rate: 1.5},
		},
	}
	assert.Error(t, table.Validate())
}

func TestLoadTableFromYAML(t *testing.T) {
	content := `
year: 2024
federal:
  name: Federal
  basic_personal: 15000
  brackets:
    - up_to: 50000
      rate: 0.15
    - up_to: .inf
      rate: 0.25
provinces:
  ON:
    name: Ontario
    basic_personal: 12000
    brackets:
      - up_to: .inf
        rate: 0.10
default_provincial_rate: 0.10
ei:
  rate: 0.0166
  max_annual: 1049.12
pension:
  rate: 0.0595
  exemption: 3500
  max_annual: 3867.50
pension_qc:
  rate: 0.064
  exemption: 3500
  max_annual: 4160.00
`
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.Equal(t, 2024, table.Year)
	assert.True(t, math.IsInf(table.Federal.Brackets[1].UpTo, 1))
	assert.InDelta(t, 0.10, table.Provinces["ON"].Brackets[0].Rate, 1e-9)
}

func TestLoadTableRejectsBrokenTable(t *testing.T) {
	content := `
federal:
  brackets:
    - up_to: 50000
      rate: 0.15
`
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLowestRateHandlesUnsortedRates(t *testing.T) {
	j := Jurisdiction{Brackets: []Bracket{
		{UpTo: 100, Rate: 0.20},
		{UpTo: math.Inf(1), Rate: 0.10},
	}}
	assert.InDelta(t, 0.10, j.lowestRate(), 1e-9)
}
