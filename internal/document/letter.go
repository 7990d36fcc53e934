package document

import (
	"strconv"

	"github.com/go-pdf/fpdf"
)

var employmentTypeNames = map[string]string{
	"full_time": "full-time",
	"part_time": "part-time",
	"contract":  "contract",
}

// buildLetter собирает письмо-подтверждение занятости от имени
// работодателя из анкеты.
func (a *Assembler) buildLetter(pdf *fpdf.Fpdf, templateID string, fields map[string]string) {
	title(pdf, "EMPLOYMENT VERIFICATION LETTER", 51, 51, 51)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fields["employer"], "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "To whom it may concern,", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	body := "This letter confirms that " + fullName(fields) + ", residing at " +
		fullAddress(fields) + ", is employed by " + fields["employer"] +
		" as " + fields["position"] + " on a " +
		employmentTypeNames[fields["employment_type"]] + " basis since " +
		fields["start_date"] + "."
	pdf.MultiCell(0, 7, body, "", "L", false)
	pdf.Ln(3)

	if templateID == "letter_salary" {
		salary, _ := strconv.ParseFloat(fields["salary"], 64)
		pdf.MultiCell(0, 7, "The current gross remuneration amounts to "+money(salary)+
			" per pay period.", "", "L", false)
		pdf.Ln(3)
	}

	pdf.MultiCell(0, 7, "Please do not hesitate to contact us should you require "+
		"any further information.", "", "L", false)
	pdf.Ln(8)

	pdf.CellFormat(0, 7, "Sincerely,", "", 1, "L", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fields["employer"], "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Human Resources", "", 1, "L", false, 0, "")

	footer(pdf)
}
