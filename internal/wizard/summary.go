package wizard

import (
	"fmt"
	"strings"

	"github.com/docugen/docgen_bot/internal/model"
)

// buildSummary форматирует собранные данные для экрана подтверждения.
func buildSummary(sess *model.Session) string {
	var b strings.Builder

	b.WriteString("📋 *СВОДКА ВАШИХ ДАННЫХ*\n\n")
	b.WriteString("*Шаблон:* " + TemplateName(sess.TemplateID) + "\n\n")

	b.WriteString("*Личные данные:*\n")
	b.WriteString("• Имя: " + orNA(sess.Fields["first_name"]) + "\n")
	b.WriteString("• Фамилия: " + orNA(sess.Fields["last_name"]) + "\n")
	b.WriteString("• Адрес: " + orNA(sess.Fields["address"]) + "\n")
	b.WriteString("• Город: " + orNA(sess.Fields["city"]) + "\n")
	b.WriteString("• Индекс: " + orNA(sess.Fields["postal_code"]) + "\n")
	b.WriteString("• Квартира: " + orNA(sess.Fields["unit"]) + "\n")
	b.WriteString("• Телефон: " + orNA(sess.Fields["phone"]) + "\n")

	switch sess.Category {
	case "payroll":
		b.WriteString("\n*Данные о зарплате:*\n")
		b.WriteString("• Работодатель: " + orNA(sess.Fields["employer"]) + "\n")
		b.WriteString("• Брутто за период: " + orNA(sess.Fields["salary"]) + " $\n")
		b.WriteString("• Периодичность: " + choiceLabel(frequencyChoices, sess.Fields["period"]) + "\n")
		b.WriteString("• Провинция: " + orNA(sess.Fields["province"]) + "\n")
		if sess.Result != nil {
			b.WriteString(fmt.Sprintf("• Удержания за период: %.2f $\n", sess.Result.TotalDeductionsPeriod()))
			b.WriteString(fmt.Sprintf("• *Нетто к выплате: %.2f $*\n", sess.Result.NetPeriod))
		}
	case "bank":
		b.WriteString("\n*Банковские данные:*\n")
		b.WriteString("• Номер счета: " + orNA(sess.Fields["account"]) + "\n")
	case "bill":
		b.WriteString("\n*Данные счета:*\n")
		b.WriteString("• Компания: " + orNA(sess.Fields["company"]) + "\n")
		b.WriteString("• Сумма: " + orNA(sess.Fields["amount"]) + " $\n")
		b.WriteString("• Срок оплаты: " + orNA(sess.Fields["due_date"]) + "\n")
	case "taxslip":
		b.WriteString("\n*Данные налоговой формы:*\n")
		b.WriteString("• Работодатель: " + orNA(sess.Fields["employer"]) + "\n")
		b.WriteString("• Годовой доход: " + orNA(sess.Fields["income"]) + " $\n")
		b.WriteString("• Провинция: " + orNA(sess.Fields["province"]) + "\n")
		if sess.Result != nil {
			b.WriteString(fmt.Sprintf("• Удержано налогов за год: %.2f $\n",
				sess.Result.FederalTaxAnnual+sess.Result.ProvincialTaxAnnual))
		}
	case "letter":
		b.WriteString("\n*Данные о занятости:*\n")
		b.WriteString("• Работодатель: " + orNA(sess.Fields["employer"]) + "\n")
		b.WriteString("• Должность: " + orNA(sess.Fields["position"]) + "\n")
		b.WriteString("• Начало работы: " + orNA(sess.Fields["start_date"]) + "\n")
		b.WriteString("• Брутто за период: " + orNA(sess.Fields["salary"]) + " $\n")
		b.WriteString("• Тип занятости: " + choiceLabel(employmentTypeChoices, sess.Fields["employment_type"]) + "\n")
	}

	return b.String()
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

func choiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return orNA(value)
}
