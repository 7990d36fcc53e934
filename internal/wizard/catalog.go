package wizard

// Template — вариант документа внутри категории.
type Template struct {
	ID   string
	Name string
	Desc string
}

// CategoryInfo — категория документов и её шаблоны.
type CategoryInfo struct {
	ID          string
	Name        string
	Description string
	Templates   []Template
}

// Categories — закрытый набор категорий. Порядок определяет порядок
// кнопок главного меню.
var Categories = []CategoryInfo{
	{
		ID:          "payroll",
		Name:        "🧾 PAYROLL",
		Description: "Расчетные листки и документы о заработной плате",
		Templates: []Template{
			{ID: "pay_standard", Name: "📄 Стандартный расчетный листок", Desc: "Классический формат со всеми удержаниями"},
			{ID: "pay_detailed", Name: "📊 Детальный расчетный листок", Desc: "Включает часы, овертайм, бонусы"},
			{ID: "pay_simple", Name: "📝 Упрощенный расчетный листок", Desc: "Минималистичный формат"},
			{ID: "pay_biweekly", Name: "📅 Листок за две недели", Desc: "Формат для двухнедельной оплаты"},
		},
	},
	{
		ID:          "bank",
		Name:        "🏦 BANK STATEMENT",
		Description: "Банковские выписки и финансовые документы",
		Templates: []Template{
			{ID: "bank_monthly", Name: "📅 Месячная выписка", Desc: "Стандартная выписка по счету"},
			{ID: "bank_detailed", Name: "📊 Детальная выписка", Desc: "С категоризацией расходов"},
			{ID: "bank_summary", Name: "📈 Финансовая сводка", Desc: "Общая картина финансов"},
			{ID: "bank_proof", Name: "✅ Подтверждение средств", Desc: "Справка об остатке"},
		},
	},
	{
		ID:          "bill",
		Name:        "📃 BILL STATEMENT",
		Description: "Счета и платежные документы",
		Templates: []Template{
			{ID: "bill_utility", Name: "💡 Коммунальный счет", Desc: "Электричество, газ, вода"},
			{ID: "bill_telecom", Name: "📱 Счет за связь", Desc: "Телефон, интернет, кабель"},
			{ID: "bill_rent", Name: "🏠 Квитанция об аренде", Desc: "Подтверждение оплаты аренды"},
			{ID: "bill_invoice", Name: "🧾 Коммерческий счет", Desc: "Счет для бизнеса"},
		},
	},
	{
		ID:          "taxslip",
		Name:        "🗂 TAX SLIP",
		Description: "Годовые налоговые формы",
		Templates: []Template{
			{ID: "slip_t4", Name: "📋 T4 — доход по найму", Desc: "Годовая сводка доходов и удержаний"},
			{ID: "slip_t4a", Name: "📋 T4A — прочие доходы", Desc: "Пенсии, комиссии, стипендии"},
		},
	},
	{
		ID:          "letter",
		Name:        "✉️ EMPLOYMENT LETTER",
		Description: "Письма о подтверждении занятости",
		Templates: []Template{
			{ID: "letter_confirm", Name: "📄 Подтверждение занятости", Desc: "Стандартное письмо работодателя"},
			{ID: "letter_salary", Name: "💼 Справка о доходе", Desc: "Письмо с указанием оклада"},
		},
	},
}

// CategoryByID возвращает категорию по идентификатору.
func CategoryByID(id string) (CategoryInfo, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

// templateOf проверяет, что шаблон принадлежит категории.
func templateOf(category CategoryInfo, templateID string) (Template, bool) {
	for _, t := range category.Templates {
		if t.ID == templateID {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateName возвращает имя шаблона по идентификатору (для сводок
// и истории). Неизвестный идентификатор возвращается как есть.
func TemplateName(templateID string) string {
	for _, c := range Categories {
		if t, ok := templateOf(c, templateID); ok {
			return t.Name
		}
	}
	return templateID
}
