package wizard

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FieldKind — класс валидации поля.
type FieldKind int

const (
	// KindText — свободный текст, для обязательных полей пустой ввод отклоняется
	KindText FieldKind = iota
	// KindAmount — денежная сумма, принимается только положительное число
	KindAmount
	// KindChoice — выбор из фиксированного набора, только через кнопки
	KindChoice
)

// Choice — один допустимый вариант выбора.
type Choice struct {
	Value string
	Label string
}

// FieldSpec описывает один шаг сбора данных: ключ в Session.Fields,
// текст запроса и правило валидации.
type FieldSpec struct {
	Key      string
	Prompt   string
	Optional bool
	Kind     FieldKind
	Choices  []Choice
	// Normalize применяется к уже принятому значению перед сохранением
	Normalize func(string) string
}

func (f FieldSpec) hasChoice(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// commonFields — общая часть анкеты, одинаковая для всех категорий.
var commonFields = []FieldSpec{
	{Key: "first_name", Prompt: "Введите ваше *имя*:"},
	{Key: "last_name", Prompt: "Введите вашу *фамилию*:"},
	{Key: "address", Prompt: "Введите ваш *адрес* (номер дома и улица):"},
	{Key: "city", Prompt: "Введите ваш *город*:"},
	{Key: "postal_code", Prompt: "Введите ваш *почтовый индекс*:", Normalize: strings.ToUpper},
	{Key: "unit", Prompt: "Введите *номер квартиры/офиса* _(необязательно)_:", Optional: true},
	{Key: "phone", Prompt: "Введите *номер телефона* _(необязательно)_:", Optional: true},
}

var frequencyChoices = []Choice{
	{Value: "weekly", Label: "Еженедельно"},
	{Value: "biweekly", Label: "Раз в 2 недели"},
	{Value: "monthly", Label: "Ежемесячно"},
}

var provinceChoices = []Choice{
	{Value: "QC", Label: "QC"},
	{Value: "ON", Label: "ON"},
	{Value: "BC", Label: "BC"},
	{Value: "AB", Label: "AB"},
	{Value: "MB", Label: "MB"},
	{Value: "SK", Label: "SK"},
	{Value: "NS", Label: "NS"},
	{Value: "NB", Label: "NB"},
	{Value: "OTHER", Label: "Другая"},
}

var employmentTypeChoices = []Choice{
	{Value: "full_time", Label: "Полная занятость"},
	{Value: "part_time", Label: "Частичная занятость"},
	{Value: "contract", Label: "Контракт"},
}

// categoryFields — ветвление анкеты по категории. Добавление категории —
// это новая запись здесь и в Categories, остальные состояния не трогаются.
var categoryFields = map[string][]FieldSpec{
	"payroll": {
		{Key: "employer", Prompt: "💼 Введите *название работодателя*:"},
		{Key: "salary", Prompt: "💰 Введите *брутто за период* (например 2500):", Kind: KindAmount},
		{Key: "period", Prompt: "📅 Выберите *периодичность выплат*:", Kind: KindChoice, Choices: frequencyChoices},
		{Key: "province", Prompt: "🗺 Выберите *провинцию*:", Kind: KindChoice, Choices: provinceChoices},
	},
	"bank": {
		{Key: "account", Prompt: "🏦 Введите *последние 4 цифры* счета:", Normalize: maskAccount},
	},
	"bill": {
		{Key: "company", Prompt: "📃 Введите *название компании/поставщика*:"},
		{Key: "amount", Prompt: "💵 Введите *сумму счета* (например 150.00):", Kind: KindAmount},
		{Key: "due_date", Prompt: "📅 Введите *срок оплаты* (например 2025-01-15):"},
	},
	"taxslip": {
		{Key: "employer", Prompt: "💼 Введите *название работодателя*:"},
		{Key: "income", Prompt: "💰 Введите *годовой доход* (например 52000):", Kind: KindAmount},
		{Key: "province", Prompt: "🗺 Выберите *провинцию*:", Kind: KindChoice, Choices: provinceChoices},
	},
	"letter": {
		{Key: "employer", Prompt: "💼 Введите *название работодателя*:"},
		{Key: "position", Prompt: "👔 Введите *должность*:"},
		{Key: "start_date", Prompt: "📅 Введите *дату начала работы* (например 2022-03-01):"},
		{Key: "salary", Prompt: "💰 Введите *брутто за период* (например 2500):", Kind: KindAmount},
		{Key: "employment_type", Prompt: "📋 Выберите *тип занятости*:", Kind: KindChoice, Choices: employmentTypeChoices},
	},
}

// plan возвращает полный упорядоченный список полей категории:
// общая часть плюс специфичная. Машина знает оставшиеся шаги
// из одной только категории.
func plan(category string) []FieldSpec {
	specific := categoryFields[category]
	result := make([]FieldSpec, 0, len(commonFields)+len(specific))
	result = append(result, commonFields...)
	result = append(result, specific...)
	return result
}

// maskAccount прячет номер счета, оставляя введенные последние цифры.
func maskAccount(digits string) string {
	return "****-****-" + digits
}

var errNotPositive = errors.New("amount must be positive")

// parseAmount нормализует денежный ввод: запятая как десятичный
// разделитель, знак валюты и пробелы отбрасываются. Неположительные
// значения отклоняются. ParseFloat принимает "nan" и "inf" — такие
// значения тоже отклоняются, в расчет попадают только конечные суммы.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer(",", ".", "$", "", " ", "").Replace(strings.TrimSpace(raw))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, errNotPositive
	}
	return value, nil
}
