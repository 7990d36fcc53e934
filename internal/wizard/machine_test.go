package wizard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docugen/docgen_bot/internal/model"
	"github.com/docugen/docgen_bot/internal/tax"
)

func newTestMachine() *Machine {
	return NewMachine(tax.DefaultTable())
}

func idleSession(userID int64) *model.Session {
	return &model.Session{
		UserID: userID,
		State:  model.StateIdle,
		Fields: make(map[string]string),
	}
}

// sessionAt проводит сессию до начала анкеты выбранной категории.
func sessionAt(t *testing.T, m *Machine, category, template string) *model.Session {
	t.Helper()
	sess := idleSession(42)
	require.False(t, m.Transition(sess, Event{Type: EventStart}).Ignored)
	require.False(t, m.Transition(sess, Event{Type: EventSelectCategory, Value: category}).Ignored)
	reply := m.Transition(sess, Event{Type: EventSelectTemplate, Value: template})
	require.False(t, reply.Ignored)
	require.Equal(t, model.StateCollectFields, sess.State)
	return sess
}

// completeCommonFields заполняет общую часть анкеты, пропуская
// необязательные поля.
func completeCommonFields(t *testing.T, m *Machine, sess *model.Session) {
	t.Helper()
	for _, v := range []string{"John", "Doe", "12 Main St", "Montreal", "h3z 2y7"} {
		reply := m.Transition(sess, Event{Type: EventText, Value: v})
		require.False(t, reply.Ignored)
	}
	require.False(t, m.Transition(sess, Event{Type: EventSkip}).Ignored)
	require.False(t, m.Transition(sess, Event{Type: EventSkip}).Ignored)
}

func TestStartShowsMainMenu(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(1)

	reply := m.Transition(sess, Event{Type: EventStart})

	assert.Equal(t, KbMainMenu, reply.Keyboard)
	assert.Equal(t, model.StateMainMenu, sess.State)
}

func TestCategorySelectionOpensTemplates(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(1)
	m.Transition(sess, Event{Type: EventStart})

	reply := m.Transition(sess, Event{Type: EventSelectCategory, Value: "payroll"})

	assert.Equal(t, KbTemplates, reply.Keyboard)
	assert.Equal(t, "payroll", reply.Category)
	assert.Equal(t, model.StateSelectTemplate, sess.State)
}

func TestUnknownCategoryIgnored(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(1)
	m.Transition(sess, Event{Type: EventStart})

	reply := m.Transition(sess, Event{Type: EventSelectCategory, Value: "mortgage"})

	assert.True(t, reply.Ignored)
	assert.Equal(t, model.StateMainMenu, sess.State)
}

func TestBackFromTemplatesReturnsToMenu(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(1)
	m.Transition(sess, Event{Type: EventStart})
	m.Transition(sess, Event{Type: EventSelectCategory, Value: "bank"})

	reply := m.Transition(sess, Event{Type: EventBack})

	assert.Equal(t, KbMainMenu, reply.Keyboard)
	assert.Equal(t, model.StateMainMenu, sess.State)
	assert.Empty(t, sess.Category)
}

func TestTemplateMustBelongToCategory(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(1)
	m.Transition(sess, Event{Type: EventStart})
	m.Transition(sess, Event{Type: EventSelectCategory, Value: "bank"})

	reply := m.Transition(sess, Event{Type: EventSelectTemplate, Value: "pay_standard"})

	assert.True(t, reply.Ignored)
	assert.Equal(t, model.StateSelectTemplate, sess.State)
}

func TestBillFlowCollectsFieldsInOrder(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")
	completeCommonFields(t, m, sess)

	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "Hydro Quebec"}).Ignored)

	// сумма: сначала мусор, потом валидное значение с запятой
	reject := m.Transition(sess, Event{Type: EventText, Value: "abc"})
	assert.False(t, reject.Ignored)
	assert.Contains(t, reject.Text, "❌")
	_, written := sess.Fields["amount"]
	assert.False(t, written)

	accept := m.Transition(sess, Event{Type: EventText, Value: "150,50"})
	require.False(t, accept.Ignored)
	assert.Equal(t, "150.50", sess.Fields["amount"])

	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "2025-01-15"}).Ignored)
	assert.Equal(t, model.StateConfirm, sess.State)
	assert.Equal(t, "2025-01-15", sess.Fields["due_date"])
}

func TestInvalidAmountRejectionIsIdempotent(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "Hydro Quebec"})

	indexBefore := sess.FieldIndex
	fieldsBefore := len(sess.Fields)

	m.Transition(sess, Event{Type: EventText, Value: "abc"})
	m.Transition(sess, Event{Type: EventText, Value: "-20"})

	assert.Equal(t, indexBefore, sess.FieldIndex)
	assert.Len(t, sess.Fields, fieldsBefore)
	assert.Equal(t, model.StateCollectFields, sess.State)
}

func TestNonFiniteSalaryRejected(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "payroll", "pay_standard")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "Acme Corp"})

	// nan и inf проходят ParseFloat, но не должны дойти до движка
	for _, raw := range []string{"nan", "inf", "-inf"} {
		reply := m.Transition(sess, Event{Type: EventText, Value: raw})
		assert.False(t, reply.Ignored)
		assert.Contains(t, reply.Text, "❌", "input %q must be re-prompted", raw)
		_, written := sess.Fields["salary"]
		assert.False(t, written, "input %q must not be stored", raw)
	}

	// после отказов узел принимает нормальное значение
	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "2000"}).Ignored)
	m.Transition(sess, Event{Type: EventChoice, Value: "biweekly"})
	m.Transition(sess, Event{Type: EventChoice, Value: "ON"})

	require.NotNil(t, sess.Result)
	assert.False(t, math.IsNaN(sess.Result.NetPeriod))
	assert.InDelta(t, 52000, sess.Result.GrossAnnual, 1e-9)
}

func TestEmptyRequiredFieldRejected(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")

	reply := m.Transition(sess, Event{Type: EventText, Value: "   "})

	assert.Contains(t, reply.Text, "❌")
	assert.Equal(t, 0, sess.FieldIndex)
	assert.Empty(t, sess.Fields)
}

func TestSkipOnlyAcceptedForOptionalFields(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")

	// first_name обязательно, пропуск игнорируется
	assert.True(t, m.Transition(sess, Event{Type: EventSkip}).Ignored)

	completeCommonFields(t, m, sess)
	unit, ok := sess.Fields["unit"]
	require.True(t, ok)
	assert.Empty(t, unit)
}

func TestPostalCodeUppercased(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bank", "bank_monthly")
	completeCommonFields(t, m, sess)

	assert.Equal(t, "H3Z 2Y7", sess.Fields["postal_code"])
}

func TestBankAccountMasked(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bank", "bank_monthly")
	completeCommonFields(t, m, sess)

	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "1234"}).Ignored)

	assert.Equal(t, "****-****-1234", sess.Fields["account"])
	assert.Equal(t, model.StateConfirm, sess.State)
}

func TestPayrollFlowComputesResult(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "payroll", "pay_standard")
	completeCommonFields(t, m, sess)

	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "Acme Corp"}).Ignored)
	require.False(t, m.Transition(sess, Event{Type: EventText, Value: "2000"}).Ignored)

	// текст на узле выбора игнорируется
	assert.True(t, m.Transition(sess, Event{Type: EventText, Value: "biweekly"}).Ignored)

	require.False(t, m.Transition(sess, Event{Type: EventChoice, Value: "biweekly"}).Ignored)
	confirm := m.Transition(sess, Event{Type: EventChoice, Value: "ON"})

	require.Equal(t, model.StateConfirm, sess.State)
	assert.Equal(t, KbConfirm, confirm.Keyboard)
	require.NotNil(t, sess.Result)
	assert.InDelta(t, 52000, sess.Result.GrossAnnual, 1e-9)
	assert.InDelta(t, 1568.63, sess.Result.NetPeriod, 1e-6)
}

func TestChoiceOutsideSetIgnored(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "payroll", "pay_standard")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "Acme Corp"})
	m.Transition(sess, Event{Type: EventText, Value: "2000"})
	m.Transition(sess, Event{Type: EventChoice, Value: "biweekly"})

	reply := m.Transition(sess, Event{Type: EventChoice, Value: "XX"})

	assert.True(t, reply.Ignored)
	_, written := sess.Fields["province"]
	assert.False(t, written)
}

func TestChoiceDuringTextNodeIgnored(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "payroll", "pay_standard")

	// первый узел — текстовое имя, кнопочный ответ не к месту
	reply := m.Transition(sess, Event{Type: EventChoice, Value: "ON"})

	assert.True(t, reply.Ignored)
	assert.Empty(t, sess.Fields)
}

func TestStaleTemplateSelectionMidFormIgnored(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")
	completeCommonFields(t, m, sess)

	reply := m.Transition(sess, Event{Type: EventSelectTemplate, Value: "bill_rent"})

	assert.True(t, reply.Ignored)
	assert.Equal(t, "bill_utility", sess.TemplateID)
}

func TestStaleConfirmMidFormIgnored(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")

	reply := m.Transition(sess, Event{Type: EventConfirm})

	assert.True(t, reply.Ignored)
	assert.Equal(t, model.StateCollectFields, sess.State)
}

func TestConfirmProducesFinalizedSnapshot(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "Hydro Quebec"})
	m.Transition(sess, Event{Type: EventText, Value: "150.50"})
	m.Transition(sess, Event{Type: EventText, Value: "2025-01-15"})

	reply := m.Transition(sess, Event{Type: EventConfirm})

	require.NotNil(t, reply.Finalized)
	assert.Equal(t, model.StateDone, sess.State)
	assert.Equal(t, "bill", reply.Finalized.Category)
	assert.Equal(t, "bill_utility", reply.Finalized.TemplateID)
	assert.Equal(t, "150.50", reply.Finalized.Fields["amount"])

	// снимок — копия, дальнейшие мутации сессии его не трогают
	sess.Fields["amount"] = "999"
	assert.Equal(t, "150.50", reply.Finalized.Fields["amount"])
}

func TestRestartFromConfirmDiscardsFields(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bill", "bill_utility")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "Hydro Quebec"})
	m.Transition(sess, Event{Type: EventText, Value: "150.50"})
	m.Transition(sess, Event{Type: EventText, Value: "2025-01-15"})

	reply := m.Transition(sess, Event{Type: EventRestart})

	assert.Equal(t, KbMainMenu, reply.Keyboard)
	assert.Equal(t, model.StateMainMenu, sess.State)
	assert.Empty(t, sess.Fields)
	assert.Empty(t, sess.Category)
	assert.Nil(t, sess.Result)
}

func TestAbortFromConfirmEndsSession(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "bank", "bank_monthly")
	completeCommonFields(t, m, sess)
	m.Transition(sess, Event{Type: EventText, Value: "1234"})

	reply := m.Transition(sess, Event{Type: EventAbort})

	assert.False(t, reply.Ignored)
	assert.Nil(t, reply.Finalized)
	assert.Equal(t, model.StateDone, sess.State)
}

func TestCancelLegalFromAnyNonTerminalState(t *testing.T) {
	m := newTestMachine()

	mid := sessionAt(t, m, "payroll", "pay_standard")
	completeCommonFields(t, m, mid)
	reply := m.Transition(mid, Event{Type: EventCancel})
	assert.False(t, reply.Ignored)
	assert.Equal(t, model.StateDone, mid.State)

	menu := idleSession(2)
	m.Transition(menu, Event{Type: EventStart})
	reply = m.Transition(menu, Event{Type: EventCancel})
	assert.False(t, reply.Ignored)
	assert.Equal(t, model.StateDone, menu.State)
}

func TestCancelWithoutActiveSessionShowsHint(t *testing.T) {
	m := newTestMachine()
	sess := idleSession(3)

	reply := m.Transition(sess, Event{Type: EventCancel})

	assert.False(t, reply.Ignored)
	assert.Contains(t, reply.Text, "/start")
	assert.NotContains(t, reply.Text, "отменена")
	assert.Equal(t, model.StateIdle, sess.State)
}

func TestLetterFlowWithEmploymentType(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "letter", "letter_confirm")
	completeCommonFields(t, m, sess)

	m.Transition(sess, Event{Type: EventText, Value: "Acme Corp"})
	m.Transition(sess, Event{Type: EventText, Value: "Developer"})
	m.Transition(sess, Event{Type: EventText, Value: "2022-03-01"})
	m.Transition(sess, Event{Type: EventText, Value: "3200"})
	reply := m.Transition(sess, Event{Type: EventChoice, Value: "full_time"})

	assert.Equal(t, KbConfirm, reply.Keyboard)
	assert.Equal(t, "full_time", sess.Fields["employment_type"])
	// письмо о занятости не считает налоги
	assert.Nil(t, sess.Result)
}

func TestTaxslipComputesOnAnnualIncome(t *testing.T) {
	m := newTestMachine()
	sess := sessionAt(t, m, "taxslip", "slip_t4")
	completeCommonFields(t, m, sess)

	m.Transition(sess, Event{Type: EventText, Value: "Acme Corp"})
	m.Transition(sess, Event{Type: EventText, Value: "52000"})
	m.Transition(sess, Event{Type: EventChoice, Value: "ON"})

	require.NotNil(t, sess.Result)
	assert.InDelta(t, 52000, sess.Result.GrossAnnual, 1e-9)
	assert.InDelta(t, 5444.25, sess.Result.FederalTaxAnnual, 1e-6)
}

func TestEveryCategoryHasAPlanAndChoices(t *testing.T) {
	for _, c := range Categories {
		specific, ok := categoryFields[c.ID]
		require.True(t, ok, "category %s has no field plan", c.ID)
		require.NotEmpty(t, specific, "category %s plan is empty", c.ID)
		require.NotEmpty(t, c.Templates, "category %s has no templates", c.ID)
		for _, f := range plan(c.ID) {
			if f.Kind == KindChoice {
				assert.NotEmpty(t, f.Choices, "choice field %s/%s has no options", c.ID, f.Key)
			}
		}
	}
}
