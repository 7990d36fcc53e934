package wizard

import (
	"fmt"

	"github.com/docugen/docgen_bot/internal/model"
)

// allowedEdges — явный граф допустимых переходов. Единственная петля —
// повтор узла при невалидной сумме, единственный возврат назад —
// рестарт с экрана подтверждения и кнопка "назад" с выбора шаблона.
var allowedEdges = map[model.State][]model.State{
	model.StateIdle:           {model.StateMainMenu},
	model.StateMainMenu:       {model.StateMainMenu, model.StateSelectTemplate, model.StateDone},
	model.StateSelectTemplate: {model.StateMainMenu, model.StateCollectFields, model.StateDone},
	model.StateCollectFields:  {model.StateCollectFields, model.StateConfirm, model.StateMainMenu, model.StateDone},
	model.StateConfirm:        {model.StateMainMenu, model.StateDone},
}

func init() {
	// проверяем замкнутость графа при старте, а не по соглашению
	for from, targets := range allowedEdges {
		for _, to := range targets {
			if _, ok := allowedEdges[to]; !ok && to != model.StateDone {
				panic(fmt.Sprintf("wizard: edge %s -> %s leads to undeclared state", from, to))
			}
		}
	}
}

// canTransition проверяет ребро графа.
func canTransition(from, to model.State) bool {
	for _, t := range allowedEdges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// move переводит сессию в новое состояние, отказываясь от недопустимых
// ребер. Возвращает false, если ребра нет — вызывающий обязан
// трактовать это как проигнорированное событие.
func move(sess *model.Session, to model.State) bool {
	if !canTransition(sess.State, to) {
		return false
	}
	sess.State = to
	return true
}
