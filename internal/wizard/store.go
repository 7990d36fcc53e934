package wizard

import (
	"sync"

	"github.com/docugen/docgen_bot/internal/model"
)

// Store хранит живые сессии, не больше одной на пользователя.
// Переходы одного пользователя сериализуются его блокировкой,
// разные пользователи обрабатываются параллельно.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *model.Session
}

// NewStore создает пустое хранилище сессий.
func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

// Do выполняет fn под блокировкой сессии пользователя. Сессия создается
// лениво в состоянии Idle; если после fn она терминальна, запись
// удаляется из хранилища.
func (s *Store) Do(userID int64, fn func(sess *model.Session)) {
	for {
		s.mu.Lock()
		e, ok := s.entries[userID]
		if !ok {
			e = &entry{sess: &model.Session{
				UserID: userID,
				State:  model.StateIdle,
				Fields: make(map[string]string),
			}}
			s.entries[userID] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		// запись могла быть удалена, пока мы ждали блокировку
		s.mu.Lock()
		current := s.entries[userID] == e
		s.mu.Unlock()
		if !current {
			e.mu.Unlock()
			continue
		}

		fn(e.sess)

		if e.sess.State == model.StateDone {
			s.mu.Lock()
			delete(s.entries, userID)
			s.mu.Unlock()
		}
		e.mu.Unlock()
		return
	}
}

// Len возвращает число живых сессий.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
