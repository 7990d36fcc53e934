package wizard

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docugen/docgen_bot/internal/model"
)

func TestStoreCreatesIdleSessionLazily(t *testing.T) {
	store := NewStore()

	store.Do(7, func(sess *model.Session) {
		assert.Equal(t, model.StateIdle, sess.State)
		assert.Equal(t, int64(7), sess.UserID)
	})

	assert.Equal(t, 1, store.Len())
}

func TestStoreKeepsOneSessionPerUser(t *testing.T) {
	store := NewStore()

	store.Do(7, func(sess *model.Session) {
		sess.State = model.StateMainMenu
		sess.Fields["marker"] = "first"
	})
	store.Do(7, func(sess *model.Session) {
		assert.Equal(t, "first", sess.Fields["marker"])
	})

	assert.Equal(t, 1, store.Len())
}

func TestStoreDropsTerminalSessions(t *testing.T) {
	store := NewStore()

	store.Do(7, func(sess *model.Session) {
		sess.State = model.StateDone
	})

	assert.Equal(t, 0, store.Len())

	// следующее сообщение начинает с чистого листа
	store.Do(7, func(sess *model.Session) {
		assert.Equal(t, model.StateIdle, sess.State)
		assert.Empty(t, sess.Fields)
	})
}

func TestStoreSerializesSameUserMutations(t *testing.T) {
	store := NewStore()
	const workers = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Do(7, func(sess *model.Session) {
				// чтение-изменение-запись без внутренней синхронизации:
				// гонка здесь потеряла бы инкременты
				n, _ := strconv.Atoi(sess.Fields["n"])
				sess.Fields["n"] = strconv.Itoa(n + 1)
			})
		}()
	}
	wg.Wait()

	store.Do(7, func(sess *model.Session) {
		require.Equal(t, strconv.Itoa(workers), sess.Fields["n"])
	})
}

func TestStoreIsolatesUsers(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for id := int64(1); id <= 50; id++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			store.Do(userID, func(sess *model.Session) {
				sess.State = model.StateMainMenu
				sess.Fields["id"] = strconv.FormatInt(userID, 10)
			})
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
	store.Do(13, func(sess *model.Session) {
		assert.Equal(t, "13", sess.Fields["id"])
	})
}
