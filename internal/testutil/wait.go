package testutil

import (
	"testing"
	"time"

	"github.com/udisondev/ronet/internal/constants"
)

// PollUntil вызывает poll с интервалом, пока он не вернёт true.
// Используется вместо time.Sleep для синхронизации с клиентом, у которого
// нет фоновых горутин: каждый вызов poll это один тик Update.
func PollUntil(t testing.TB, poll func() bool) {
	t.Helper()

	deadline := time.Now().Add(constants.TestEventTimeout)
	for time.Now().Before(deadline) {
		if poll() {
			return
		}
		time.Sleep(constants.TestPollInterval)
	}
	t.Fatalf("condition not met within %v", constants.TestEventTimeout)
}

// Collect вызывает update, пока накопленные события не удовлетворят done.
func Collect[E any](t testing.TB, update func() []E, done func([]E) bool) []E {
	t.Helper()

	var all []E
	PollUntil(t, func() bool {
		all = append(all, update()...)
		return done(all)
	})
	return all
}

// HasType сообщает, есть ли среди событий событие типа T.
func HasType[T any, E any](events []E) bool {
	_, ok := FindType[T](events)
	return ok
}

// FindType возвращает первое событие типа T.
func FindType[T any, E any](events []E) (T, bool) {
	for _, e := range events {
		if v, ok := any(e).(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
