package packet

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated означает, что данных пока недостаточно.
	// При разборе потока это сигнал «ждать следующего чтения», а не порча данных.
	ErrTruncated = errors.New("packet: not enough data")

	// ErrMalformed означает, что пакет известной длины уже получен целиком,
	// но его содержимое не соответствует ожидаемой структуре.
	ErrMalformed = errors.New("packet: malformed")
)

// Malformed converts a truncation inside a fully framed packet into ErrMalformed.
// Other errors are returned unchanged.
func Malformed(name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTruncated) {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return fmt.Errorf("%s: %w", name, err)
}
