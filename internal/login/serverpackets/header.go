package serverpackets

import (
	"fmt"

	"github.com/udisondev/ronet/internal/packet"
)

func readHeader(r *packet.Reader, variable bool) (int, error) {
	if err := r.Skip(2); err != nil {
		return 0, fmt.Errorf("reading id: %w", err)
	}
	if !variable {
		return 0, nil
	}
	length, err := r.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("reading length: %w", err)
	}
	return int(length), nil
}
