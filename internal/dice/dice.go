package dice

import (
	"errors"
	"math/rand"
)

// Roll rolls count dice of the given size and returns each face.
func Roll(count, size int) ([]int, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if size < 1 {
		return nil, errors.New("invalid dice size")
	}

	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rand.Intn(size) + 1
	}

	return out, nil
}
