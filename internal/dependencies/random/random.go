package random

import (
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand/v2"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

// Random is the source used to shuffle the draft order
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom draws from crypto/rand. If the system source fails it logs
// and falls back to math/rand so a shuffle stays uniform.
type CryptoRandom struct {
	reader io.Reader
}

func New() *CryptoRandom {
	return &CryptoRandom{reader: rand.Reader}
}

func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	src := r.reader
	if src == nil {
		src = rand.Reader
	}
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		logger.Warn("crypto/rand failed, falling back to math/rand", "error", err)
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// Shuffle permutes items in place with a Fisher-Yates pass
func Shuffle[T any](r Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
