package mocks

import "github.com/Billy-Davies-2/expansion-draft/internal/dependencies/random"

// MockRandom replays queued Intn results, then returns 0
type MockRandom struct {
	IntnResults []int
	intnIndex   int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	v := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return v
}

// QueueIntn appends values to the result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}
