package async

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

func TestQueueDeliversOnceAndRetires(t *testing.T) {
	q := NewQueue(NewExecutor(ExecutorConfig{MaxConcurrent: 4}))
	gates := make([]chan struct{}, 3)
	for i := range gates {
		gate := make(chan struct{})
		gates[i] = gate
		q.Submit("job", func() (*texture.Map, error) {
			<-gate
			return &texture.Map{}, nil
		})
	}
	assert.Equal(t, 3, q.Len())
	assert.Empty(t, q.Poll())

	close(gates[1])
	var got []Completed
	deadline := time.Now().Add(5 * time.Second)
	for len(got) == 0 && time.Now().Before(deadline) {
		got = q.Poll()
		time.Sleep(time.Millisecond)
	}
	require.Len(t, got, 1)
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, q.Poll(), "a delivered result must not be delivered again")

	close(gates[0])
	close(gates[2])
	delivered := 0
	for q.Len() > 0 && time.Now().Before(deadline) {
		delivered += len(q.Poll())
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 2, delivered)
	assert.Zero(t, q.Len())
}

type inlineScheduler struct{ calls int }

func (s *inlineScheduler) Submit(label string, job Job) *Handle {
	s.calls++
	h := &Handle{id: uint64(s.calls), label: label, done: make(chan struct{})}
	m, err := job()
	h.resolve(Result{Map: m, Err: err})
	return h
}

func TestQueueAcceptsAnyScheduler(t *testing.T) {
	s := &inlineScheduler{}
	q := NewQueue(s)
	g := texture.NewGroundGenerator(texture.DefaultGroundConfig())
	h := q.Submit("ground", Generate(g, 4, 4))

	got := q.Poll()
	require.Len(t, got, 1)
	assert.Same(t, h, got[0].Handle)
	require.NoError(t, got[0].Err)
	assert.Equal(t, 4, got[0].Map.Width)
	assert.Equal(t, 1, s.calls)
}
