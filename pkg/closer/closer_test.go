package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_ClosesInReverseOrder(t *testing.T) {
	c := NewCloser(0)

	var order []string
	c.AddSimple("db", func() error { order = append(order, "db"); return nil })
	c.AddSimple("redis", func() error { order = append(order, "redis"); return nil })
	c.AddSimple("http", func() error { order = append(order, "http"); return nil })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "db"}, order)
}

func TestCloser_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.AddSimple("kafka", func() error { return errors.New("writer closed") })
	c.AddSimple("ok", func() error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: writer closed")
}

func TestCloser_ErrorsAreUnwrappable(t *testing.T) {
	errClosed := errors.New("pool closed")
	c := NewCloser(0)
	c.AddSimple("postgres", func() error { return errClosed })

	err := c.Close(context.Background())
	assert.ErrorIs(t, err, errClosed)
}

func TestCloser_CloseRunsOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddSimple("counter", func() error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	c.AddSimple("first", func() error { return nil })
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted after 0/2 funcs")
	assert.Contains(t, err.Error(), "[FORCED] slow")
}
