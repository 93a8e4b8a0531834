package concurrency_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/shutters/internal/concurrency"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

func Test_ThrottledWorker(t *testing.T) {

	t.Run("should run every job in order and space them out", func(t *testing.T) {
		var ran []string
		var at []time.Time
		w := concurrency.NewThrottledWorker(logger, 20*time.Millisecond, func(_ context.Context, arg string) error {
			ran = append(ran, arg)
			at = append(at, time.Now())
			if arg == "b" {
				return errors.New("radio busy")
			}
			return nil
		})

		failed := w.Run(context.Background(), []string{"a", "b", "c"})

		assert.Equal(t, []string{"a", "b", "c"}, ran)
		assert.Equal(t, 1, failed)
		assert.GreaterOrEqual(t, at[2].Sub(at[0]), 30*time.Millisecond)
	})

	t.Run("should stop when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var ran []int
		w := concurrency.NewThrottledWorker(logger, time.Hour, func(_ context.Context, arg int) error {
			ran = append(ran, arg)
			cancel()
			return nil
		})

		w.Run(ctx, []int{1, 2, 3})

		assert.Equal(t, []int{1}, ran)
	})

}
