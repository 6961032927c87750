package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting from concurrent workers", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 10, 100)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddEpisodes(50)
				c.AddFullPlayouts(5)
			}()
		}
		wg.Wait()
		c.SetLegal(3)
		metric := c.Complete()

		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 10, metric.Depth)
		require.Equal(t, 100, metric.Rollouts)
		require.Equal(t, 400, metric.Episodes)
		require.Equal(t, 40, metric.FullPlayouts)
		require.Equal(t, 3, metric.Legal)
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1, 1)
		c.AddEpisodes(7)
		c.Complete()

		c.Start(1, 1, 1)

		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 10, 100)
		c.AddEpisodes(50)

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
