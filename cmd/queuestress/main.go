// Command queuestress drives a queue.BlockingQueue with configurable
// producer/consumer goroutine counts and prints a colorized summary. It is
// test tooling around the library, not a feature of it — the queue itself
// has no CLI or persisted-format surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/concurrentkit/blockingqueue/atomic"
	"github.com/concurrentkit/blockingqueue/diagnostics"
	"github.com/concurrentkit/blockingqueue/queue"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	capacity := flag.Int("capacity", 16, "queue capacity")
	fair := flag.Bool("fair", false, "use fair (strict-FIFO) wait discipline")
	producers := flag.Int("producers", 4, "number of producer goroutines")
	consumers := flag.Int("consumers", 4, "number of consumer goroutines")
	perProducer := flag.Int("per-producer", 2000, "elements put per producer")
	duration := flag.Duration("duration", 10*time.Second, "max run duration")
	chartPath := flag.String("chart", "", "if set, write a depth-over-time PNG chart here")
	flag.Parse()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	q, err := newQueue(*capacity, *fair)
	if err != nil {
		log.Err(err).Msg("failed to construct queue")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	go func() {
		<-quit
		cancel()
	}()

	produced := atomic.NewCounter(0)
	consumed := atomic.NewCounter(0)
	timedOut := atomic.NewCounter(0)
	rec := diagnostics.NewOccupancyRecorder(time.Now())
	var recMu sync.Mutex

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				recMu.Lock()
				rec.Record(time.Now(), q.Len())
				recMu.Unlock()
			case <-stop:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < *producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < *perProducer; j++ {
				id := uuid.New().String()
				ok, err := q.OfferTimeout(ctx, id, 500*time.Millisecond)
				if err != nil {
					return
				}
				if !ok {
					timedOut.IncrementAndGet()
					continue
				}
				produced.IncrementAndGet()
			}
		}()
	}

	var cwg sync.WaitGroup
	for i := 0; i < *consumers; i++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for {
				_, ok, err := q.PollTimeout(ctx, 200*time.Millisecond)
				if err != nil {
					return
				}
				if ok {
					consumed.IncrementAndGet()
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}

	wg.Wait()
	cwg.Wait()
	close(stop)

	color.Green.Printf("produced: %d\n", produced.Get())
	color.Cyan.Printf("consumed: %d\n", consumed.Get())
	color.Yellow.Printf("producer timeouts: %d\n", timedOut.Get())
	color.White.Printf("final depth: %d/%d (fair=%v)\n", q.Len(), q.Cap(), q.IsFair())

	if *chartPath != "" {
		if err := diagnostics.SaveOccupancyChart(rec, "queuestress occupancy", *chartPath); err != nil {
			log.Err(err).Msg("failed to save occupancy chart")
		} else {
			fmt.Println("chart written to " + *chartPath)
		}
	}
}

func newQueue(capacity int, fair bool) (*queue.BlockingQueue[string], error) {
	if fair {
		return queue.NewFair[string](capacity)
	}
	return queue.New[string](capacity)
}
