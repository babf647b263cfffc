package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"hotcold/internal/classifier"
	"hotcold/internal/ranker"
	"hotcold/pkg/model"
)

// ProgressCallback is called with progress updates
type ProgressCallback func(scanned, total int)

// Scanner performs one parallel classification pass over a symbol universe.
// The worker count is the single shared concurrency ceiling for the whole
// pass: every window fetch of every symbol runs inside one of these workers.
type Scanner struct {
	classifier   *classifier.Classifier
	workers      int
	timeout      time.Duration
	topN         int
	progressFunc ProgressCallback
}

// NewScanner creates a new scanner
func NewScanner(c *classifier.Classifier, workers int, timeout time.Duration, topN int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		classifier: c,
		workers:    workers,
		timeout:    timeout,
		topN:       topN,
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(fn ProgressCallback) {
	s.progressFunc = fn
}

// Scan classifies every symbol, ranks the survivors and returns the
// selected top movers. Individual symbol failures are dropped silently;
// only cancellation of the whole pass surfaces as an error.
func (s *Scanner) Scan(ctx context.Context, symbols []string) (*model.ScanResult, error) {
	startTime := time.Now()
	result := &model.ScanResult{
		PassID:       uuid.NewString(),
		StartedAt:    startTime,
		TotalScanned: len(symbols),
		Selected:     []model.Classification{},
	}

	if len(symbols) == 0 {
		result.ScanTime = time.Since(startTime)
		return result, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	jobChan := make(chan string, len(symbols))
	resultChan := make(chan *model.Classification, len(symbols))

	for _, symbol := range symbols {
		jobChan <- symbol
	}
	close(jobChan)

	var scannedCount int64

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					c, err := s.classifier.Classify(ctx, symbol)
					if err == nil && c != nil {
						resultChan <- c
					}

					count := atomic.AddInt64(&scannedCount, 1)
					if s.progressFunc != nil {
						s.progressFunc(int(count), len(symbols))
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var classifications []model.Classification
	for c := range resultChan {
		classifications = append(classifications, *c)
	}

	if err := ctx.Err(); err != nil && err != context.DeadlineExceeded {
		// User cancellation: abandon the pass without emitting a partial
		// result set.
		return nil, err
	}

	result.Classified = len(classifications)
	// Keep Selected as an empty slice when nothing ranked so JSON output
	// renders [] rather than null.
	if selected := ranker.SelectTop(classifications, s.topN); len(selected) > 0 {
		result.Selected = selected
	}
	result.ScanTime = time.Since(startTime)
	return result, nil
}
