package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher periodically fetches quotes for a watchlist and hands each
// fresh batch to a callback. It runs on a cron schedule so "every market
// minute" and "9:35 on weekdays" cost the same to express.
type Refresher struct {
	provider Provider
	codes    func() []string
	timeout  time.Duration
	onBatch  func(map[string]Quote)

	cron *cron.Cron
}

// NewRefresher creates a stopped refresher. codes is called before every
// refresh so a changing watchlist is picked up without restarting.
func NewRefresher(p Provider, codes func() []string, timeout time.Duration, onBatch func(map[string]Quote)) *Refresher {
	return &Refresher{
		provider: p,
		codes:    codes,
		timeout:  timeout,
		onBatch:  onBatch,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start schedules refreshes with a cron spec (seconds field included,
// e.g. "*/30 * * * * *" for every 30 seconds) and runs one refresh
// immediately.
func (r *Refresher) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.refresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	r.cron.Start()
	go r.refresh()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) refresh() {
	codes := r.codes()
	if len(codes) == 0 {
		return
	}
	quotes := Batch(context.Background(), r.provider, codes, r.timeout)
	if len(quotes) > 0 {
		r.onBatch(quotes)
	}
}
