// Package analytics sends best-effort telemetry beacons. Outcomes are
// discarded: a failed beacon must never surface to a diner or change what
// the storefront renders.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/upstream"
)

// Sender is the single upstream call the tracker needs.
type Sender interface {
	TrackEvent(ctx context.Context, slug, eventType string, productID int) error
}

type Tracker struct {
	sender  Sender
	log     *logrus.Entry
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewTracker(sender Sender, log *logrus.Entry) *Tracker {
	return &Tracker{
		sender:  sender,
		log:     log,
		timeout: 5 * time.Second,
	}
}

// PageView fires a page-view beacon for a menu load.
func (t *Tracker) PageView(slug string) {
	t.dispatch(slug, upstream.EventPageView, 0)
}

// AddToCart fires an add-to-cart beacon for a product.
func (t *Tracker) AddToCart(slug string, productID int) {
	t.dispatch(slug, upstream.EventAddToCart, productID)
}

func (t *Tracker) dispatch(slug, eventType string, productID int) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if err := t.sender.TrackEvent(ctx, slug, eventType, productID); err != nil {
			t.log.WithError(err).WithFields(logrus.Fields{
				"slug":  slug,
				"event": eventType,
			}).Debug("analytics beacon dropped")
		}
	}()
}

// Drain blocks until in-flight beacons finish. Called on shutdown and in
// tests; beacons are bounded by their own timeout so this cannot hang.
func (t *Tracker) Drain() {
	t.wg.Wait()
}
