package analytics

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sevenmenu/gateway/internal/upstream"
)

type recordingSender struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (s *recordingSender) TrackEvent(ctx context.Context, slug, eventType string, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, eventType)
	return s.err
}

func newTestTracker(sender Sender) *Tracker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewTracker(sender, logrus.NewEntry(logger))
}

func TestTrackerDeliversBeacons(t *testing.T) {
	sender := &recordingSender{}
	tracker := newTestTracker(sender)

	tracker.PageView("pizzaria-sete")
	tracker.AddToCart("pizzaria-sete", 100)
	tracker.Drain()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.ElementsMatch(t, []string{upstream.EventPageView, upstream.EventAddToCart}, sender.events)
}

func TestTrackerSwallowsSenderFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("backend down")}
	tracker := newTestTracker(sender)

	tracker.PageView("pizzaria-sete")
	tracker.Drain()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.events, 1)
}

func TestDrainWithNothingInFlight(t *testing.T) {
	newTestTracker(&recordingSender{}).Drain()
}
