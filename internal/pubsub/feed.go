package pubsub

import (
	"context"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// NewPicksEvent builds the snapshot event carrying the whole pick ledger
func NewPicksEvent(origin string, picks []models.Pick) (Event, error) {
	if picks == nil {
		picks = []models.Pick{}
	}
	return NewEvent(EventPicksUpdated, origin, picks)
}

// LedgerFeed turns pick snapshots published by other processes into a
// single-slot channel. Only the newest undelivered snapshot is kept.
type LedgerFeed struct {
	bus    Bus
	origin string
	src    chan Event
	out    chan []models.Pick
}

// NewLedgerFeed subscribes to bus. Snapshots whose origin matches ours are ignored.
func NewLedgerFeed(bus Bus, origin string) *LedgerFeed {
	return &LedgerFeed{
		bus:    bus,
		origin: origin,
		src:    bus.Subscribe(),
		out:    make(chan []models.Pick, 1),
	}
}

// C returns the snapshot channel. It is closed when Run returns.
func (f *LedgerFeed) C() <-chan []models.Pick {
	return f.out
}

// Run forwards snapshots until ctx is done or the bus closes the subscription
func (f *LedgerFeed) Run(ctx context.Context) {
	defer close(f.out)
	defer f.bus.Unsubscribe(f.src)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-f.src:
			if !ok {
				return
			}
			if event.Type != EventPicksUpdated || event.Origin == f.origin {
				continue
			}
			var picks []models.Pick
			if err := event.Decode(&picks); err != nil {
				logger.Warn("LedgerFeed: Dropping undecodable snapshot", "origin", event.Origin, "error", err)
				continue
			}
			f.offer(picks)
		}
	}
}

// offer replaces any pending snapshot. Run is the only sender, so the
// second send cannot block.
func (f *LedgerFeed) offer(picks []models.Pick) {
	select {
	case f.out <- picks:
		return
	default:
	}
	select {
	case <-f.out:
	default:
	}
	f.out <- picks
}
