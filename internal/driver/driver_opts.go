package driver

import "time"

type GameDriverOpt func(*GameDriver)

func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		d.tickLength = tickLength
	}
}

// WithPublisher mirrors every tick to p.
func WithPublisher(p Publisher) GameDriverOpt {
	return func(d *GameDriver) {
		d.publisher = p
	}
}

func WithTickers(tickers ...Ticker) GameDriverOpt {
	return func(d *GameDriver) {
		d.tickers = append(d.tickers, tickers...)
	}
}

// WithWaitFor holds the first tick back until ch is closed.
func WithWaitFor(ch <-chan struct{}) GameDriverOpt {
	return func(d *GameDriver) {
		d.waitFor = append(d.waitFor, ch)
	}
}
