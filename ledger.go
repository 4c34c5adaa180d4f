package fundwatch

import (
	"fmt"
	"log"
)

// Position is one holding of a user: a share count and its weighted-average
// cost basis. Positions are persisted and owned exclusively by the user's
// ledger; quote fetches never mutate them.
type Position struct {
	ID          string   // instrument identifier
	Shares      Quantity // non-negative at all times
	AverageCost Money    // currency per share; meaningless while Shares is zero
	Channel     string   // optional free-text tag, typically a brokerage name
}

// Open reports whether the position currently holds shares. A position with
// zero shares is closed but not deleted: buying again reopens it.
func (p *Position) Open() bool { return p.Shares.IsPositive() }

// Ledger holds all positions of one user. It never contacts the network, so
// the only failures it can produce are validation errors on user input.
type Ledger struct {
	user      string
	positions []*Position // insertion order, the order the user built the portfolio in
}

// NewLedger returns an empty ledger for the given user.
func NewLedger(user string) *Ledger { return &Ledger{user: user} }

// User returns the owner of the ledger.
func (l *Ledger) User() string { return l.user }

// Position returns the position for an instrument, or nil when absent.
func (l *Ledger) Position(id string) *Position {
	for _, p := range l.positions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Positions returns the user's positions in insertion order.
func (l *Ledger) Positions() []*Position { return l.positions }

// Instruments returns the instrument ids of all positions, in order.
func (l *Ledger) Instruments() []string {
	ids := make([]string, 0, len(l.positions))
	for _, p := range l.positions {
		ids = append(ids, p.ID)
	}
	return ids
}

// OpenOrBuy creates the position when absent, or applies a buy to an
// existing one. On a buy the average cost is recomputed as the
// shares-weighted mean of the old basis and the trade:
//
//	avg' = (shares*avg + delta*price) / (shares + delta)
//
// Lots are not tracked individually: this is plain weighted-average
// accounting, not FIFO.
//
// A zero trade price is permitted as a cost-basis placeholder.
func (l *Ledger) OpenOrBuy(id string, delta Quantity, price Money, channel string) error {
	if id == "" {
		return fmt.Errorf("instrument id is missing")
	}
	if !delta.IsPositive() {
		return fmt.Errorf("buy %s: share count must be positive, got %s", id, delta)
	}
	if price.IsNegative() {
		return fmt.Errorf("buy %s: trade price cannot be negative, got %s", id, price)
	}

	p := l.Position(id)
	if p == nil {
		p = &Position{ID: id, Shares: delta, AverageCost: price, Channel: channel}
		l.positions = append(l.positions, p)
		return nil
	}

	if p.Shares.IsZero() {
		// reopening a closed position starts a fresh cost basis
		p.AverageCost = price
		p.Shares = delta
	} else {
		total := p.AverageCost.Mul(p.Shares).Add(price.Mul(delta))
		p.Shares = p.Shares.Add(delta)
		p.AverageCost = total.Div(p.Shares)
	}
	if channel != "" {
		p.Channel = channel
	}
	return nil
}

// Sell reduces a position's share count. The average cost of the remaining
// shares is left untouched: selling does not alter the cost basis under
// weighted-average accounting.
//
// Over-selling beyond the held shares clamps the position to zero instead
// of failing. This mirrors the historical behavior; the clamp is logged so
// the policy stays visible.
func (l *Ledger) Sell(id string, delta Quantity) error {
	if !delta.IsPositive() {
		return fmt.Errorf("sell %s: share count must be positive, got %s", id, delta)
	}
	p := l.Position(id)
	if p == nil {
		return fmt.Errorf("sell %s: no such position", id)
	}
	if delta.GreaterThan(p.Shares) {
		log.Printf("sell %s: %s shares exceeds the %s held, clamping to zero", id, delta, p.Shares)
		p.Shares = Q(0)
		return nil
	}
	p.Shares = p.Shares.Sub(delta)
	return nil
}

// Delete removes the position entirely, whatever its share count. It
// reports whether a position was removed.
func (l *Ledger) Delete(id string) bool {
	for i, p := range l.positions {
		if p.ID == id {
			l.positions = append(l.positions[:i], l.positions[i+1:]...)
			return true
		}
	}
	return false
}

// SetChannel tags a position with a brokerage channel, bypassing trades.
func (l *Ledger) SetChannel(id, channel string) error {
	p := l.Position(id)
	if p == nil {
		return fmt.Errorf("set-channel %s: no such position", id)
	}
	p.Channel = channel
	return nil
}

// SetCost overrides a position's average cost for manual correction,
// bypassing the weighted-average formula.
func (l *Ledger) SetCost(id string, price Money) error {
	if price.IsNegative() {
		return fmt.Errorf("set-cost %s: price cannot be negative, got %s", id, price)
	}
	p := l.Position(id)
	if p == nil {
		return fmt.Errorf("set-cost %s: no such position", id)
	}
	p.AverageCost = price
	return nil
}
