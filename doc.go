// Package fundwatch tracks a personal portfolio of funds, ETFs and gold
// spot exposure, pulls near-real-time valuations from third-party quote
// endpoints, and derives day-over-day and lifetime profit/loss.
//
// The package is organised around a small pipeline:
//
//	source adapter -> normalizer -> classifier -> valuation -> aggregate
//
// Source adapters (one subpackage per provider) turn a provider's wire
// format into a RawQuote. Normalize turns a RawQuote into a Quote or
// rejects it. The EstimationWindow classifies a Quote as an intraday
// estimate or the day's finalized value. Valuations combine a Quote with a
// Position from the user's Ledger, and Aggregate sums them into a Report.
//
// The Ledger is mutated only by explicit user actions (buy, sell, delete,
// corrections), never by quote fetches: a full provider outage degrades to
// an "unavailable" view, it cannot corrupt stored positions.
package fundwatch
