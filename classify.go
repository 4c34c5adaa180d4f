package fundwatch

import "time"

// quoteTimeFormats are the timestamp shapes observed across providers, from
// most to least specific.
var quoteTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateFormat,
}

// EstimationWindow describes the span of the trading day during which a
// provider publishes running estimates rather than settled values. The
// exact cutoff is provider- and exchange-specific, so it is configuration,
// not a hard rule.
type EstimationWindow struct {
	Open     string // clock time "15:04" at which intraday estimation starts
	Settle   string // clock time at which the settled value is published
	Location *time.Location
}

// AShareWindow returns the estimation window of the Chinese A-share
// session: estimates run from open to the 15:00 close, settled values are
// published after.
func AShareWindow() EstimationWindow {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.FixedZone("CST", 8*60*60)
	}
	return EstimationWindow{Open: "09:30", Settle: "15:00", Location: loc}
}

// Today returns the current date in the window's location.
func (w EstimationWindow) Today() Date { return TodayIn(w.loc()) }

func (w EstimationWindow) loc() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

// Classify decides whether a quote timestamp represents the day's finalized
// value or a running intraday estimate. A quote is FINAL when its date
// component equals today and its clock time falls outside the estimation
// window. Anything unparseable classifies as ESTIMATE, the more
// conservative label.
//
// Classification changes only the label shown to the user; valuation
// arithmetic is identical for both states.
func (w EstimationWindow) Classify(observed string, today Date) bool {
	if observed == "" {
		return false
	}
	for _, format := range quoteTimeFormats {
		t, err := time.ParseInLocation(format, observed, w.loc())
		if err != nil {
			continue
		}
		if NewDate(t.Date()) != today {
			return false
		}
		if format == DateFormat {
			// date-only timestamps are settlement publishes
			return true
		}
		return !w.within(t)
	}
	return false
}

// within reports whether t's clock time falls inside [Open, Settle).
func (w EstimationWindow) within(t time.Time) bool {
	open, errOpen := time.Parse("15:04", w.Open)
	settle, errSettle := time.Parse("15:04", w.Settle)
	if errOpen != nil || errSettle != nil {
		// a misconfigured window never finalizes a quote
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= open.Hour()*60+open.Minute() && minutes < settle.Hour()*60+settle.Minute()
}
