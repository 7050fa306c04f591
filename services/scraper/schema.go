package scraper

import "strings"

// The metric blocks on an instrument page carry no stable identifiers;
// they can only be read positionally. quoteSchema is the single place
// that records which ordinal means what, so a layout change in the
// source is a one-place fix. The label column documents the Dutch
// heading each ordinal carried at the time of writing.
type metricRule struct {
	label   string
	ordinal int
	assign  func(q *Quote, values []string)
}

var quoteSchema = []metricRule{
	{label: "Bied", ordinal: 0, assign: func(q *Quote, v []string) {
		q.Bid = v[0]
	}},
	{label: "Laat", ordinal: 1, assign: func(q *Quote, v []string) {
		q.Ask = v[1]
	}},
	{label: "% 1 dag", ordinal: 2, assign: func(q *Quote, v []string) {
		q.Day = strings.TrimSuffix(v[2], " %")
	}},
	{label: "Hefboom", ordinal: 3, assign: func(q *Quote, v []string) {
		q.Leverage = v[3]
	}},
	{label: "Stop loss-niveau", ordinal: 4, assign: func(q *Quote, v []string) {
		q.StopLoss = v[4]
	}},
	// The reference metric spans two value cells: the absolute level and
	// its percent change. Both are exposed separately, plus the combined
	// string older consumers expect.
	{label: "Referentiekoers", ordinal: 5, assign: func(q *Quote, v []string) {
		q.Reference = v[5]
		q.ReferencePct = v[6]
		q.ReferenceCombined = v[5] + " " + v[6]
	}},
}

// metricValueCount is the number of value cells the schema consumes.
const metricValueCount = 7

// metricLabelCount is the number of heading cells a well-formed page carries.
const metricLabelCount = 6
