package entity

// Segment is the budget-derived pricing category used to pick the offer
// narrative for a lead.
type Segment string

const (
	SegmentLow         Segment = "LOW"
	SegmentEventStream Segment = "EVENT_STREAM"
	SegmentVideo       Segment = "VIDEO"
	SegmentRetainer    Segment = "RETAINER"
)

// ClassifySegment maps a budget (PLN) to a segment. First match wins.
// Budgets below zero land in LOW like any other sub-1000 value.
func ClassifySegment(budget int) Segment {
	if budget < 1000 {
		return SegmentLow
	}
	if budget < 2000 {
		return SegmentEventStream
	}
	if budget < 2500 {
		return SegmentVideo
	}
	return SegmentRetainer
}

var offerLabels = map[Segment]string{
	SegmentLow:         "Poza zakresem budżetu (spróbuj upsell / doprecyzowanie)",
	SegmentEventStream: "Event / stream (od 1000 zł)",
	SegmentVideo:       "Film / wideo (od 2000 zł)",
	SegmentRetainer:    "Abonament (od 2500 zł / miesiąc)",
}

// OfferLabel returns the human-readable offer name for a segment.
func OfferLabel(s Segment) string {
	if label, ok := offerLabels[s]; ok {
		return label
	}
	return "Nieznany segment"
}
