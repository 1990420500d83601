package domain

// RejectReason explains why a candidate booking was rejected
type RejectReason string

const (
	ReasonStudioClosed RejectReason = "studio_closed"
	ReasonInvalidSlot  RejectReason = "invalid_slot"
	ReasonOverlap      RejectReason = "overlap"
)

// Candidate is the scheduling part of a booking request
type Candidate struct {
	Start    Slot
	Duration int
}

// Occupancy is the scheduling part of an existing active booking.
// Duration below 1 marks a malformed record.
type Occupancy struct {
	BookingID string
	Start     Slot
	Duration  int
}

// Decision is the outcome of evaluating a candidate booking
type Decision struct {
	Accepted bool
	Reason   RejectReason
	Detail   string

	// Filled for ReasonOverlap
	ConflictingBookingID string
	ConflictingWindow    []Slot
}

func Accept() Decision {
	return Decision{Accepted: true}
}

func Reject(reason RejectReason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

// Result returns "accepted" or the reject reason
func (d Decision) Result() string {
	if d.Accepted {
		return "accepted"
	}
	return string(d.Reason)
}
