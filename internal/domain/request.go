package domain

import "time"

type RequestStatus string

const (
	RequestStatusInterested RequestStatus = "interested"
	RequestStatusIgnored    RequestStatus = "ignored"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusRejected   RequestStatus = "rejected"
)

// IsCreation reports whether a sender may open a request in this status.
// Accepted and rejected records only ever come out of a review.
func (s RequestStatus) IsCreation() bool {
	return s == RequestStatusInterested || s == RequestStatusIgnored
}

// IsReview reports whether a recipient may move an interested request to this status.
func (s RequestStatus) IsReview() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// IsTerminal reports whether no transition may leave this status. Interested
// is the only non-terminal state.
func (s RequestStatus) IsTerminal() bool {
	return s != RequestStatusInterested
}

// ConnectionRequest is a directional edge between two distinct users.
type ConnectionRequest struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CounterpartOf returns the endpoint of the edge that is not userID.
func (r ConnectionRequest) CounterpartOf(userID int64) int64 {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}
