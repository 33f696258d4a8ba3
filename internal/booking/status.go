package booking

// TransitionStatus returns the status b moves to when actorID requests target.
// Rules apply in order: only the two parties may act, closed bookings never
// change, and an owner who is not also the host may only cancel.
// PENDING may move straight to COMPLETED.
func TransitionStatus(b *Booking, actorID string, target Status) (Status, error) {
	isOwner := actorID == b.OwnerID
	isHost := actorID == b.HostID

	if !isOwner && !isHost {
		return "", ErrNotAuthorized
	}
	if b.Status.IsTerminal() {
		return "", ErrBookingClosed
	}
	if isOwner && !isHost && target != StatusCancelled {
		return "", ErrOwnerRestricted
	}

	switch target {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return target, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Cancel is TransitionStatus to CANCELLED, reporting a repeated cancel as
// ErrAlreadyCancelled so clients can treat retries as done.
func Cancel(b *Booking, actorID string) (Status, error) {
	if actorID != b.OwnerID && actorID != b.HostID {
		return "", ErrNotAuthorized
	}
	switch b.Status {
	case StatusCompleted:
		return "", ErrBookingClosed
	case StatusCancelled:
		return "", ErrAlreadyCancelled
	}
	return TransitionStatus(b, actorID, StatusCancelled)
}
