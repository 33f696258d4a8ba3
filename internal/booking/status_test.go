package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "owner"
	hostID     = "host"
	strangerID = "stranger"
)

func bookingIn(status Status) *Booking {
	return &Booking{ID: "b1", OwnerID: ownerID, HostID: hostID, Status: status}
}

func TestOwnerMayOnlyCancel(t *testing.T) {
	_, err := TransitionStatus(bookingIn(StatusPending), ownerID, StatusConfirmed)
	assert.ErrorIs(t, err, ErrOwnerRestricted)

	_, err = TransitionStatus(bookingIn(StatusConfirmed), ownerID, StatusCompleted)
	assert.ErrorIs(t, err, ErrOwnerRestricted)

	next, err := TransitionStatus(bookingIn(StatusPending), ownerID, StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)
}

func TestHostTransitions(t *testing.T) {
	for _, target := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		next, err := TransitionStatus(bookingIn(StatusPending), hostID, target)
		require.NoError(t, err, target)
		assert.Equal(t, target, next)
	}

	next, err := TransitionStatus(bookingIn(StatusConfirmed), hostID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)

	_, err = TransitionStatus(bookingIn(StatusConfirmed), hostID, StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = TransitionStatus(bookingIn(StatusConfirmed), hostID, "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestClosedBookingsNeverChange(t *testing.T) {
	for _, current := range []Status{StatusCompleted, StatusCancelled} {
		for _, actor := range []string{ownerID, hostID} {
			for _, target := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
				_, err := TransitionStatus(bookingIn(current), actor, target)
				assert.ErrorIs(t, err, ErrBookingClosed, "%s by %s -> %s", current, actor, target)
			}
		}
	}
}

func TestStrangerIsRejectedFirst(t *testing.T) {
	_, err := TransitionStatus(bookingIn(StatusCompleted), strangerID, StatusCancelled)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = Cancel(bookingIn(StatusCancelled), strangerID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestOwnerWhoIsAlsoHostIsNotRestricted(t *testing.T) {
	b := &Booking{OwnerID: "same", HostID: "same", Status: StatusPending}
	next, err := TransitionStatus(b, "same", StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, next)
}

func TestCancel(t *testing.T) {
	for _, actor := range []string{ownerID, hostID} {
		for _, current := range []Status{StatusPending, StatusConfirmed} {
			next, err := Cancel(bookingIn(current), actor)
			require.NoError(t, err)
			assert.Equal(t, StatusCancelled, next)
		}
	}

	_, err := Cancel(bookingIn(StatusCompleted), ownerID)
	assert.ErrorIs(t, err, ErrBookingClosed)

	_, err = Cancel(bookingIn(StatusCancelled), hostID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}
