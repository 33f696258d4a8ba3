package booking

import (
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
)

// ServiceFeePercent is the surcharge added to the base price of every stay.
const ServiceFeePercent = 10

type Quote struct {
	Nights      int
	NightlyRate money.Cents
	BasePrice   money.Cents
	ServiceFee  money.Cents
	TotalPrice  money.Cents
}

// MaxStayNights bounds a single booking.
const MaxStayNights = 365

const secondsPerDay = 24 * 60 * 60

// Nights counts started 24h periods between start and end; a partial day counts as a night.
// It works on Unix seconds so spans beyond time.Duration's range stay exact.
func Nights(start, end time.Time) int {
	secs := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	n := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos != 0 {
		n++
	}
	return int(n)
}

// CheckStay rejects empty, inverted and over-long date ranges.
func CheckStay(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidDateRange
	}
	if Nights(start, end) > MaxStayNights {
		return ErrStayTooLong
	}
	return nil
}

// ComputeQuote prices a stay. The fee is rounded to the nearest cent.
func ComputeQuote(start, end time.Time, nightlyRate money.Cents) (Quote, error) {
	if err := CheckStay(start, end); err != nil {
		return Quote{}, err
	}
	if nightlyRate <= 0 || nightlyRate > host.MaxPricePerNight {
		return Quote{}, ErrInvalidRate
	}

	nights := Nights(start, end)
	base, ok := nightlyRate.MulChecked(int64(nights))
	if !ok {
		return Quote{}, ErrPriceOverflow
	}
	// base*10 must fit for the fee computation.
	if _, ok := base.MulChecked(ServiceFeePercent); !ok {
		return Quote{}, ErrPriceOverflow
	}
	fee := base.Percent(ServiceFeePercent)

	return Quote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		BasePrice:   base,
		ServiceFee:  fee,
		TotalPrice:  base + fee,
	}, nil
}
