// Package booking reads slot reservations from the schedule store and
// decides whether a recognized plate has an active, in-window booking.
package booking

// Booking status values as stored in the schedule. The matcher never
// consults the status: presence of a row is what matters.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// Record is one booking row from the schedule store. This package only
// reads records; booking lifecycle (creation, cancellation) belongs to
// the surrounding application.
type Record struct {
	// VehicleNumber is the plate as entered at booking time. It may
	// contain spaces ("KA 01 AB 1234"); the matcher removes spaces but
	// nothing else before comparing.
	VehicleNumber string

	// Date is the booked calendar date in "2006-01-02" form.
	Date string

	// InTime and OutTime bound the booking window as zero-padded
	// 24-hour "HH:MM" strings. The window is inclusive on both ends.
	InTime  string
	OutTime string

	// Status is informational only.
	Status string
}
