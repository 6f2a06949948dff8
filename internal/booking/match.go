package booking

import (
	"fmt"
	"strings"
)

// Reason classifies the result of comparing one booking record against a
// recognized plate.
type Reason string

const (
	// ReasonVehicleMismatch means the record's vehicle number does not
	// equal the recognized plate text.
	ReasonVehicleMismatch Reason = "vehicle_mismatch"

	// ReasonDateMismatch means the vehicle matched but the record is for
	// a different calendar date.
	ReasonDateMismatch Reason = "date_mismatch"

	// ReasonOutOfWindow means vehicle and date matched but the current
	// time is outside the record's [in, out] window.
	ReasonOutOfWindow Reason = "out_of_window"

	// ReasonInWindow means the record authorizes the plate right now.
	ReasonInWindow Reason = "in_window"
)

// Diagnostic is one per-record comparison note. The matcher emits one for
// every record scanned, in scan order, so a caller can see exactly why a
// plate was or was not authorized.
type Diagnostic struct {
	VehicleNumber string `json:"vehicle_number"`
	Reason        Reason `json:"reason"`
	Note          string `json:"note"`
}

// Outcome is the result of matching one plate against the full schedule.
type Outcome struct {
	// Matched is true when at least one record matched vehicle, date,
	// and time window. Multiple qualifying records are not ranked or
	// deduplicated; any one is sufficient.
	Matched bool `json:"matched"`

	// Diagnostics holds one note per scanned record, in scan order.
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Match scans every record and reports whether plateText has an active
// booking at the given date and clock time.
//
// plateText is expected to be canonical (see the plate package). Stored
// vehicle numbers are cleaned by removing spaces only — not the full
// alphanumeric filtering applied to OCR output. The asymmetry is
// deliberate: a stored number like "KA-01-AB" keeps its dashes and will
// not match a canonical "KA01AB". Unifying the two cleanups would change
// matching behavior for such records.
//
// date must be a "2006-01-02" string and clock a zero-padded 24-hour
// "HH:MM" string. The window test is a lexicographic string comparison,
// which for this fixed-width format is equivalent to chronological order.
// The window is inclusive at both ends.
//
// The scan never exits early: every record contributes a diagnostic even
// after a match is found, because the trail is explanatory rather than a
// search. Matched accumulates with OR across records.
func Match(plateText, date, clock string, records []Record) Outcome {
	out := Outcome{Diagnostics: make([]Diagnostic, 0, len(records))}

	for _, rec := range records {
		vehicle := strings.ReplaceAll(rec.VehicleNumber, " ", "")

		if vehicle != plateText {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				VehicleNumber: rec.VehicleNumber,
				Reason:        ReasonVehicleMismatch,
				Note:          fmt.Sprintf("no match for vehicle number %q", rec.VehicleNumber),
			})
			continue
		}

		if rec.Date != date {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				VehicleNumber: rec.VehicleNumber,
				Reason:        ReasonDateMismatch,
				Note:          fmt.Sprintf("date does not match: booked %s, current %s", rec.Date, date),
			})
			continue
		}

		if rec.InTime <= clock && clock <= rec.OutTime {
			out.Matched = true
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				VehicleNumber: rec.VehicleNumber,
				Reason:        ReasonInWindow,
				Note:          fmt.Sprintf("current time %s is within %s to %s", clock, rec.InTime, rec.OutTime),
			})
		} else {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				VehicleNumber: rec.VehicleNumber,
				Reason:        ReasonOutOfWindow,
				Note:          fmt.Sprintf("current time %s is not within %s to %s", clock, rec.InTime, rec.OutTime),
			})
		}
	}

	return out
}
