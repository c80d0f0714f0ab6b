package schedule

import "github.com/clinicware/doctor-portal-api/internal/models"

// BookedTimes collects the slot times consumed by bookings for one
// appointment type. Duplicate times collapse into the set.
func BookedTimes(bookings []models.Booking, appointmentName string) map[string]bool {
	taken := make(map[string]bool)
	for _, b := range bookings {
		if b.BookingName == appointmentName {
			taken[b.Time] = true
		}
	}
	return taken
}

// OpenSlots returns the slots not present in taken, preserving the
// template order. Slot labels are opaque strings; the match is exact,
// never a normalized time comparison.
func OpenSlots(slots []string, taken map[string]bool) []string {
	open := make([]string, 0, len(slots))
	for _, s := range slots {
		if !taken[s] {
			open = append(open, s)
		}
	}
	return open
}

// Available computes, for each appointment type, the subset of its slot
// template not already consumed by a booking on the target date. The
// caller is expected to pass only bookings for that date. Inputs are
// not mutated; bookings referencing an unknown appointment type are
// ignored.
func Available(appointments []models.AppointmentType, bookingsOnDate []models.Booking) []models.AppointmentType {
	out := make([]models.AppointmentType, len(appointments))
	for i, apt := range appointments {
		taken := BookedTimes(bookingsOnDate, apt.Name)
		apt.Slots = OpenSlots(apt.Slots, taken)
		out[i] = apt
	}
	return out
}
