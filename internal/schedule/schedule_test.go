package schedule

import (
	"reflect"
	"testing"

	"github.com/clinicware/doctor-portal-api/internal/models"
)

func dental() models.AppointmentType {
	return models.AppointmentType{Name: "Dental", Slots: []string{"9am", "10am", "11am"}}
}

func TestAvailableRemovesBookedSlot(t *testing.T) {
	bookings := []models.Booking{
		{BookingName: "Dental", PatientName: "Alice", Date: "2024-01-01", Time: "10am"},
	}
	got := Available([]models.AppointmentType{dental()}, bookings)
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment type, got %d", len(got))
	}
	want := []string{"9am", "11am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected slots %v, got %v", want, got[0].Slots)
	}
}

func TestAvailableNoBookings(t *testing.T) {
	got := Available([]models.AppointmentType{dental()}, nil)
	want := []string{"9am", "10am", "11am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected full template %v, got %v", want, got[0].Slots)
	}
}

func TestAvailableUnknownBookingNameIgnored(t *testing.T) {
	bookings := []models.Booking{
		{BookingName: "Cardiology", PatientName: "Bob", Date: "2024-01-01", Time: "9am"},
	}
	got := Available([]models.AppointmentType{dental()}, bookings)
	want := []string{"9am", "10am", "11am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected slots %v, got %v", want, got[0].Slots)
	}
}

func TestAvailableEmptyTemplate(t *testing.T) {
	apt := models.AppointmentType{Name: "Walk-in", Slots: []string{}}
	got := Available([]models.AppointmentType{apt}, nil)
	if len(got[0].Slots) != 0 {
		t.Fatalf("expected empty slots, got %v", got[0].Slots)
	}
}

func TestAvailableDuplicateBookingTimesCollapse(t *testing.T) {
	bookings := []models.Booking{
		{BookingName: "Dental", PatientName: "Alice", Date: "2024-01-01", Time: "10am"},
		{BookingName: "Dental", PatientName: "Bob", Date: "2024-01-01", Time: "10am"},
	}
	got := Available([]models.AppointmentType{dental()}, bookings)
	want := []string{"9am", "11am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected slots %v, got %v", want, got[0].Slots)
	}
}

func TestAvailablePreservesOrder(t *testing.T) {
	apt := models.AppointmentType{Name: "Dental", Slots: []string{"11am", "9am", "10am"}}
	bookings := []models.Booking{
		{BookingName: "Dental", Time: "9am"},
	}
	got := Available([]models.AppointmentType{apt}, bookings)
	want := []string{"11am", "10am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected slots %v, got %v", want, got[0].Slots)
	}
}

func TestAvailableExactStringMatch(t *testing.T) {
	// "09:00" and "9am" must never be treated as the same slot.
	apt := models.AppointmentType{Name: "Dental", Slots: []string{"9am"}}
	bookings := []models.Booking{
		{BookingName: "Dental", Time: "09:00"},
	}
	got := Available([]models.AppointmentType{apt}, bookings)
	want := []string{"9am"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Fatalf("expected slots %v, got %v", want, got[0].Slots)
	}
}

func TestAvailableDoesNotMutateInput(t *testing.T) {
	apts := []models.AppointmentType{dental()}
	bookings := []models.Booking{
		{BookingName: "Dental", Time: "10am"},
	}
	first := Available(apts, bookings)
	second := Available(apts, bookings)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected idempotent result, got %v then %v", first, second)
	}
	if len(apts[0].Slots) != 3 {
		t.Fatalf("input template was mutated: %v", apts[0].Slots)
	}
}

func TestOpenSlotsSubsetOfTemplate(t *testing.T) {
	slots := []string{"9am", "10am", "11am"}
	taken := map[string]bool{"10am": true, "1pm": true}
	open := OpenSlots(slots, taken)
	for _, s := range open {
		found := false
		for _, tpl := range slots {
			if s == tpl {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("slot %q not in template", s)
		}
	}
}

func TestBookedTimesFiltersByName(t *testing.T) {
	bookings := []models.Booking{
		{BookingName: "Dental", Time: "9am"},
		{BookingName: "Eye", Time: "10am"},
	}
	taken := BookedTimes(bookings, "Dental")
	if !taken["9am"] || taken["10am"] {
		t.Fatalf("unexpected taken set: %v", taken)
	}
}
