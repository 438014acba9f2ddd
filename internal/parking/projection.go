package parking

// SpotStatus is a spot annotated with its booking state on one date.
type SpotStatus struct {
	Spot
	Booked   bool   `json:"booked"`
	BookedBy string `json:"bookedBy,omitempty"`
	Mine     bool   `json:"mine"`
}

// AnnotateSpots projects the inventory onto date d. Spots not eligible on d
// (guest spots for another day) are left out.
func AnnotateSpots(spots []Spot, bookings []Booking, d Date, userID string) []SpotStatus {
	byspot := make(map[int64]Booking)
	for _, b := range bookings {
		if b.Date == d {
			byspot[b.SpotID] = b
		}
	}

	out := make([]SpotStatus, 0, len(spots))
	for _, s := range spots {
		if !s.EligibleOn(d) {
			continue
		}
		st := SpotStatus{Spot: s}
		if b, ok := byspot[s.ID]; ok {
			st.Booked = true
			st.BookedBy = b.UserEmail
			st.Mine = userID != "" && b.UserID == userID
		}
		out = append(out, st)
	}
	return out
}
