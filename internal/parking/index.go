package parking

type userWeek struct {
	userID string
	week   Date
}

type userDay struct {
	userID string
	date   Date
}

// Index answers availability questions about a Snapshot. It never changes
// after construction.
type Index struct {
	spots       []Spot
	spotsByID   map[int64]Spot
	bookedSpots map[Date]map[int64]struct{}
	userDays    map[userDay]struct{}
	scarce      map[userWeek]int
}

func NewIndex(snap Snapshot) *Index {
	idx := &Index{
		spots:       snap.Spots,
		spotsByID:   make(map[int64]Spot, len(snap.Spots)),
		bookedSpots: make(map[Date]map[int64]struct{}),
		userDays:    make(map[userDay]struct{}),
		scarce:      make(map[userWeek]int),
	}
	for _, s := range snap.Spots {
		idx.spotsByID[s.ID] = s
	}
	for _, b := range snap.Bookings {
		day, ok := idx.bookedSpots[b.Date]
		if !ok {
			day = make(map[int64]struct{})
			idx.bookedSpots[b.Date] = day
		}
		day[b.SpotID] = struct{}{}
		idx.userDays[userDay{b.UserID, b.Date}] = struct{}{}

		// bookings on spots that no longer exist carry no category
		if s, ok := idx.spotsByID[b.SpotID]; ok && s.Category.Scarce() {
			idx.scarce[userWeek{b.UserID, WeekKey(b.Date)}]++
		}
	}
	return idx
}

func (idx *Index) Spot(id int64) (Spot, bool) {
	s, ok := idx.spotsByID[id]
	return s, ok
}

// SpotByCode looks a spot up by its human code.
func (idx *Index) SpotByCode(code string) (Spot, bool) {
	for _, s := range idx.spots {
		if s.Code == code {
			return s, true
		}
	}
	return Spot{}, false
}

func (idx *Index) Spots() []Spot {
	return idx.spots
}

// IsBooked reports whether spot id already has a booking on d.
func (idx *Index) IsBooked(id int64, d Date) bool {
	_, ok := idx.bookedSpots[d][id]
	return ok
}

// HasBooking reports whether the user already holds a booking on d.
func (idx *Index) HasBooking(userID string, d Date) bool {
	_, ok := idx.userDays[userDay{userID, d}]
	return ok
}

// FreeSpots returns, in inventory order, the spots with no booking on d that
// are eligible on d.
func (idx *Index) FreeSpots(d Date) []Spot {
	free := make([]Spot, 0, len(idx.spots))
	for _, s := range idx.spots {
		if !s.EligibleOn(d) || idx.IsBooked(s.ID, d) {
			continue
		}
		free = append(free, s)
	}
	return free
}

// ScarceCountInWeek counts the user's snapshot bookings on scarce spots whose
// week key is week.
func (idx *Index) ScarceCountInWeek(userID string, week Date) int {
	return idx.scarce[userWeek{userID, week}]
}

// SnapshotWindow is the smallest booking date range that answers every index
// query for dates: whole weeks from the first date's week to the last's.
func SnapshotWindow(dates []Date) (from, to Date) {
	if len(dates) == 0 {
		return Date{}, Date{}
	}
	lo, hi := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(lo) {
			lo = d
		}
		if hi.Before(d) {
			hi = d
		}
	}
	return WeekKey(lo), WeekKey(hi).AddDays(6)
}
