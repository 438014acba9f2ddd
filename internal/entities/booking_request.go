package entities

type QuickBookRequest struct {
	Dates        []string `json:"dates" validate:"required,min=1,max=62,dive,booking_date"`
	PreferScarce bool     `json:"preferScarce"`
	// PrioritizeUnderground is the older name of PreferScarce.
	PrioritizeUnderground bool `json:"prioritizeUnderground"`
}

func (r QuickBookRequest) WantsScarce() bool {
	return r.PreferScarce || r.PrioritizeUnderground
}

type BookSpotRequest struct {
	SpotID   int64  `json:"spotId" validate:"required_without=SpotCode,gte=0"`
	SpotCode string `json:"spotCode" validate:"required_without=SpotID,max=32"`
	Date     string `json:"date" validate:"required,booking_date"`
}

type CancelBookingRequest struct {
	SpotID int64  `json:"spotId" validate:"required,gt=0"`
	Date   string `json:"date" validate:"required,booking_date"`
}

type CreateSpotRequest struct {
	Code          string `json:"code" validate:"required,max=32"`
	Location      string `json:"location" validate:"max=128"`
	Type          string `json:"type" validate:"required"`
	AvailableDate string `json:"availableDate" validate:"omitempty,booking_date"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
