package entities

import "spotbook/internal/parking"

type AvailabilityResponse struct {
	Date  parking.Date   `json:"date"`
	Count int            `json:"count"`
	Spots []parking.Spot `json:"spots"`
}

type SpotStatusResponse struct {
	Date  parking.Date         `json:"date"`
	Spots []parking.SpotStatus `json:"spots"`
}
