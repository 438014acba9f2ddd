package entities

type BookingSummaryLine struct {
	Date     string
	Status   string
	SpotCode string
}

type BookingSummaryEmailData struct {
	UserEmail   string
	BookedCount int
	Lines       []BookingSummaryLine
	CurrentYear int
}
