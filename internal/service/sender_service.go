package service

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"spotbook/internal/entities"
	"spotbook/internal/parking"
)

// Notifier tells people about committed bookings. Calls may block on the
// network; callers run them off the request path.
type Notifier interface {
	BookingSummary(userEmail string, results []parking.DateResult) error
	GuestSpotBooked(spot parking.Spot, booking parking.Booking) error
}

//go:embed templates/booking_summary.html
var bookingSummaryHTML string

var bookingSummaryTmpl = template.Must(template.New("booking_summary").Parse(bookingSummaryHTML))

// SenderService delivers notifications over SendGrid and Twilio. A nil sender
// disables that channel.
type SenderService struct {
	email     EmailSender
	sms       SMSSender
	frontDesk string
	log       *zap.Logger
}

func NewSenderService(email EmailSender, sms SMSSender, frontDesk string, log *zap.Logger) *SenderService {
	return &SenderService{email: email, sms: sms, frontDesk: frontDesk, log: log}
}

func summaryData(userEmail string, results []parking.DateResult, now time.Time) entities.BookingSummaryEmailData {
	data := entities.BookingSummaryEmailData{UserEmail: userEmail, CurrentYear: now.Year()}
	for _, r := range results {
		if r.Status == parking.StatusBooked {
			data.BookedCount++
		}
		data.Lines = append(data.Lines, entities.BookingSummaryLine{
			Date:     r.Date.String(),
			Status:   string(r.Status),
			SpotCode: r.SpotCode,
		})
	}
	return data
}

func summaryPlainText(data entities.BookingSummaryEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\n%d day(s) booked for %s.\n\n", data.BookedCount, data.UserEmail)
	for _, l := range data.Lines {
		if l.SpotCode != "" {
			fmt.Fprintf(&b, "%s  %s  %s\n", l.Date, l.Status, l.SpotCode)
		} else {
			fmt.Fprintf(&b, "%s  %s\n", l.Date, l.Status)
		}
	}
	return b.String()
}

func (s *SenderService) BookingSummary(userEmail string, results []parking.DateResult) error {
	if s.email == nil || userEmail == "" {
		s.log.Debug("booking summary email skipped", zap.String("to", userEmail))
		return nil
	}

	data := summaryData(userEmail, results, time.Now())
	var html bytes.Buffer
	if err := bookingSummaryTmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render booking summary: %w", err)
	}
	subject := fmt.Sprintf("Parking: %d day(s) booked", data.BookedCount)
	return s.email.SendEmail(userEmail, "", subject, summaryPlainText(data), html.String())
}

func (s *SenderService) GuestSpotBooked(spot parking.Spot, booking parking.Booking) error {
	if s.sms == nil || s.frontDesk == "" {
		s.log.Debug("front desk sms skipped", zap.String("spot", spot.Code))
		return nil
	}
	who := booking.UserEmail
	if who == "" {
		who = booking.UserID
	}
	body := fmt.Sprintf("Parking: guest spot %s booked for %s by %s.", spot.Code, booking.Date, who)
	return s.sms.SendSMS(s.frontDesk, body)
}
