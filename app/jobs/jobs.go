// Package jobs defines the background jobs dispatched by the services and
// the queue-backed notifier that feeds them.
package jobs

import (
	"fmt"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/logger"
	"github.com/hometech/server/pkg/mail"
	"github.com/hometech/server/pkg/queue"
)

// RegisterAll makes every job type known to the queue. Call once at boot,
// before workers start.
func RegisterAll() {
	queue.Register("*jobs.BookingConfirmedJob", func() queue.Job { return &BookingConfirmedJob{} })
	queue.Register("*jobs.PaymentReceiptJob", func() queue.Job { return &PaymentReceiptJob{} })
}

// BookingConfirmedJob mails the buyer after a booking is admitted.
type BookingConfirmedJob struct {
	Email           string `json:"email"`
	UserName        string `json:"userName"`
	ProductName     string `json:"productName"`
	Price           int    `json:"price"`
	MeetingLocation string `json:"meetingLocation"`
}

func (j *BookingConfirmedJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <b>%s</b> ($%d) is confirmed.</p>",
		j.UserName, j.ProductName, j.Price)
	if j.MeetingLocation != "" {
		body += fmt.Sprintf("<p>Pickup point: %s</p>", j.MeetingLocation)
	}

	return mail.To(j.Email).
		Subject("Booking confirmed: " + j.ProductName).
		Body(body).
		Send()
}

// PaymentReceiptJob mails the buyer a receipt after checkout.
type PaymentReceiptJob struct {
	Email         string `json:"email"`
	ProductName   string `json:"productName"`
	Price         int    `json:"price"`
	TransactionID string `json:"transactionId"`
}

func (j *PaymentReceiptJob) Handle() error {
	body := fmt.Sprintf(
		"<p>We received your payment of $%d for <b>%s</b>.</p><p>Transaction: %s</p>",
		j.Price, j.ProductName, j.TransactionID)

	return mail.To(j.Email).
		Subject("Payment receipt: " + j.ProductName).
		Body(body).
		Send()
}

// QueueNotifier turns domain events into queued mail jobs. It satisfies
// the services' Notifier interface; dispatch failures are logged, never
// surfaced to the request.
type QueueNotifier struct{}

func (QueueNotifier) BookingConfirmed(b models.Booking) {
	err := queue.Dispatch(&BookingConfirmedJob{
		Email:           b.UserEmail,
		UserName:        b.UserName,
		ProductName:     b.ProductName,
		Price:           b.Price,
		MeetingLocation: b.MeetingLocation,
	})
	if err != nil {
		logger.Error("dispatch booking confirmation", "error", err)
	}
}

func (QueueNotifier) PaymentRecorded(p models.Payment) {
	err := queue.Dispatch(&PaymentReceiptJob{
		Email:         p.UserEmail,
		ProductName:   p.ProductName,
		Price:         p.Price,
		TransactionID: p.TransactionID,
	})
	if err != nil {
		logger.Error("dispatch payment receipt", "error", err)
	}
}
