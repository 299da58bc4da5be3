package config

type JobStatus string

type OfferStatus string

type PaymentStatus string

type PayoutStatus string

const (
	JobStatusOpen         JobStatus = "OPEN"
	JobStatusAssigned     JobStatus = "ASSIGNED"
	JobStatusInProgress   JobStatus = "IN_PROGRESS"
	JobStatusAwaitingConf JobStatus = "AWAITING_CONFIRMATION"
	JobStatusCompleted    JobStatus = "COMPLETED"
	JobStatusCancelled    JobStatus = "CANCELLED"
)

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusDeclined OfferStatus = "DECLINED"
)

const (
	PaymentStatusPreauthorized PaymentStatus = "PREAUTHORIZED"
	PaymentStatusCaptured      PaymentStatus = "CAPTURED"
	PaymentStatusVoided        PaymentStatus = "VOIDED"
	PaymentStatusRefunded      PaymentStatus = "REFUNDED"
)

const (
	PayoutStatusPending    PayoutStatus = "PENDING"
	PayoutStatusProcessing PayoutStatus = "PROCESSING"
	PayoutStatusCompleted  PayoutStatus = "COMPLETED"
	PayoutStatusFailed     PayoutStatus = "FAILED"
)

const (
	PayTypeFlat   = "flat"
	PayTypeHourly = "hourly"
)

var (
	AllowedCategories = []string{
		"cleaning", "moving", "handyman", "yardwork",
		"delivery", "assembly", "petcare", "other",
	}
	AllowedPayTypes = []string{PayTypeFlat, PayTypeHourly}
)

// Terminal reports whether a job can no longer transition,
// administrative refund excepted.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}
