package enum

type EmailFolder string

const (
	FolderInbox EmailFolder = "inbox"
	FolderSent  EmailFolder = "sent"
)

func (t EmailFolder) String() string {
	return string(t)
}

// DeliveryStatus tracks outbound delivery state reported by the provider.
type DeliveryStatus string

const (
	DeliveryStatusQueued     DeliveryStatus = "queued"
	DeliveryStatusSent       DeliveryStatus = "sent"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
	DeliveryStatusDelayed    DeliveryStatus = "delayed"
	DeliveryStatusBounced    DeliveryStatus = "bounced"
	DeliveryStatusComplained DeliveryStatus = "complained"
)

func (t DeliveryStatus) String() string {
	return string(t)
}

type BounceType string

const (
	BounceHard BounceType = "hard"
	BounceSoft BounceType = "soft"
)

func (t BounceType) String() string {
	return string(t)
}

// InboxFilter selects which inbox slice a listing returns.
type InboxFilter string

const (
	InboxFilterDefault InboxFilter = ""
	InboxFilterAll     InboxFilter = "all"
	InboxFilterSpam    InboxFilter = "spam"
)

func (t InboxFilter) String() string {
	return string(t)
}
