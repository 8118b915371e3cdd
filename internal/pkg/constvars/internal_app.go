package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "isClientRequestID"
	CONTEXT_SESSION_DATA_KEY         contextKey = "sessionData"
)

const (
	NutriplanRolePatient      = "patient"
	NutriplanRoleNutritionist = "nutritionist"
)

const (
	MongoCollectionAppointments = "appointments"
	MongoCollectionUsers        = "users"
)

const (
	RedisSessionKeyPrefix  = "session:"
	RedisUserNameKeyPrefix = "user_name:"
)

// Notification event names carried on queued appointment events.
const (
	NotificationEventRequested   = "appointment_requested"
	NotificationEventAccepted    = "appointment_accepted"
	NotificationEventRejected    = "appointment_rejected"
	NotificationEventCancelled   = "appointment_cancelled"
	NotificationEventReactivated = "appointment_reactivated"
	NotificationEventResolved    = "appointment_conflict_resolved"
	NotificationEventPendingWork = "nutritionist_pending_changed"
)

const (
	// ISODateLayout is the wall-clock calendar date format used everywhere
	// an appointment date crosses a boundary.
	ISODateLayout = "2006-01-02"
	// SlotTimeLayout is the 24h wall-clock format of catalog slot bounds.
	SlotTimeLayout = "15:04"
)
