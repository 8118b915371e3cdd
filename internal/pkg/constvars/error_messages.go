package constvars

// Client-facing messages
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "Your session is invalid or has expired, please log in again"
	ErrClientServerLongRespond             = "The server took too long to respond, please try again"

	ErrClientPatientIDRequired      = "Patient is required"
	ErrClientNutritionistIDRequired = "Nutritionist is required"
	ErrClientInvalidTimeSlot        = "The selected time does not match an available consultation slot"
	ErrClientIneligibleWeekday      = "Appointments can only be scheduled Monday through Friday"
	ErrClientSlotInThePast          = "The selected time has already passed"
	ErrClientInvalidDateRange       = "Invalid date range: start date must not be after end date"
	ErrClientDuplicateRequest       = "You already have a request for this time"
	ErrClientSlotOccupied           = "This time slot is already occupied"
	ErrClientAppointmentNotFound    = "Appointment not found"
	ErrClientUnknownStatus          = "Unknown appointment status"
	ErrClientOnlyPendingAcceptable  = "Only pending appointments can be accepted"
	ErrClientOnlyPendingRejectable  = "Only pending appointments can be rejected"
	ErrClientOnlyAcceptedCancelable = "Only accepted appointments can be cancelled"
	ErrClientOnlyCancelledRevivable = "Only cancelled appointments can be reactivated"
	ErrClientSlotConflict           = "Scheduling conflict: another appointment is already accepted for this slot"
	ErrClientNotResolvable          = "Only accepted or cancelled appointments can be selected to resolve a conflict"
)

// Dev-facing messages
const (
	ErrDevValidationFailed         = "Request validation failed"
	ErrDevInvalidRequestPayload    = "Invalid request payload"
	ErrDevCannotParseJSON          = "Failed to parse JSON payload"
	ErrDevCannotMarshalJSON        = "Failed to marshal JSON payload"
	ErrDevCannotParseDate          = "Failed to parse date"
	ErrDevServerDeadlineExceeded   = "Server deadline exceeded while processing request"
	ErrDevServerProcess            = "Unhandled error while processing request"
	ErrDevMissingRequestID         = "Request ID missing from context"
	ErrDevMissingSessionData       = "Session data missing from context"
	ErrDevAuthTokenMissing         = "Authorization token missing from request"
	ErrDevAuthTokenInvalidOrExpired = "Authorization token invalid or expired"
	ErrDevInvalidInput             = "Invalid input"

	ErrDevDBFailedToFindDocument    = "MongoDB: failed to find document"
	ErrDevDBFailedToInsertDocument  = "MongoDB: failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "MongoDB: failed to update document"
	ErrDevDBFailedToIterateDocuments = "MongoDB: failed to iterate documents"
	ErrDevDBFailedToWatchCollection = "MongoDB: failed to watch collection"

	ErrDevRedisGetData  = "Redis: failed to get data"
	ErrDevRedisSetData  = "Redis: failed to set data"
	ErrDevRedisDeleteData = "Redis: failed to delete data"

	ErrDevRabbitMQPublishMessage = "RabbitMQ: failed to publish message to queue %s"
)

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"min":       "must be at least %s characters long",
	"max":       "maximum at %s characters long",
	"oneof":     "must be one of [%s]",
	"uuid":      "must be a valid UUID",
	"iso_date":  "must be a calendar date formatted as YYYY-MM-DD",
	"slot_time": "must be a 24h time formatted as HH:MM",
	"user_role": "must be either 'nutritionist' or 'patient'",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}
