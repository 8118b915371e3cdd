package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingSessionDataKey      = "session_data"
	LoggingQueryParamsKey      = "query_params"
	LoggingResponseKey         = "response"
	LoggingRequestKey          = "request"
	LoggingResponseLengthKey   = "response_length"
	LoggingAppointmentIDKey    = "appointment_id"
	LoggingAppointmentCountKey = "appointment_count"
	LoggingPatientIDKey        = "patient_id"
	LoggingNutritionistIDKey   = "nutritionist_id"
	LoggingDateKey             = "date"
	LoggingSlotKey             = "slot"
	LoggingStatusKey           = "status"
	LoggingMethodKey           = "method"
	LoggingEndpointKey         = "endpoint"
	LoggingRemoteAddrKey       = "remote_addr"
	LoggingUserAgentKey        = "user_agent"
	LoggingQueryKey            = "query"
	LoggingStatusCodeKey       = "status_code"
	LoggingDurationKey         = "duration"
	LoggingSuccessKey          = "success"
)
