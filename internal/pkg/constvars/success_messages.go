package constvars

const (
	ResponseUnknown = "unknown"

	GetAvailabilitySuccessMessage     = "available slots retrieved successfully"
	GetAppointmentSuccessMessage      = "appointments retrieved successfully"
	CreateAppointmentSuccessMessage   = "appointment request submitted successfully"
	AcceptAppointmentSuccessMessage   = "appointment accepted successfully"
	RejectAppointmentSuccessMessage   = "appointment rejected successfully"
	CancelAppointmentSuccessMessage   = "appointment cancelled successfully"
	ReactivateAppointmentSuccessMessage = "appointment reactivated successfully"
	GetConflictsSuccessMessage        = "conflicting appointments retrieved successfully"
	ResolveConflictSuccessMessage     = "conflict resolved successfully"
	GetAgendaSuccessMessage           = "agenda retrieved successfully"
	CreateSessionSuccessMessage       = "session created successfully"
	DeleteSessionSuccessMessage       = "session deleted successfully"
)
