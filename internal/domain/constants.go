package domain

// Default operating hours, applied at salon registration
const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "21:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNameLength               = 120
	MaxCategoryLength           = 60
	MaxCancellationReasonLength = 500
	MaxSpecialties              = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// FirstQueueTicket номер первого талона очереди за операционный день
const FirstQueueTicket = 1
