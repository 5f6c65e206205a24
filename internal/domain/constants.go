package domain

// Default configuration values
const (
	DefaultStepMinutes = 15

	// Дефолтные часы работы ресторанов, когда в каталоге нет строки расписания
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "23:00"
)

// Business validation constants
const (
	MinStepMinutes = 5
	MaxStepMinutes = 240

	MinPartySize = 1
	MaxPartySize = 20

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Segment labels used when grouping slots for display
const (
	SegmentMorning   = "Morning"
	SegmentAfternoon = "Afternoon"
	SegmentMidi      = "Midi"
	SegmentSoir      = "Soir"
)

// InactiveStatuses статусы неактивных резерваций.
// Используются при фильтрации занятых слотов.
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByClient,
	StatusCancelledByEtablissement,
	StatusNoShow,
}

// ActiveStatuses статусы активных резерваций
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
