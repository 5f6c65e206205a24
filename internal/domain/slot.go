package domain

import "github.com/resago/booking-service/pkg/types"

// SlotSource identifies which data source produced the final slot list
type SlotSource string

const (
	// SourceServer authoritative resource-aware availability computed server-side
	SourceServer SlotSource = "server"
	// SourceHours slots derived from the establishment's opening hours
	SourceHours SlotSource = "hours"
	// SourceLegacy slots taken from the legacy per-date reservation table
	SourceLegacy SlotSource = "legacy"
)

// SlotOption represents a single bookable start time offered to the client
type SlotOption struct {
	StartTime  types.TimeString
	Selectable bool // false когда слот показан, но недоступен по данным сервера
}

// SlotSegment represents a named display group of slots (Morning/Afternoon, Midi/Soir)
type SlotSegment struct {
	Label string // пустая строка для единственного безымянного сегмента
	Slots []types.TimeString
}
