package domain

import "time"

// SegmentModeName название режима сегментации финального списка слотов
type SegmentModeName string

const (
	// SegmentModeBlocks сегментация по блокам расписания (Morning/Afternoon)
	SegmentModeBlocks SegmentModeName = "blocks"
	// SegmentModeMidiSoir плоская сегментация по фиксированной границе 18:00 (Midi/Soir)
	SegmentModeMidiSoir SegmentModeName = "midi_soir"
)

// IsValid reports whether the mode is one of the supported segmentation modes
func (m SegmentModeName) IsValid() bool {
	return m == SegmentModeBlocks || m == SegmentModeMidiSoir
}

// DefaultSegmentModeFor возвращает режим сегментации по умолчанию для типа заведения.
// Рестораны показывают слоты группами Midi/Soir, остальные - по блокам расписания.
func DefaultSegmentModeFor(t EtablissementType) SegmentModeName {
	if t.IsRestaurant() {
		return SegmentModeMidiSoir
	}
	return SegmentModeBlocks
}

// SlotsConfig represents slot display configuration for an establishment.
// Supports hierarchical configuration:
// 1. Prestation-specific (etablissement_id, prestation_id)
// 2. Establishment-wide (etablissement_id, NULL)
type SlotsConfig struct {
	ID              int64
	EtablissementID int64
	PrestationID    *int64 // NULL = config for all prestations
	StepMinutes     int
	SegmentMode     SegmentModeName
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsEtablissementWide returns true if this config applies to every prestation
func (c *SlotsConfig) IsEtablissementWide() bool {
	return c.PrestationID == nil
}

// IsPrestationSpecific returns true if this config is for a single prestation
func (c *SlotsConfig) IsPrestationSpecific() bool {
	return c.PrestationID != nil
}
