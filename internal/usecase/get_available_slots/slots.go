package get_available_slots

import (
	"github.com/resago/booking-service/internal/domain"
	"github.com/resago/booking-service/internal/slotengine"
	"github.com/resago/booking-service/pkg/types"
)

// engineSegmentMode переводит режим сегментации из конфигурации в режим движка
func engineSegmentMode(mode domain.SegmentModeName) slotengine.SegmentMode {
	if mode == domain.SegmentModeMidiSoir {
		return slotengine.SegmentMidiSoir
	}
	return slotengine.SegmentByBlocks
}

// continuityFor выбирает режим непрерывности по типу заведения:
// ресторанный flow всегда доверяет свежему списку, остальные сохраняют
// время редактируемой резервации.
func continuityFor(t domain.EtablissementType) slotengine.ContinuityMode {
	if t.IsRestaurant() {
		return slotengine.ContinuityTrustSource
	}
	return slotengine.ContinuityPreserveSelection
}

// domainSource переводит источник движка в доменное представление
func domainSource(src slotengine.Source) domain.SlotSource {
	switch src {
	case slotengine.SourceServer:
		return domain.SourceServer
	case slotengine.SourceLegacy:
		return domain.SourceLegacy
	default:
		return domain.SourceHours
	}
}

// toSlotOptions конвертирует слоты движка в доменные опции
func toSlotOptions(slots []slotengine.Slot) []domain.SlotOption {
	options := make([]domain.SlotOption, 0, len(slots))
	for _, s := range slots {
		options = append(options, domain.SlotOption{
			StartTime:  types.TimeString(s.Time),
			Selectable: s.Selectable,
		})
	}
	return options
}

// toSegments конвертирует сегменты движка в доменные группы
func toSegments(segments []slotengine.Segment) []domain.SlotSegment {
	result := make([]domain.SlotSegment, 0, len(segments))
	for _, seg := range segments {
		slots := make([]types.TimeString, 0, len(seg.Slots))
		for _, t := range seg.Slots {
			slots = append(slots, types.TimeString(t))
		}
		result = append(result, domain.SlotSegment{
			Label: seg.Label,
			Slots: slots,
		})
	}
	return result
}
