package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	storage "github.com/resago/booking-service/internal/infra/storage/reservation"
	"github.com/resago/booking-service/internal/integrations/availability"
	"github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
	"github.com/resago/booking-service/pkg/ptr"
	"github.com/resago/booking-service/pkg/types"
)

type fakeReservationRepo struct {
	reservation *domain.Reservation
	existing    []*domain.Reservation
	legacy      map[string][]slotengine.LegacyEntry
	updated     *domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.reservation == nil || f.reservation.ID != id {
		return nil, storage.ErrReservationNotFound
	}
	clone := *f.reservation
	return &clone, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	f.updated = res
	return nil
}

func (f *fakeReservationRepo) GetByEtablissementWithFilter(_ context.Context, _ domain.EtablissementReservationsFilter) ([]*domain.Reservation, error) {
	return f.existing, nil
}

func (f *fakeReservationRepo) GetLegacySlots(_ context.Context, _ int64, _, _ time.Time) (map[string][]slotengine.LegacyEntry, error) {
	return f.legacy, nil
}

type fakeConfigRepo struct{}

func (fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.SlotsConfig, error) {
	return nil, configRepo.ErrConfigNotFound
}

type fakeCatalogClient struct {
	etablissement *catalogservice.Etablissement
	prestation    *catalogservice.Prestation
}

func (f *fakeCatalogClient) GetEtablissement(_ context.Context, _ int64) (*catalogservice.Etablissement, error) {
	if f.etablissement == nil {
		return nil, catalogservice.ErrEtablissementNotFound
	}
	return f.etablissement, nil
}

func (f *fakeCatalogClient) GetPrestation(_ context.Context, _, _ int64) (*catalogservice.Prestation, error) {
	if f.prestation == nil {
		return nil, catalogservice.ErrPrestationNotFound
	}
	return f.prestation, nil
}

type fakeAvailabilityClient struct {
	result *availability.SlotsResult
}

func (f *fakeAvailabilityClient) FetchPrestationSlotsWithGracefulDegradation(_ context.Context, _, _ int64, _ string, _ int) (*availability.SlotsResult, error) {
	return f.result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func spa() *catalogservice.Etablissement {
	return &catalogservice.Etablissement{
		ID:           2,
		Nom:          "Spa Lumiere",
		BusinessType: "SPA",
		OpeningHours: []slotengine.RawRow{
			{"day": "MONDAY", "morningOpen": "10:00", "morningClose": "18:00"},
		},
	}
}

func spaReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              10,
		ClientID:        42,
		EtablissementID: 2,
		PrestationID:    ptr.Ptr(int64(7)),
		ReservationDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		Status:          domain.StatusConfirmed,
		PrestationName:  ptr.Ptr("Massage suedois"),
	}
}

func newTestUseCase(repo *fakeReservationRepo, catalog *fakeCatalogClient, avail *fakeAvailabilityClient) *UseCase {
	uc := NewUseCase(repo, fakeConfigRepo{}, catalog, avail, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_MovesReservationToNewTime(t *testing.T) {
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{etablissement: spa(), prestation: &catalogservice.Prestation{ID: 7, Nom: "Massage suedois"}},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"15:00", "16:00"}}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("15:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), resp.StartTime)
	require.NotNil(t, repo.updated)
	assert.Equal(t, types.TimeString("15:00"), repo.updated.StartTime)
}

func TestExecute_KeepingOwnTimeAlwaysAllowed(t *testing.T) {
	// Серверный расчет больше не предлагает 14:00, но резервация уже стоит
	// на этом времени: сохранение собственного слота не отклоняется
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{etablissement: spa(), prestation: &catalogservice.Prestation{ID: 7, Nom: "Massage suedois"}},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"15:00"}}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:00"),
		PartySize:     ptr.Ptr(2),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	require.NotNil(t, resp.PartySize)
	assert.Equal(t, 2, *resp.PartySize)
}

func TestExecute_OldTimeNotCarriedToAnotherDate(t *testing.T) {
	// При переносе на другую дату прежнее время не сохраняется: 14:00
	// отсутствует в серверном списке вторника и отклоняется
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{etablissement: spa(), prestation: &catalogservice.Prestation{ID: 7, Nom: "Massage suedois"}},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"15:00"}}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:00"),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ChangesPrestation(t *testing.T) {
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{etablissement: spa(), prestation: &catalogservice.Prestation{ID: 8, Nom: "Hammam"}},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"15:00"}}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("15:00"),
		PrestationID:  ptr.Ptr(int64(8)),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.PrestationName)
	assert.Equal(t, "Hammam", *resp.PrestationName)
	require.NotNil(t, resp.PrestationID)
	assert.Equal(t, int64(8), *resp.PrestationID)
}

func TestExecute_AccessControl(t *testing.T) {
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: spa()}, &fakeAvailabilityClient{})

	t.Run("foreign reservation", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			ClientID:      99,
			Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			StartTime:     types.TimeString("15:00"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reservation not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 404,
			ClientID:      42,
			Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			StartTime:     types.TimeString("15:00"),
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestExecute_CancelledReservationNotEditable(t *testing.T) {
	cancelled := spaReservation()
	cancelled.Status = domain.StatusCancelledByClient

	repo := &fakeReservationRepo{
		reservation: cancelled,
		legacy:      map[string][]slotengine.LegacyEntry{},
	}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: spa()}, &fakeAvailabilityClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("15:00"),
	})

	assert.ErrorIs(t, err, ErrReservationNotEditable)
}

func TestExecute_DuplicateAtTargetTime(t *testing.T) {
	repo := &fakeReservationRepo{
		reservation: spaReservation(),
		legacy:      map[string][]slotengine.LegacyEntry{},
		existing: []*domain.Reservation{
			{
				ID:              11,
				ClientID:        42,
				EtablissementID: 2,
				StartTime:       types.TimeString("15:00"),
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{etablissement: spa(), prestation: &catalogservice.Prestation{ID: 7, Nom: "Massage suedois"}},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"15:00"}}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		ClientID:      42,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("15:00"),
	})

	assert.ErrorIs(t, err, ErrDuplicateReservation)
}
