package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	"github.com/resago/booking-service/internal/integrations/availability"
	"github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/slotengine"
	"github.com/resago/booking-service/pkg/ptr"
	"github.com/resago/booking-service/pkg/types"
)

type fakeReservationRepo struct {
	legacy   map[string][]slotengine.LegacyEntry
	existing []*domain.Reservation
	created  *domain.Reservation
	nextID   int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
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

func restaurant() *catalogservice.Etablissement {
	return &catalogservice.Etablissement{
		ID:           1,
		Nom:          "Le Bistrot",
		BusinessType: "RESTAURANT",
		OpeningHours: []slotengine.RawRow{
			{
				"day":          "MONDAY",
				"morningOpen":  "12:00",
				"morningClose": "15:00",
				"eveningOpen":  "19:00",
				"eveningClose": "23:00",
			},
		},
	}
}

func newTestUseCase(repo *fakeReservationRepo, catalog *fakeCatalogClient, avail *fakeAvailabilityClient) *UseCase {
	uc := NewUseCase(repo, fakeConfigRepo{}, catalog, avail, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_CreatesRestaurantReservation(t *testing.T) {
	repo := &fakeReservationRepo{legacy: map[string][]slotengine.LegacyEntry{}}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: restaurant()}, &fakeAvailabilityClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("19:30"),
		PartySize:       ptr.Ptr(4),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, types.TimeString("19:30"), resp.StartTime)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(42), repo.created.ClientID)
	assert.Nil(t, repo.created.PrestationID)
}

func TestExecute_DenormalizesPrestationName(t *testing.T) {
	repo := &fakeReservationRepo{legacy: map[string][]slotengine.LegacyEntry{}}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{
			etablissement: restaurant(),
			prestation:    &catalogservice.Prestation{ID: 7, EtablissementID: 1, Nom: "Massage suedois"},
		},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"14:00", "14:30"}}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		PrestationID:    ptr.Ptr(int64(7)),
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.PrestationName)
	assert.Equal(t, "Massage suedois", *resp.PrestationName)
}

func TestExecute_SlotNotInList(t *testing.T) {
	repo := &fakeReservationRepo{legacy: map[string][]slotengine.LegacyEntry{}}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: restaurant()}, &fakeAvailabilityClient{})

	// 17:00 попадает в перерыв между блоками расписания
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("17:00"),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_SlotNotInServerResult(t *testing.T) {
	repo := &fakeReservationRepo{legacy: map[string][]slotengine.LegacyEntry{}}
	uc := newTestUseCase(repo,
		&fakeCatalogClient{
			etablissement: restaurant(),
			prestation:    &catalogservice.Prestation{ID: 7, EtablissementID: 1, Nom: "Massage"},
		},
		&fakeAvailabilityClient{result: &availability.SlotsResult{Slots: []string{"10:00"}}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		PrestationID:    ptr.Ptr(int64(7)),
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("11:00"),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DuplicateReservation(t *testing.T) {
	repo := &fakeReservationRepo{
		legacy: map[string][]slotengine.LegacyEntry{},
		existing: []*domain.Reservation{
			{
				ID:              5,
				ClientID:        42,
				EtablissementID: 1,
				StartTime:       types.TimeString("19:30"),
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: restaurant()}, &fakeAvailabilityClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("19:30"),
	})

	assert.ErrorIs(t, err, ErrDuplicateReservation)
}

func TestExecute_PastDate(t *testing.T) {
	repo := &fakeReservationRepo{legacy: map[string][]slotengine.LegacyEntry{}}
	uc := newTestUseCase(repo, &fakeCatalogClient{etablissement: restaurant()}, &fakeAvailabilityClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        42,
		EtablissementID: 1,
		Date:            time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("19:30"),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCatalogClient{}, &fakeAvailabilityClient{})

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero client", &Request{EtablissementID: 1, Date: date, StartTime: "19:30"}},
		{"zero etablissement", &Request{ClientID: 42, Date: date, StartTime: "19:30"}},
		{"bad time", &Request{ClientID: 42, EtablissementID: 1, Date: date, StartTime: "late"}},
		{"bad party size", &Request{ClientID: 42, EtablissementID: 1, Date: date, StartTime: "19:30", PartySize: ptr.Ptr(0)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
