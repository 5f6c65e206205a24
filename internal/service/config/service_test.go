package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resago/booking-service/internal/domain"
	configRepo "github.com/resago/booking-service/internal/infra/storage/config"
	"github.com/resago/booking-service/internal/integrations/catalogservice"
	"github.com/resago/booking-service/internal/service/config/models"
	"github.com/resago/booking-service/pkg/ptr"
)

type fakeConfigRepo struct {
	configs  []*domain.SlotsConfig
	resolved *domain.SlotsConfig

	upserted *domain.SlotsConfig
	deleted  bool
}

func (f *fakeConfigRepo) GetByEtablissement(_ context.Context, _ int64) ([]*domain.SlotsConfig, error) {
	return f.configs, nil
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.SlotsConfig, error) {
	if f.resolved == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.resolved, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, cfg *domain.SlotsConfig) error {
	cfg.ID = 100
	cfg.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cfg.UpdatedAt = cfg.CreatedAt
	f.upserted = cfg
	return nil
}

func (f *fakeConfigRepo) Delete(_ context.Context, _ int64, _ *int64) error {
	if f.resolved == nil && len(f.configs) == 0 {
		return configRepo.ErrConfigNotFound
	}
	f.deleted = true
	return nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func restaurant() *catalogservice.Etablissement {
	return &catalogservice.Etablissement{ID: 1, Nom: "Le Jardin", BusinessType: "RESTAURANT"}
}

func TestGetConfig_Resolved(t *testing.T) {
	repo := &fakeConfigRepo{resolved: &domain.SlotsConfig{
		ID:              5,
		EtablissementID: 1,
		PrestationID:    ptr.Ptr(int64(7)),
		StepMinutes:     30,
		SegmentMode:     domain.SegmentModeBlocks,
	}}
	svc := NewService(repo, &fakeCatalogClient{etablissement: restaurant()}, nopLogger{})

	resp, err := svc.GetConfig(context.Background(), &models.GetConfigRequest{
		EtablissementID: 1,
		PrestationID:    ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, 30, resp.StepMinutes)
	assert.Equal(t, "blocks", resp.SegmentMode)
}

func TestGetConfig_DefaultsByEtablissementType(t *testing.T) {
	// Без сохраненной конфигурации ресторан получает разбиение Midi/Soir,
	// остальные типы - разбиение по блокам
	tests := []struct {
		name         string
		businessType string
		wantMode     string
	}{
		{name: "restaurant", businessType: "RESTAURANT", wantMode: "midi_soir"},
		{name: "spa", businessType: "SPA", wantMode: "blocks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			etab := restaurant()
			etab.BusinessType = tt.businessType
			svc := NewService(&fakeConfigRepo{}, &fakeCatalogClient{etablissement: etab}, nopLogger{})

			resp, err := svc.GetConfig(context.Background(), &models.GetConfigRequest{EtablissementID: 1})
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultStepMinutes, resp.StepMinutes)
			assert.Equal(t, tt.wantMode, resp.SegmentMode)
		})
	}
}

func TestGetConfig_EtablissementNotFound(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, &fakeCatalogClient{}, nopLogger{})

	_, err := svc.GetConfig(context.Background(), &models.GetConfigRequest{EtablissementID: 404})
	assert.ErrorIs(t, err, ErrEtablissementNotFound)
}

func TestGetAllByEtablissement(t *testing.T) {
	repo := &fakeConfigRepo{configs: []*domain.SlotsConfig{
		{ID: 1, EtablissementID: 1, StepMinutes: 15, SegmentMode: domain.SegmentModeMidiSoir},
		{ID: 2, EtablissementID: 1, PrestationID: ptr.Ptr(int64(7)), StepMinutes: 30, SegmentMode: domain.SegmentModeBlocks},
	}}
	svc := NewService(repo, &fakeCatalogClient{etablissement: restaurant()}, nopLogger{})

	resp, err := svc.GetAllByEtablissement(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Configs, 2)
	assert.Nil(t, resp.Configs[0].PrestationID)
	require.NotNil(t, resp.Configs[1].PrestationID)
	assert.Equal(t, int64(7), *resp.Configs[1].PrestationID)
}

func TestUpsert(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeCatalogClient{
		etablissement: restaurant(),
		prestation:    &catalogservice.Prestation{ID: 7, EtablissementID: 1, Nom: "Massage suedois"},
	}, nopLogger{})

	resp, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		EtablissementID: 1,
		PrestationID:    ptr.Ptr(int64(7)),
		StepMinutes:     30,
		SegmentMode:     "blocks",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 30, repo.upserted.StepMinutes)
	assert.Equal(t, domain.SegmentModeBlocks, repo.upserted.SegmentMode)
}

func TestUpsert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalogClient
		req     *models.UpsertConfigRequest
		wantErr error
	}{
		{
			name:    "step too small",
			catalog: &fakeCatalogClient{etablissement: restaurant()},
			req:     &models.UpsertConfigRequest{EtablissementID: 1, StepMinutes: 1, SegmentMode: "blocks"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown segment mode",
			catalog: &fakeCatalogClient{etablissement: restaurant()},
			req:     &models.UpsertConfigRequest{EtablissementID: 1, StepMinutes: 15, SegmentMode: "matin_soir"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "etablissement missing",
			catalog: &fakeCatalogClient{},
			req:     &models.UpsertConfigRequest{EtablissementID: 404, StepMinutes: 15, SegmentMode: "blocks"},
			wantErr: ErrEtablissementNotFound,
		},
		{
			name:    "prestation missing",
			catalog: &fakeCatalogClient{etablissement: restaurant()},
			req: &models.UpsertConfigRequest{
				EtablissementID: 1,
				PrestationID:    ptr.Ptr(int64(404)),
				StepMinutes:     15,
				SegmentMode:     "blocks",
			},
			wantErr: ErrPrestationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeConfigRepo{}, tt.catalog, nopLogger{})
			_, err := svc.Upsert(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDelete(t *testing.T) {
	repo := &fakeConfigRepo{resolved: &domain.SlotsConfig{ID: 5, EtablissementID: 1}}
	svc := NewService(repo, &fakeCatalogClient{etablissement: restaurant()}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1, nil))
	assert.True(t, repo.deleted)

	err := NewService(&fakeConfigRepo{}, &fakeCatalogClient{etablissement: restaurant()}, nopLogger{}).
		Delete(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
