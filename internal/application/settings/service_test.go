package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/settings"
)

type memSettingsRepo struct {
	row *settings.CompanySettings
}

func (r *memSettingsRepo) Get(_ context.Context) (*settings.CompanySettings, error) {
	if r.row == nil {
		r.row = settings.DefaultSettings()
	}
	return r.row, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *settings.CompanySettings) error {
	r.row = s
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsServiceGetCreatesDefaults(t *testing.T) {
	svc := NewService(&memSettingsRepo{}, zap.NewNop())

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.PaperSizeA4, got.PaperSize)
	assert.True(t, got.ShowCompanyDetails)
	assert.False(t, got.DarkMode)
}

func TestSettingsServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &memSettingsRepo{}
	svc := NewService(repo, zap.NewNop())

	updated, err := svc.Update(ctx, settings.Patch{
		CompanyName: strPtr("Al Noor Trading"),
		PaperSize:   strPtr(settings.PaperSizeThermal),
		DarkMode:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Al Noor Trading", updated.CompanyName)
	assert.Equal(t, settings.PaperSizeThermal, updated.PaperSize)
	assert.True(t, updated.DarkMode)

	// Unpatched fields survive a second partial update
	updated, err = svc.Update(ctx, settings.Patch{TaxID: strPtr("310000000000003")})
	require.NoError(t, err)
	assert.Equal(t, "Al Noor Trading", updated.CompanyName)
	assert.Equal(t, "310000000000003", updated.TaxID)
}

func TestSettingsServiceUpdateRejectsBadPaperSize(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := NewService(repo, zap.NewNop())

	_, err := svc.Update(context.Background(), settings.Patch{PaperSize: strPtr("A5")})
	require.Error(t, err)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.PaperSizeA4, got.PaperSize)
}
