package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeepdev/upkeep/internal/domain"
)

func TestCatalogOrder(t *testing.T) {
	names := domain.EcosystemNames()
	assert.Equal(t, []string{"rust", "python", "node"}, names)
}

func TestCatalogMarkers(t *testing.T) {
	tests := []struct {
		eco     domain.Ecosystem
		markers []string
	}{
		{domain.EcoRust, []string{"Cargo.toml"}},
		{domain.EcoPython, []string{"pyproject.toml"}},
		{domain.EcoNode, []string{"package.json"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.eco), func(t *testing.T) {
			spec, ok := domain.SpecFor(tt.eco)
			require.True(t, ok)
			assert.Equal(t, tt.markers, spec.Markers)
		})
	}
}

func TestParseEcosystem(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Ecosystem
		wantErr bool
	}{
		{name: "exact", input: "rust", want: domain.EcoRust},
		{name: "mixed case", input: "Python", want: domain.EcoPython},
		{name: "surrounding space", input: " node ", want: domain.EcoNode},
		{name: "unknown", input: "haskell", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseEcosystem(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnknownEcosystem)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecForUnknown(t *testing.T) {
	_, ok := domain.SpecFor(domain.Ecosystem("zig"))
	assert.False(t, ok)
}
