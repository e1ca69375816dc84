package domain

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProviderRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name          string
		providerNames []string
		getByName     string
		wantGetResult bool
	}{
		{name: "empty registry", providerNames: nil, getByName: "fixture", wantGetResult: false},
		{name: "single provider", providerNames: []string{"fixture"}, getByName: "fixture", wantGetResult: true},
		{name: "multiple providers", providerNames: []string{"skyways", "fixture", "aerolink"}, getByName: "skyways", wantGetResult: true},
		{name: "get non-existent provider", providerNames: []string{"fixture"}, getByName: "nonexistent", wantGetResult: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewProviderRegistry()

			for _, name := range tt.providerNames {
				mock := NewMockFlightProvider(ctrl)
				mock.EXPECT().Name().Return(name).AnyTimes()
				registry.Register(mock)
			}

			assert.Len(t, registry.GetAll(), len(tt.providerNames))

			names := registry.Names()
			assert.True(t, sort.StringsAreSorted(names))
			for _, want := range tt.providerNames {
				assert.Contains(t, names, want)
			}

			provider := registry.Get(tt.getByName)
			if tt.wantGetResult {
				require.NotNil(t, provider)
				assert.Equal(t, tt.getByName, provider.Name())
			} else {
				assert.Nil(t, provider)
			}
		})
	}
}

func TestMockFlightProvider_Search(t *testing.T) {
	ctrl := gomock.NewController(t)

	query := FlightQuery{Origin: "JFK", Destination: "LAX", DepartureDate: "2025-06-01", Adults: 1}
	want := []Flight{{ID: "f1", Provider: "fixture"}}

	mock := NewMockFlightProvider(ctrl)
	mock.EXPECT().Search(gomock.Any(), query).Return(want, nil).Times(1)

	got, err := mock.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
