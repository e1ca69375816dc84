package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		wantErr bool
	}{
		{
			name:    "valid RFC3339",
			dateStr: "2025-12-15T08:00:00Z",
			wantErr: false,
		},
		{
			name:    "valid RFC3339 with timezone",
			dateStr: "2030-03-14T08:00:00-05:00",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(t, tt.dateStr)
			assert.False(t, result.IsZero())
		})
	}
}

func TestMustParseDate(t *testing.T) {
	tests := []struct {
		name      string
		dateStr   string
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "valid date",
			dateStr:   "2025-12-15",
			wantYear:  2025,
			wantMonth: time.December,
			wantDay:   15,
		},
		{
			name:      "january date",
			dateStr:   "2025-01-01",
			wantYear:  2025,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:      "leap year date",
			dateStr:   "2024-02-29",
			wantYear:  2024,
			wantMonth: time.February,
			wantDay:   29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseDate(t, tt.dateStr)
			assert.Equal(t, tt.wantYear, result.Year())
			assert.Equal(t, tt.wantMonth, result.Month())
			assert.Equal(t, tt.wantDay, result.Day())
		})
	}
}

func TestPtr(t *testing.T) {
	t.Run("int value", func(t *testing.T) {
		intVal := Ptr(42)
		require.NotNil(t, intVal)
		assert.Equal(t, 42, *intVal)
	})

	t.Run("string value", func(t *testing.T) {
		strVal := Ptr("hello")
		require.NotNil(t, strVal)
		assert.Equal(t, "hello", *strVal)
	})

	t.Run("float64 value", func(t *testing.T) {
		floatVal := Ptr(3.14)
		require.NotNil(t, floatVal)
		assert.Equal(t, 3.14, *floatVal)
	})

	t.Run("bool value", func(t *testing.T) {
		boolVal := Ptr(true)
		require.NotNil(t, boolVal)
		assert.Equal(t, true, *boolVal)
	})
}

func TestDataPath(t *testing.T) {
	path := DataPath(t, "airports.yaml")
	assert.Equal(t, "airports.yaml", filepath.Base(path))
	assert.Equal(t, "data", filepath.Base(filepath.Dir(path)))
	assert.FileExists(t, path)
}

func TestLoadDataFile(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		shouldContain string
	}{
		{
			name:          "airport catalog",
			filename:      "airports.yaml",
			shouldContain: "metro: NYC",
		},
		{
			name:          "flight fixtures",
			filename:      "flights.json",
			shouldContain: "skyline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := LoadDataFile(t, tt.filename)
			assert.NotEmpty(t, data)
			assert.Contains(t, string(data), tt.shouldContain)
		})
	}
}
