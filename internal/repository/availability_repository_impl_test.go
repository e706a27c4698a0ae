package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indisponibilites.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAvailabilityFile(t *testing.T) {
	first := uuid.MustParse("d0c70000-0000-4000-8000-000000000001")
	second := uuid.MustParse("d0c70000-0000-4000-8000-000000000002")
	path := writeDataset(t, `[
		{"doctorId": "`+first.String()+`", "workStart": "09:00", "workEnd": "12:00", "defaultSlotDuration": 60, "unavailabilityWindows": [{"start": "10:00", "end": "10:30"}]},
		{"doctorId": "`+second.String()+`", "workStart": "14:00", "workEnd": "18:00", "defaultSlotDuration": 30, "unavailabilityWindows": []}
	]`)

	repo, err := LoadAvailabilityFile(path)
	require.NoError(t, err)

	got, err := repo.FindByDoctorID(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "14:00", got.WorkStart)
	assert.Equal(t, 30, got.DefaultSlotDuration)

	t.Run("unknown doctor falls back to first entry", func(t *testing.T) {
		got, err := repo.FindByDoctorID(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, first, got.DoctorID)
		assert.Equal(t, []entity.UnavailabilityWindow{{Start: "10:00", End: "10:30"}}, got.Unavailability)
	})
}

func TestLoadAvailabilityFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed json":   `[{`,
		"malformed time":   `[{"doctorId": "d0c70000-0000-4000-8000-000000000001", "workStart": "9h", "workEnd": "12:00", "defaultSlotDuration": 30}]`,
		"empty range":      `[{"doctorId": "d0c70000-0000-4000-8000-000000000001", "workStart": "12:00", "workEnd": "12:00", "defaultSlotDuration": 30}]`,
		"zero duration":    `[{"doctorId": "d0c70000-0000-4000-8000-000000000001", "workStart": "09:00", "workEnd": "12:00", "defaultSlotDuration": 0}]`,
		"malformed window": `[{"doctorId": "d0c70000-0000-4000-8000-000000000001", "workStart": "09:00", "workEnd": "12:00", "defaultSlotDuration": 30, "unavailabilityWindows": [{"start": "x", "end": "10:00"}]}]`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAvailabilityFile(writeDataset(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadAvailabilityFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAvailabilityRepository_EmptyDataset(t *testing.T) {
	repo := NewAvailabilityRepository(nil)

	got, err := repo.FindByDoctorID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestShippedDatasetIsValid(t *testing.T) {
	_, err := LoadAvailabilityFile(filepath.Join("..", "..", "data", "indisponibilites.json"))
	assert.NoError(t, err)
}
