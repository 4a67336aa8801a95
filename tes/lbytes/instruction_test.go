package lbytes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleHeader struct {
	Version   uint32    `json:"version"`
	Name      string    `json:"name"`
	Level     int32     `json:"level"`
	Progress  float32   `json:"progress"`
	SavedAt   time.Time `json:"saved_at"`
	Dimension uint16    `json:"dimension"`
}

func TestExecuteInstructions(t *testing.T) {
	savedAt := time.Date(2016, 1, 1, 12, 30, 0, 0, time.UTC)
	reader := NewBytesReader(Concat(
		EncodeUint32(9),
		EncodeWString("Prisoner"),
		EncodeValueInt(-3),
		[]byte{0xAA, 0xBB},
		EncodeFloat32(0.25),
		EncodeFiletime(savedAt),
		EncodeUint16(320),
	))

	header, err := ExecuteInstructions[sampleHeader]([]Instruction{
		{Key: "version", ReadFunction: CreateUint32ReadFunction(reader)},
		{Key: "name", ReadFunction: CreateWStringReadFunction(reader)},
		{Key: "level", ReadFunction: CreateIntReadFunction(reader)},
		{Key: "", ReadFunction: CreateNBytesReadFunction(reader, 2)},
		{Key: "progress", ReadFunction: CreateFloat32ReadFunction(reader)},
		{Key: "saved_at", ReadFunction: CreateFiletimeReadFunction(reader)},
		{Key: "dimension", ReadFunction: CreateUint16ReadFunction(reader)},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(9), header.Version)
	assert.Equal(t, "Prisoner", header.Name)
	assert.Equal(t, int32(-3), header.Level)
	assert.Equal(t, float32(0.25), header.Progress)
	assert.True(t, savedAt.Equal(header.SavedAt))
	assert.Equal(t, uint16(320), header.Dimension)
	assert.NoError(t, reader.ExpectEnd("TestExecuteInstructions"))
}

func TestExecuteInstructions_ReadError(t *testing.T) {
	reader := NewBytesReader([]byte{1, 0})
	_, err := ExecuteInstructions[sampleHeader]([]Instruction{
		{Key: "version", ReadFunction: CreateUint32ReadFunction(reader)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `reading key "version"`)
}
