package fsbridge

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBillyFilesystem(t *testing.T) {
	t.Run("accepts billy-backed filesystem", func(t *testing.T) {
		memFS := fsb.NewInMemoryFS()

		billyFS, err := ToBillyFilesystem(memFS)
		require.NoError(t, err)
		assert.NotNil(t, billyFS)
	})

	t.Run("rejects other implementations", func(t *testing.T) {
		billyFS, err := ToBillyFilesystem(nil)
		require.Error(t, err)
		assert.Nil(t, billyFS)
		assert.Contains(t, err.Error(), "billy-backed FS")
	})
}

func TestNewStorage(t *testing.T) {
	tests := []struct {
		name      string
		cacheSize int
	}{
		{name: "explicit cache size", cacheSize: 500},
		{name: "zero falls back to default", cacheSize: 0},
		{name: "negative falls back to default", cacheSize: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewStorage(memfs.New(), tt.cacheSize)
			require.NotNil(t, storage)
		})
	}
}
