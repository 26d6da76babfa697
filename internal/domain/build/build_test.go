package build

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/content"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/storage"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(key, contentType).Error(0)
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewLoader(content.FS(), "", nil).Load()
	require.NoError(t, err)
	return c
}

func TestBuildWritesItemsAndIndex(t *testing.T) {
	c := loadCatalog(t)
	dir := t.TempDir()
	b := NewBuilder(c, code.NewReader(content.FS(), nil, nil), storage.NewLocalStore(dir), catalog.ProjectionOptions{RegistryName: "blockhub"}, nil)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, c.Len(), report.Items)
	assert.Empty(t, report.Empty)

	data, err := os.ReadFile(filepath.Join(dir, "r", "hero-01.json"))
	require.NoError(t, err)

	var item types.RegistryItem
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, "hero-01", item.Name)
	require.NotEmpty(t, item.Files)
	assert.NotEmpty(t, item.Files[0].Content)
	assert.NotContains(t, item.Files[1].Content, "@/registry/blocks/")
	assert.Contains(t, item.Files[1].Content, `"@/components/ui/button"`)

	data, err = os.ReadFile(filepath.Join(dir, "r", "registry.json"))
	require.NoError(t, err)
	var index types.RegistryIndex
	require.NoError(t, json.Unmarshal(data, &index))
	assert.Equal(t, "blockhub", index.Name)
	assert.Len(t, index.Items, c.Len())
}

func TestBuildStopsOnStoreError(t *testing.T) {
	c := loadCatalog(t)
	store := &mockStore{}
	store.On("Put", "r/hero-01.json", "application/json").Return(errors.New("disk full"))

	b := NewBuilder(c, code.NewReader(content.FS(), nil, nil), store, catalog.ProjectionOptions{}, nil)
	_, err := b.Build(context.Background())
	assert.ErrorContains(t, err, "disk full")
	store.AssertNumberOfCalls(t, "Put", 1)
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &mockStore{}
	b := NewBuilder(loadCatalog(t), code.NewReader(content.FS(), nil, nil), store, catalog.ProjectionOptions{}, nil)
	_, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestBuildReportsEmptyFiles(t *testing.T) {
	c, err := catalog.New(nil, []types.Block{{
		Name:  "ghost-01",
		Files: []types.File{{Path: "registry/blocks/ghost-01/missing.tsx"}},
	}})
	require.NoError(t, err)

	store := &mockStore{}
	store.On("Put", mock.Anything, "application/json").Return(nil)

	b := NewBuilder(c, code.NewReader(content.FS(), nil, nil), store, catalog.ProjectionOptions{}, nil)
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost-01:registry/default/blocks/ghost-01/missing.tsx"}, report.Empty)
	store.AssertNumberOfCalls(t, "Put", 2)
}
