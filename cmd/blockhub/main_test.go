package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/config"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/server"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REGISTRY_SOURCE_DIR", "")
	t.Setenv("PUBLISH_S3_BUCKET", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for p, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

const manifest = `
categories:
  - name: hero
    title: Hero
blocks:
  - name: hero-01
    title: Hero 01
    categories: [hero]
    image: /previews/hero-01.png
    files:
      - path: registry/blocks/hero-01/page.tsx
`

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Blockhub dev")
	assert.Contains(t, out, "commit: none")
}

func TestServeDevSwitchesLogger(t *testing.T) {
	t.Setenv("LOG_DEV", "false")
	a := &app{flags: &rootFlags{}}
	require.NoError(t, a.init())
	require.False(t, a.logger.Development())

	cfg := a.applyServeOptions(&serveOptions{port: "9100", dev: true})
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.True(t, cfg.Logging.Development)
	assert.True(t, a.logger.Development())
}

func TestBuildToDirectory(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "build", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Published 10 items")

	data, err := os.ReadFile(filepath.Join(dir, "r", "hero-01.json"))
	require.NoError(t, err)
	var item types.RegistryItem
	require.NoError(t, sonic.Unmarshal(data, &item))
	assert.Equal(t, "hero-01", item.Name)
	require.NotEmpty(t, item.Files)
	assert.NotEmpty(t, item.Files[0].Content)

	data, err = os.ReadFile(filepath.Join(dir, "r", "registry.json"))
	require.NoError(t, err)
	var index types.RegistryIndex
	require.NoError(t, sonic.Unmarshal(data, &index))
	assert.Len(t, index.Items, 10)
}

func TestBuildRequiresTarget(t *testing.T) {
	_, err := execute(t, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out or --s3-bucket")
}

func TestCheck(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"blocks.yaml":                      manifest,
			"registry/blocks/hero-01/page.tsx": "page",
			"previews/hero-01.html":            `<section class="pv-section">hero</section>`,
			"public/previews/hero-01.png":      "png",
		})
		out, err := execute(t, "check", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "1 blocks, 1 files scanned: 0 errors, 0 warnings")
	})

	t.Run("missing file", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"blocks.yaml":                        manifest,
			"registry/blocks/hero-01/unused.tsx": "unused",
			"public/previews/hero-01.png":        "png",
		})
		out, err := execute(t, "check", "--dir", dir)
		require.Error(t, err)
		assert.Contains(t, out, "missing file: registry/blocks/hero-01/page.tsx")
		assert.Contains(t, out, "unreferenced file: registry/blocks/hero-01/unused.tsx")
	})

	t.Run("strict", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"blocks.yaml":                      manifest,
			"registry/blocks/hero-01/page.tsx": "page",
			"public/previews/hero-01.png":      "png",
		})
		_, err := execute(t, "check", "--dir", dir)
		require.NoError(t, err)

		_, err = execute(t, "check", "--dir", dir, "--strict")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warnings")
	})

	t.Run("no dir", func(t *testing.T) {
		_, err := execute(t, "check")
		require.Error(t, err)
	})
}

func TestAdd(t *testing.T) {
	srv, err := server.NewServer(config.Default(), logging.NewNop())
	require.NoError(t, err)
	registry := httptest.NewServer(srv.Handler())
	defer registry.Close()

	project := t.TempDir()

	out, err := execute(t, "add", "hero-01", "--registry", registry.URL, "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Installed hero-01")
	assert.Contains(t, out, "Not served by")
	assert.Contains(t, out, "lucide-react")

	page, err := os.ReadFile(filepath.Join(project, "app", "page.tsx"))
	require.NoError(t, err)
	assert.NotEmpty(t, page)

	_, err = execute(t, "add", "hero-01", "--registry", registry.URL, "--dir", project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	_, err = execute(t, "add", "hero-01", "--registry", registry.URL, "--dir", project, "--overwrite")
	require.NoError(t, err)
}

func TestAddUnknownBlock(t *testing.T) {
	srv, err := server.NewServer(config.Default(), logging.NewNop())
	require.NoError(t, err)
	registry := httptest.NewServer(srv.Handler())
	defer registry.Close()

	_, err = execute(t, "add", "nope-01", "--registry", registry.URL, "--dir", t.TempDir())
	require.Error(t, err)
}

func TestAddList(t *testing.T) {
	srv, err := server.NewServer(config.Default(), logging.NewNop())
	require.NoError(t, err)
	registry := httptest.NewServer(srv.Handler())
	defer registry.Close()

	out, err := execute(t, "add", "--list", "--registry", registry.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "hero-01")
	assert.Contains(t, out, "pricing-01")
	assert.Contains(t, out, "10 blocks in "+registry.URL)

	_, err = execute(t, "add", "--list", "hero-01", "--registry", registry.URL)
	require.Error(t, err)
}

func TestAddRequiresName(t *testing.T) {
	_, err := execute(t, "add")
	require.Error(t, err)
}
