package services_test

import (
	"bytes"
	"mediacatalog/internal/config"
	"mediacatalog/internal/repository/jsonfile"
	"mediacatalog/internal/services"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)
)

// fileHeader builds a real multipart file header the way net/http would.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

type testEnv struct {
	Repo      *jsonfile.JSONFileRepository
	Storage   *services.StorageService
	UploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	repo, err := jsonfile.NewRepository(filepath.Join(dir, "db.json"))
	require.NoError(t, err)

	cfg := &config.Config{Storage: config.StorageConfig{UploadDir: filepath.Join(dir, "uploads")}}
	require.NoError(t, cfg.ParseAndValidate())

	return &testEnv{Repo: repo, Storage: services.NewStorageService(cfg), UploadDir: cfg.Storage.UploadDir}
}
