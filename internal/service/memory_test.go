package service

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/repository/inmem"
)

type fakeStorage struct {
	saved   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (f *fakeStorage) Save(path string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.saved[path] = data
	return nil
}

func (f *fakeStorage) Delete(path string) error {
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://files.test/" + path
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func makePhotoUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["photo"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func TestUploadStoresObjectAndRow(t *testing.T) {
	store := inmem.New()
	files := newFakeStorage()
	memories := NewMemoryService(store.Memories(), files)

	file, header := makePhotoUpload(t, "summit.png", pngBytes)
	memory, err := memories.Upload("user-1", nil, "made it to the top", []string{"hiking"}, file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(memory.StoragePath, "memories/user-1/"))
	assert.True(t, strings.HasSuffix(memory.StoragePath, ".png"))
	assert.Equal(t, "https://files.test/"+memory.StoragePath, memory.PhotoURL)
	assert.Equal(t, pngBytes, files.saved[memory.StoragePath])

	listed, err := memories.List("user-1", nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "made it to the top", listed[0].Caption)
	assert.Equal(t, []string{"hiking"}, []string(listed[0].Tags))
}

func TestUploadRejectsNonImage(t *testing.T) {
	store := inmem.New()
	files := newFakeStorage()
	memories := NewMemoryService(store.Memories(), files)

	file, header := makePhotoUpload(t, "notes.png", []byte("plain text pretending"))
	_, err := memories.Upload("user-1", nil, "", nil, file, header)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Empty(t, files.saved)
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	store := inmem.New()
	memories := NewMemoryService(store.Memories(), nil)

	file, header := makePhotoUpload(t, "summit.png", pngBytes)
	_, err := memories.Upload("user-1", nil, "", nil, file, header)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestDeleteMemoryChecksOwnership(t *testing.T) {
	store := inmem.New()
	files := newFakeStorage()
	memories := NewMemoryService(store.Memories(), files)

	file, header := makePhotoUpload(t, "summit.png", pngBytes)
	memory, err := memories.Upload("user-1", nil, "", nil, file, header)
	require.NoError(t, err)

	// someone else's delete looks like a miss
	err = memories.Delete("user-2", memory.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = memories.Delete("user-1", memory.ID)
	require.NoError(t, err)
	assert.Contains(t, files.deleted, memory.StoragePath)

	err = memories.Delete("user-1", memory.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListFiltersByGoal(t *testing.T) {
	store := inmem.New()
	files := newFakeStorage()
	memories := NewMemoryService(store.Memories(), files)

	goalID := "goal-1"
	file, header := makePhotoUpload(t, "a.png", pngBytes)
	_, err := memories.Upload("user-1", &goalID, "", nil, file, header)
	require.NoError(t, err)

	file, header = makePhotoUpload(t, "b.png", pngBytes)
	_, err = memories.Upload("user-1", nil, "", nil, file, header)
	require.NoError(t, err)

	all, err := memories.List("user-1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := memories.List("user-1", &goalID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.NotNil(t, filtered[0].GoalID)
	assert.Equal(t, goalID, *filtered[0].GoalID)
}
