package validation

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
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

	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateFileAcceptsPNG(t *testing.T) {
	header := makeFileHeader(t, "photo.png", pngHeader)
	err := ValidateFile(header, ImageConstraints)
	assert.NoError(t, err)
}

func TestValidateFileAcceptsJPEG(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	header := makeFileHeader(t, "photo.jpg", jpeg)
	err := ValidateFile(header, ImageConstraints)
	assert.NoError(t, err)
}

func TestValidateFileDetectsTypeFromContent(t *testing.T) {
	// a text file renamed to .png is still rejected
	header := makeFileHeader(t, "photo.png", []byte("definitely not an image"))
	err := ValidateFile(header, ImageConstraints)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file type")
}

func TestValidateFileRejectsExtensionMismatch(t *testing.T) {
	header := makeFileHeader(t, "photo.gif", pngHeader)
	err := ValidateFile(header, ImageConstraints)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file extension")
}

func TestValidateFileRejectsOversize(t *testing.T) {
	header := makeFileHeader(t, "photo.png", pngHeader)
	header.Size = ImageConstraints.MaxSize + 1

	err := ValidateFile(header, ImageConstraints)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestValidateFileLeavesReaderAtStart(t *testing.T) {
	header := makeFileHeader(t, "photo.png", pngHeader)
	require.NoError(t, ValidateFile(header, ImageConstraints))

	file, err := header.Open()
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	content := make([]byte, len(pngHeader))
	_, err = file.Read(content)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, content)
}
