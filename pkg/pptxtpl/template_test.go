package pptxtpl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzhzhao/pptxtpl/internal/testdeck"
)

func TestOpenErrors(t *testing.T) {
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 504)...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not a zip", []byte("hello, world"), ErrInvalidFormat},
		{"compound file", ole, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenReader(bytes.NewReader(tt.data), int64(len(tt.data)), DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Errorf("OpenReader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pptx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpenBadLabelFormat(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Text("title", "x")
	r, size := b.Reader()
	_, err := OpenReader(r, size, Options{LabelFormat: "<<>>"})
	assert.Error(t, err)
}

func TestSaveAndOpen(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Text("title", "Hello {name}")
	b.Slide().Text("body", "second")
	tpl := openDeck(t, b)
	assert.Equal(t, 2, tpl.SlideCount())

	require.NoError(t, tpl.Bind(0, map[string]any{"{name}": "world"}))

	path := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, tpl.Save(path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	back, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "out.pptx", back.Name())
	assert.Equal(t, 2, back.SlideCount())
	assert.Equal(t, []string{"Hello world"}, texts(t, back, 0))
	assert.Equal(t, []string{"second"}, texts(t, back, 1))
}

func TestSlideIndexOutOfRange(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Text("title", "x")
	tpl := openDeck(t, b)

	err := tpl.Bind(3, nil)
	var se *SlideError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Slide)
	assert.Equal(t, "bind", se.Op)
	assert.ErrorIs(t, err, ErrSlideIndex)
}
