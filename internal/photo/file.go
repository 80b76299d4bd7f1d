package photo

import (
	"bytes"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// File is an image candidate with a declared media type and byte size.
type File interface {
	Type() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type memFile struct {
	mediaType string
	data      []byte
}

// FromBytes wraps in-memory image data under the given media type.
func FromBytes(mediaType string, data []byte) File {
	return &memFile{mediaType: mediaType, data: data}
}

func (f *memFile) Type() string { return f.mediaType }
func (f *memFile) Size() int64  { return int64(len(f.data)) }

func (f *memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type diskFile struct {
	path      string
	mediaType string
	size      int64
}

// FromPath stats a file on disk and sniffs its media type from content.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}

	return &diskFile{path: path, mediaType: mt.String(), size: info.Size()}, nil
}

func (f *diskFile) Type() string { return f.mediaType }
func (f *diskFile) Size() int64  { return f.size }

func (f *diskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
