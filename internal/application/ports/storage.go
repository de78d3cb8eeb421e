package ports

import (
	"context"
	"io"
)

// FileStorage disco de adjuntos. Las rutas devueltas son relativas a la raíz del disco.
type FileStorage interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (path string, size int64, err error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	DeleteDir(ctx context.Context, dir string) error
}
