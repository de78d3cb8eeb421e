// Package storage guarda los adjuntos de las órdenes en disco.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/pkg/textnorm"
)

// Disk implementa ports.FileStorage sobre un afero.Fs. Las rutas son relativas a la raíz.
type Disk struct {
	fs afero.Fs
}

// NewDisk disco en root (se crea si no existe).
func NewDisk(root string) (*Disk, error) {
	base := afero.NewOsFs()
	if err := base.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &Disk{fs: afero.NewBasePathFs(base, root)}, nil
}

// NewDiskFs disco sobre un fs arbitrario (afero.NewMemMapFs en tests).
func NewDiskFs(fs afero.Fs) *Disk {
	return &Disk{fs: fs}
}

// Save escribe r en dir con un nombre único "{uuid}_{nombre saneado}".
func (d *Disk) Save(ctx context.Context, dir, name string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	dir, err := clean(dir)
	if err != nil {
		return "", 0, err
	}
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	p := path.Join(dir, uuid.New().String()+"_"+SanitizeName(name))
	f, err := d.fs.Create(p)
	if err != nil {
		return "", 0, fmt.Errorf("storage: crear %s: %w", p, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = d.fs.Remove(p)
		return "", 0, fmt.Errorf("storage: escribir %s: %w", p, err)
	}
	return p, n, nil
}

// Open abre un archivo guardado; domain.ErrNotFound si no existe.
func (d *Disk) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	p, err := clean(p)
	if err != nil {
		return nil, err
	}
	f, err := d.fs.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: abrir %s: %w", p, err)
	}
	return f, nil
}

// Delete borra un archivo; no falla si ya no existe.
func (d *Disk) Delete(ctx context.Context, p string) error {
	p, err := clean(p)
	if err != nil {
		return err
	}
	if err := d.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", p, err)
	}
	return nil
}

// DeleteDir borra el directorio y su contenido.
func (d *Disk) DeleteDir(ctx context.Context, dir string) error {
	dir, err := clean(dir)
	if err != nil {
		return err
	}
	if dir == "." {
		return fmt.Errorf("storage: no se puede borrar la raíz")
	}
	if err := d.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("storage: borrar %s: %w", dir, err)
	}
	return nil
}

// clean normaliza una ruta relativa y rechaza las que salen de la raíz.
func clean(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("storage: ruta inválida %q", p)
		}
	}
	c := strings.TrimPrefix(path.Clean("/"+p), "/")
	if c == "" {
		return ".", nil
	}
	return c, nil
}

// SanitizeName deja solo letras ASCII, dígitos, punto, guion y guion bajo.
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	out := slug(stem)
	if out == "" {
		out = "archivo"
	}
	if e := slug(strings.TrimPrefix(ext, ".")); e != "" {
		out += "." + strings.ToLower(e)
	}
	return out
}

func slug(s string) string {
	s = textnorm.StripAccents(s)
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('_')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

var _ ports.FileStorage = (*Disk)(nil)
