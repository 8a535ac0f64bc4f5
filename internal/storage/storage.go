package storage

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedMedia = stderrors.New("unsupported media type")

// ImageStore persiste imágenes subidas y devuelve la ruta pública resultante.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectName genera un nombre único conservando el nombre original saneado.
func objectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "upload"
	}
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	return uuid.NewString() + "-" + base
}

// sniffImage detecta el content type y devuelve un reader que conserva los bytes leídos.
func sniffImage(r io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !stderrors.Is(err, io.EOF) && !stderrors.Is(err, bufio.ErrBufferFull) {
		return "", nil, err
	}
	if len(head) == 0 {
		return "", nil, ErrUnsupportedMedia
	}
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, ErrUnsupportedMedia
	}
	return contentType, br, nil
}
