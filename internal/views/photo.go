package views

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"rhystmorgan/clientDesk/internal/utils"
)

const maxPhotoBytes = 5 << 20

var errNotImage = errors.New("arquivo não é uma imagem")

// isLocalFile reports whether ref names an existing regular file. A "~/"
// prefix is expanded.
func isLocalFile(ref string) (string, bool) {
	path := expandHome(ref)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return path, false
	}
	return path, true
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// loadPhotoFile reads an image and encodes it as a data URL, the form the
// backend stores photos in.
func loadPhotoFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxPhotoBytes {
		return "", fmt.Errorf("foto maior que %s", utils.FormatBytes(maxPhotoBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w (%s)", errNotImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// parseDataURL returns the media type and decoded payload size of a data
// URL without decoding it.
func parseDataURL(ref string) (mime string, size int64, ok bool) {
	rest, found := strings.CutPrefix(ref, "data:")
	if !found {
		return "", 0, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", 0, false
	}

	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if mime == "" {
		mime = "text/plain"
	}
	if !isBase64 {
		return mime, int64(len(payload)), true
	}

	padding := len(payload) - len(strings.TrimRight(payload, "="))
	return mime, int64(len(payload)/4*3 - padding), true
}

// photoSummary is the one-line description of a stored photo shown in
// the form.
func photoSummary(ref string) string {
	if ref == "" {
		return ""
	}
	if mime, size, ok := parseDataURL(ref); ok {
		return fmt.Sprintf("%s, %s", mime, utils.FormatBytes(size))
	}
	return utils.TruncateString(ref, 60)
}
