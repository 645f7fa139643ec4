package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	// PreviewLimit is how much of a file the preview pane reads.
	PreviewLimit int64 = 64 * 1024

	sniffSize           = 4096
	nonPrintablePercent = 30
)

type bom int

const (
	bomNone bom = iota
	bomUTF8
	bomUTF16LE
	bomUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".bin": {}, ".bmp": {}, ".bz2": {}, ".class": {}, ".dll": {},
	".dylib": {}, ".exe": {}, ".gif": {}, ".gz": {}, ".ico": {}, ".iso": {},
	".jar": {}, ".jpeg": {}, ".jpg": {}, ".mkv": {}, ".mov": {}, ".mp3": {},
	".mp4": {}, ".o": {}, ".pdf": {}, ".png": {}, ".so": {}, ".tar": {},
	".tgz": {}, ".wasm": {}, ".webp": {}, ".xz": {}, ".zip": {},
}

// ReadPreview returns up to limit bytes of path decoded as text. ok is false
// for directories, unreadable files and content that looks binary.
func ReadPreview(path string, limit int64) (string, bool) {
	if limit <= 0 || hasBinaryExtension(path) {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = f.Close()
	}()

	if info, err := f.Stat(); err != nil || info.IsDir() {
		return "", false
	}

	head, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", false
	}
	if !LooksLikeText(head) {
		return "", false
	}
	return decodeText(head), true
}

// LooksLikeText sniffs the beginning of content for binary data.
func LooksLikeText(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}

	if detectBOM(sample) != bomNone {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	bad := 0
	for _, b := range sample {
		if !isTextByte(b) {
			bad++
		}
	}
	return bad*100/len(sample) < nonPrintablePercent
}

func hasBinaryExtension(path string) bool {
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == 0x1B:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	default:
		return b >= 0x80
	}
}

func detectBOM(sample []byte) bom {
	switch {
	case len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF:
		return bomUTF8
	case len(sample) >= 2 && sample[0] == 0xFF && sample[1] == 0xFE:
		return bomUTF16LE
	case len(sample) >= 2 && sample[0] == 0xFE && sample[1] == 0xFF:
		return bomUTF16BE
	}
	return bomNone
}

func decodeText(content []byte) string {
	switch detectBOM(content) {
	case bomUTF8:
		return string(content[3:])
	case bomUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case bomUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
