package platform

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/imgqueue/internal/queue"
)

// sniffLength is how much of a file http.DetectContentType inspects
const sniffLength = 512

var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
}

// DetectMIMEType types a file by its extension the way a browser file input
// does, sniffing the content only when the extension is unknown. A file named
// .png with broken content is still typed image/png.
func DetectMIMEType(name string, head []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if len(head) == 0 {
		return ""
	}
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil {
		return ""
	}
	return mediaType
}

// ReadImageFile reads r fully into a queue file named name
func ReadImageFile(name string, r io.Reader) (queue.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return queue.File{}, fmt.Errorf("read %s: %w", name, err)
	}
	return queue.File{
		Name: name,
		Type: DetectMIMEType(name, data),
		Data: data,
	}, nil
}

// LoadImageFile reads the file at path into a queue file. Type filtering is
// left to the queue.
func LoadImageFile(path string) (queue.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return queue.File{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadImageFile(filepath.Base(path), f)
}

// LoadImageFiles loads every path, skipping directories and unreadable
// files. The returned errors describe the skipped paths.
func LoadImageFiles(paths []string) ([]queue.File, []error) {
	var files []queue.File
	var errs []error
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			errs = append(errs, fmt.Errorf("%s: is a directory", p))
			continue
		}
		file, err := LoadImageFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, file)
	}
	return files, errs
}

// LoadBatch loads paths picked or dropped together. A path that cannot be
// read (a folder, a vanished file) still counts as a member of the batch: it
// becomes an untyped, empty File so the queue can reject a batch that holds
// nothing usable.
func LoadBatch(paths []string) []queue.File {
	files := make([]queue.File, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			err = fmt.Errorf("%s: is a directory", p)
		}
		var file queue.File
		if err == nil {
			file, err = LoadImageFile(p)
		}
		if err != nil {
			log.Printf("Unreadable intake path %s: %v", p, err)
			file = queue.File{Name: filepath.Base(p)}
		}
		files = append(files, file)
	}
	return files
}
