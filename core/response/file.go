package response

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mrCamelCode/potami/core/handler"
)

// File serves a file from disk. Range requests, If-Modified-Since, and
// content type detection are delegated to http.ServeFile. Missing files
// and directories render 404.
func File(path string) handler.Response {
	return serveFile(path, "")
}

// Download serves a file from disk with an attachment disposition so
// browsers save it instead of displaying it. An empty filename falls
// back to the file's base name.
func Download(path string, filename string) handler.Response {
	if filename == "" {
		filename = filepath.Base(filepath.Clean(path))
	}
	return serveFile(path, filename)
}

func serveFile(path string, attachmentName string) handler.Response {
	// Clean strips ../ sequences so callers cannot be tricked into
	// serving files outside the intended directory.
	path = filepath.Clean(path)

	return func(w http.ResponseWriter, r *http.Request) error {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}
		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		if attachmentName != "" {
			w.Header().Set("Content-Disposition", attachmentDisposition(attachmentName))
			w.Header().Set("Content-Type", contentTypeFor(attachmentName))
		}

		http.ServeFile(w, r, path)
		return nil
	}
}

// Attachment serves in-memory data as a downloadable file. An empty
// contentType is detected from the filename extension.
func Attachment(data []byte, filename string, contentType string) handler.Response {
	if contentType == "" {
		contentType = contentTypeFor(filename)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", attachmentDisposition(filename))
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(data)
		return err
	}
}

// FileReader streams reader as a downloadable file, for payloads too
// large or too transient to buffer. An empty contentType is detected
// from the filename extension.
func FileReader(reader io.Reader, filename string, contentType string) handler.Response {
	if contentType == "" {
		contentType = contentTypeFor(filename)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", attachmentDisposition(filename))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, err := io.Copy(w, reader)
		return err
	}
}

// CSV serves records as a downloadable CSV file. Each inner slice is one
// row; a missing .csv extension is appended to filename.
func CSV(records [][]string, filename string) handler.Response {
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := csv.NewWriter(&buf).WriteAll(records); err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		return Attachment(buf.Bytes(), filename, "text/csv; charset=utf-8")(w, r)
	}
}

// attachmentDisposition builds a Content-Disposition value with the
// filename stripped of characters that would break out of the quoted
// string or inject headers.
func attachmentDisposition(filename string) string {
	replacer := strings.NewReplacer("\n", "", "\r", "", `"`, "'")
	return fmt.Sprintf(`attachment; filename="%s"`, replacer.Replace(filename))
}

// contentTypeFor resolves a content type from the filename extension,
// defaulting to a generic binary type.
func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
