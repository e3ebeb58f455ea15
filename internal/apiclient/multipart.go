package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
)

type formFile struct {
	field string
	path  string
}

// MultipartForm collects text fields and local files for PostMultipart.
// Fields keep insertion order.
type MultipartForm struct {
	fields [][2]string
	files  []formFile
}

func (f *MultipartForm) AddField(name, value string) *MultipartForm {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// AddFile attaches the file at path under field; it is read at send time.
func (f *MultipartForm) AddFile(field, path string) *MultipartForm {
	f.files = append(f.files, formFile{field: field, path: path})
	return f
}

func (f *MultipartForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}
	for _, ff := range f.files {
		if err := writeFile(w, ff); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, ff formFile) error {
	src, err := os.Open(ff.path)
	if err != nil {
		return fmt.Errorf("open %s for %s: %w", ff.path, ff.field, err)
	}
	defer src.Close()

	name := filepath.Base(ff.path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ff.field, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", ff.field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", ff.path, err)
	}
	return nil
}
