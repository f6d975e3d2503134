package store

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxUploadSize is the per-file ceiling
	MaxUploadSize = 5 << 20
	// MaxUploadFiles bounds a multi-image upload
	MaxUploadFiles = 10
	// UploadURLPrefix is where the storefront serves stored images
	UploadURLPrefix = "/uploads"
)

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrTooManyFiles = fmt.Errorf("at most %d files may be uploaded at once", MaxUploadFiles)
	ErrTooLarge     = errors.New("file too large. Maximum size is 5MB")
	ErrNotImage     = errors.New("only image files are allowed")
)

// Upload describes a stored image
type Upload struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// Uploads stores images under dir and addresses them under urlPrefix
type Uploads struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewUploads(dir, urlPrefix string) *Uploads {
	return &Uploads{dir: dir, urlPrefix: urlPrefix, now: time.Now}
}

// Dir returns the directory images are written to
func (u *Uploads) Dir() string {
	return u.dir
}

// URLPrefix returns the URL path stored images are addressed under
func (u *Uploads) URLPrefix() string {
	return u.urlPrefix
}

// Save validates and stores one uploaded image
func (u *Uploads) Save(field string, fh *multipart.FileHeader) (Upload, error) {
	if fh == nil {
		return Upload{}, ErrNoFile
	}
	if fh.Size > MaxUploadSize {
		return Upload{}, fmt.Errorf("%s: %w", fh.Filename, ErrTooLarge)
	}
	if declared := fh.Header.Get("Content-Type"); declared != "" && !strings.HasPrefix(declared, "image/") {
		return Upload{}, fmt.Errorf("%s: %w", fh.Filename, ErrNotImage)
	}

	src, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to inspect upload: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Upload{}, fmt.Errorf("%s: %w", fh.Filename, ErrNotImage)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Upload{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	if err := os.MkdirAll(u.dir, os.ModePerm); err != nil {
		return Upload{}, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%d-%d%s", field, u.now().UnixMilli(), rand.Intn(1e9), storedExt(fh.Filename, mtype))

	dst, err := os.OpenFile(filepath.Join(u.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// Cap the copy at the ceiling in case Size under-reports.
	n, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1))
	if err == nil && n > MaxUploadSize {
		err = ErrTooLarge
	}
	if err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return Upload{}, fmt.Errorf("failed to save file: %w", err)
	}

	return Upload{
		ImageURL: path.Join(u.urlPrefix, filename),
		Filename: filename,
	}, nil
}

// storedExt keeps the client's extension only when it names the sniffed
// type; anything else would let the file be served as something it is not.
func storedExt(filename string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if declared, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && mtype.Is(declared) {
			return ext
		}
	}
	return mtype.Extension()
}

// SaveAll stores every file or none of them
func (u *Uploads) SaveAll(field string, headers []*multipart.FileHeader) ([]Upload, error) {
	if len(headers) == 0 {
		return nil, ErrNoFile
	}
	if len(headers) > MaxUploadFiles {
		return nil, ErrTooManyFiles
	}

	saved := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		up, err := u.Save(field, fh)
		if err != nil {
			for _, s := range saved {
				os.Remove(filepath.Join(u.dir, s.Filename))
			}
			return nil, err
		}
		saved = append(saved, up)
	}
	return saved, nil
}
