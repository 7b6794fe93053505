package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/AriJaya07/voyra-tour-bali/models"
)

// MaxUploadBytes mirrors the server ceiling so oversized files fail before upload.
const MaxUploadBytes = 5 * 1024 * 1024

var uploadExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// ImageLinks attaches an upload to a destination or a package; zero means none.
type ImageLinks struct {
	DestinationID uint
	PackageID     uint
}

// UploadFile is one queued file.
type UploadFile struct {
	Name string
	Data []byte
}

// ProgressFunc reports after each file; err is that file's failure, if any.
type ProgressFunc func(done, total int, file UploadFile, err error)

type Images struct {
	c         *Client
	uploading atomic.Int32
	deleting  atomic.Int32
}

func (im *Images) Uploading() bool { return im.uploading.Load() > 0 }
func (im *Images) Deleting() bool  { return im.deleting.Load() > 0 }

func (im *Images) List(ctx context.Context, links ImageLinks) ([]models.Image, error) {
	q := url.Values{}
	if links.DestinationID != 0 {
		q.Set("destinationId", strconv.FormatUint(uint64(links.DestinationID), 10))
	}
	if links.PackageID != 0 {
		q.Set("packageId", strconv.FormatUint(uint64(links.PackageID), 10))
	}
	key, path := "images", "/api/images"
	if len(q) > 0 {
		key += "?" + q.Encode()
		path += "?" + q.Encode()
	}
	var out []models.Image
	if err := im.c.cachedGet(ctx, key, path, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckUpload applies the same size and type rules as the upload picker.
func CheckUpload(f UploadFile) error {
	if len(f.Data) > MaxUploadBytes {
		return FieldErrors{"file": "File size must be under 5MB"}
	}
	if !uploadExtensions[strings.ToLower(filepath.Ext(f.Name))] {
		return FieldErrors{"file": "Only JPEG, PNG, WEBP, GIF allowed"}
	}
	return nil
}

func (im *Images) Upload(ctx context.Context, f UploadFile, links ImageLinks) (*models.Image, error) {
	if err := CheckUpload(f); err != nil {
		return nil, err
	}
	im.uploading.Add(1)
	defer im.uploading.Add(-1)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(f.Name))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewReader(f.Data)); err != nil {
		return nil, err
	}
	if links.DestinationID != 0 {
		_ = mw.WriteField("destinationId", strconv.FormatUint(uint64(links.DestinationID), 10))
	}
	if links.PackageID != 0 {
		_ = mw.WriteField("packageId", strconv.FormatUint(uint64(links.PackageID), 10))
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var image models.Image
	if err := im.c.send(ctx, http.MethodPost, "/api/images", &body, mw.FormDataContentType(), &image); err != nil {
		return nil, err
	}
	im.invalidate()
	return &image, nil
}

// UploadAll sends files one at a time, in order. A failed file does not stop the queue.
func (im *Images) UploadAll(ctx context.Context, files []UploadFile, links ImageLinks, progress ProgressFunc) ([]*models.Image, error) {
	uploaded := make([]*models.Image, 0, len(files))
	var failed []string
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return uploaded, err
		}
		image, err := im.Upload(ctx, f, links)
		if err != nil {
			failed = append(failed, f.Name)
		} else {
			uploaded = append(uploaded, image)
		}
		if progress != nil {
			progress(i+1, len(files), f, err)
		}
	}
	if len(failed) > 0 {
		return uploaded, fmt.Errorf("%d of %d uploads failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return uploaded, nil
}

// Relink moves an image; zero ids unlink.
func (im *Images) Relink(ctx context.Context, id uint, links ImageLinks) (*models.Image, error) {
	patch := Patch{"destinationId": nil, "packageId": nil}
	if links.DestinationID != 0 {
		patch["destinationId"] = links.DestinationID
	}
	if links.PackageID != 0 {
		patch["packageId"] = links.PackageID
	}
	var image models.Image
	if err := im.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/images/%d", id), patch, &image); err != nil {
		return nil, err
	}
	im.invalidate()
	return &image, nil
}

func (im *Images) Delete(ctx context.Context, id uint) error {
	if im.c.confirm == nil || !im.c.confirm(ctx, "images", fmt.Sprintf("image #%d", id)) {
		return ErrDeleteNotConfirmed
	}
	im.deleting.Add(1)
	defer im.deleting.Add(-1)

	if err := im.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/images/%d", id), nil, nil); err != nil {
		return err
	}
	im.invalidate()
	return nil
}

func (im *Images) invalidate() {
	im.c.cache.invalidate("images", "packages", "destinations", keyDashboard)
}
