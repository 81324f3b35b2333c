package assets

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary implements Uploader against the Cloudinary API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload stores the file under folder with a random public ID and
// returns the host-assigned file id and retrieval URL.
func (c *Cloudinary) Upload(ctx context.Context, file multipart.File, folder string) (Asset, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.New().String(),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("asset upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return Asset{}, fmt.Errorf("asset upload failed: %s", res.Error.Message)
	}

	return Asset{FileID: res.PublicID, URL: res.SecureURL}, nil
}

// Delete removes the object from the host. Callers treat failures as
// best-effort: log and move on.
func (c *Cloudinary) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: fileID})
	if err != nil {
		return fmt.Errorf("asset delete failed: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("asset delete failed: %s", res.Result)
	}
	return nil
}
