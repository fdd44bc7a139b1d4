package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Uploader stores product images and returns their public URL.
type Uploader interface {
	// Upload stores the image and returns its HTTPS URL.
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// cloudinaryUploader implements Uploader on Cloudinary.
type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// NewCloudinaryUploader creates an uploader from a cloudinary:// URL.
// Images land in the given folder, or the account root when folder is empty.
func NewCloudinaryUploader(url, folder string, logger zerolog.Logger) (Uploader, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &cloudinaryUploader{
		cld:    cld,
		folder: folder,
		logger: logger.With().Str("component", "uploader").Logger(),
	}, nil
}

// Upload stores the image on Cloudinary and returns its secure URL.
func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		u.logger.Error().Err(err).Msg("image upload failed")
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	u.logger.Info().Str("public_id", result.PublicID).Msg("image uploaded")

	return result.SecureURL, nil
}
