// Package cloudinary uploads tour and user images.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

var (
	allowedImageTypes = []string{".jpg", ".jpeg", ".png", ".webp"}

	maxImageSize = int64(10 * 1024 * 1024) // 10MB
)

func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "gotours"
	}

	return &Service{cld: cld, uploadFolder: uploadFolder}, nil
}

// UploadImage uploads an image into the given subfolder (tours, users).
func (s *Service) UploadImage(ctx context.Context, file multipart.File, subfolder string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       s.uploadFolder + "/" + subfolder,
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
		Format:   result.Format,
	}, nil
}

// Delete removes a previously uploaded image.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}

// ValidateImageFile rejects files with disallowed extensions or over the
// size cap before any bytes leave the process.
func ValidateImageFile(header *multipart.FileHeader) error {
	if header.Size > maxImageSize {
		return fmt.Errorf("image exceeds the %dMB limit", maxImageSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, allowed := range allowedImageTypes {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported image type %q", ext)
}
