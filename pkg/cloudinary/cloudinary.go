package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// ErrNotConfigured is returned by NewClient when credentials are missing.
var ErrNotConfigured = errors.New("cloudinary credentials not configured")

// Client uploads pandal photos.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (Upload, error)
}

// Upload is where an image ended up.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PublicID     string `json:"public_id"`
}

// Delivery transformations
const (
	ImageWidth = 1200
	ThumbWidth = 320
)

// BuildImageURL returns a delivery URL with auto quality and format at the given width.
func BuildImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

var eagerAsync = false

type client struct {
	cloudName string
	uploader  *uploader.API
}

// UploadImage uploads synchronously with a thumbnail eager transform.
func (c *client) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (Upload, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      fmt.Sprintf("q_auto,f_auto,w_%d,c_fill", ThumbWidth),
		EagerAsync: &eagerAsync,
	})
	if err != nil {
		return Upload{}, err
	}
	if result.Error.Message != "" {
		return Upload{}, errors.New(result.Error.Message)
	}
	up := Upload{URL: result.SecureURL, PublicID: result.PublicID}
	if len(result.Eager) > 0 {
		up.ThumbnailURL = result.Eager[0].SecureURL
	}
	if up.ThumbnailURL == "" {
		up.ThumbnailURL = BuildImageURL(c.cloudName, result.PublicID, ThumbWidth)
	}
	return up, nil
}

// NewClient builds a Client from cloud name, API key and secret.
func NewClient(cloudName, apiKey, apiSecret string) (Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &client{cloudName: cloudName, uploader: up}, nil
}
