package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	// register the decoders the storefront accepts
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"go.uber.org/multierr"
	"golang.org/x/image/draw"
	"gorm.io/gorm"
)

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// UploadResult describes the stored product image.
type UploadResult struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	SizeBytes int    `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Quality   int    `json:"quality"`
	// Oversize marks an image that stayed above the target size even at
	// the quality floor. It ships regardless.
	Oversize bool `json:"oversize,omitempty"`
}

// Service processes and stores product images.
type Service interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, contentType string, data []byte) (*UploadResult, error)
}

type objectStorage interface {
	UploadObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	DeleteObject(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

type productImageRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SetImage(ctx context.Context, productID uuid.UUID, imageURL, imagePath string) error
}

type mediaRecorder interface {
	Create(ctx context.Context, row *models.Media) error
	DeleteByObjectKey(ctx context.Context, key string) error
}

type service struct {
	storage  objectStorage
	products productImageRepo
	records  mediaRecorder
	cfg      config.MediaConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs a media service instance.
func NewService(storage objectStorage, products productImageRepo, records mediaRecorder, cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("object storage required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if records == nil {
		return nil, fmt.Errorf("media recorder required")
	}
	if cfg.ImageMaxWidth <= 0 || cfg.ImageTargetKB <= 0 {
		return nil, fmt.Errorf("media config incomplete")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		storage:  storage,
		products: products,
		records:  records,
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// UploadProductImage decodes, downscales, and re-encodes the image, stores it
// under the product's prefix, and swaps the product's image reference. The
// previous object is removed best-effort once the new one is live.
func (s *service) UploadProductImage(ctx context.Context, productID uuid.UUID, contentType string, data []byte) (*UploadResult, error) {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported image type %q", contentType))
	}
	maxBytes := s.cfg.MaxUploadMB * 1024 * 1024
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds %dMB limit", s.cfg.MaxUploadMB))
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decoding image")
	}

	scaled := s.downscale(src)
	encoded, quality, err := s.encodeToTarget(scaled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding image")
	}

	bounds := scaled.Bounds()
	oversize := len(encoded) > s.cfg.ImageTargetKB*1024
	if oversize {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"product_id": productID,
			"size_bytes": len(encoded),
			"quality":    quality,
		}), "image above target size at quality floor")
	}
	key := fmt.Sprintf("%s/%d.jpg", productID, s.now().UnixMilli())

	if err := s.storage.UploadObject(ctx, "", key, "image/jpeg", encoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading image")
	}

	url := s.storage.PublicURL("", key)
	if err := s.products.SetImage(ctx, productID, url, key); err != nil {
		// the orphan is reconciled through the media table later
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "linking image")
	}

	row := &models.Media{
		ID:          uuid.New(),
		ProductID:   &product.ID,
		ObjectKey:   key,
		ContentType: "image/jpeg",
		SizeBytes:   int64(len(encoded)),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}
	if err := s.records.Create(ctx, row); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "object_key", key), "media record insert failed")
	}

	if old := product.ImagePath; old != "" && old != key {
		var cleanup error
		cleanup = multierr.Append(cleanup, s.storage.DeleteObject(ctx, "", old))
		cleanup = multierr.Append(cleanup, s.records.DeleteByObjectKey(ctx, old))
		if cleanup != nil {
			s.logg.Warn(s.logg.WithField(ctx, "object_key", old), "previous image cleanup failed")
		}
	}

	return &UploadResult{
		URL:       url,
		ObjectKey: key,
		SizeBytes: len(encoded),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Quality:   quality,
		Oversize:  oversize,
	}, nil
}

// downscale caps the width, preserving aspect ratio. Smaller images pass
// through untouched.
func (s *service) downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	if width <= s.cfg.ImageMaxWidth {
		return src
	}

	height := bounds.Dy() * s.cfg.ImageMaxWidth / width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.cfg.ImageMaxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// encodeToTarget walks the quality ladder down until the payload fits the
// target size or the floor is reached. The floor encoding always ships.
func (s *service) encodeToTarget(img image.Image) ([]byte, int, error) {
	target := s.cfg.ImageTargetKB * 1024
	quality := s.cfg.ImageStartQ
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	step := s.cfg.ImageQualityStep
	if step <= 0 {
		step = 7
	}

	var buf bytes.Buffer
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, 0, err
		}
		if buf.Len() <= target || quality-step < s.cfg.ImageMinQ {
			break
		}
		quality -= step
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, quality, nil
}
