package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/photo"
	"github.com/go-playground/validator/v10"
	"github.com/golang/geo/s2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrInvalidField  = errors.New("invalid field")
	ErrInvalidPhoto  = errors.New("Invalid photo")
	ErrPersistence   = errors.New("Failed to create report")
)

// PersistenceError is a storage failure for the report it names. It matches
// ErrPersistence.
type PersistenceError struct {
	ReportID uuid.UUID
	Err      error
}

func (e *PersistenceError) Error() string {
	return ErrPersistence.Error() + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// PhotoStore moves inline photos out of the reports table.
type PhotoStore interface {
	PutPhoto(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type ReportService struct {
	db                *gorm.DB
	photos            PhotoStore
	validate          *validator.Validate
	defaultPlateState string
	photoMaxKB        float64
	now               func() time.Time
	newID             func() uuid.UUID
}

type Option func(*ReportService)

// WithClock sets the source of created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *ReportService) { s.now = now }
}

// WithIDGenerator sets the source of report identifiers.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *ReportService) { s.newID = newID }
}

// WithPhotoStore uploads inline photos to store and keeps only their URL.
func WithPhotoStore(store PhotoStore) Option {
	return func(s *ReportService) { s.photos = store }
}

func NewReportService(db *gorm.DB, cfg *config.Config, opts ...Option) *ReportService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	s := &ReportService{
		db:                db,
		validate:          v,
		defaultPlateState: cfg.DefaultPlateState,
		photoMaxKB:        float64(cfg.PhotoMaxKB),
		now:               time.Now,
		newID:             uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReport validates req and inserts exactly one pending report.
func (s *ReportService) CreateReport(ctx context.Context, req *dto.CreateReportRequest) (*models.Report, error) {
	trimRequest(req)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	inline, err := s.checkPhoto(req.PhotoBase64)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := &models.Report{
		ID:            s.newID(),
		ReporterEmail: req.ReporterEmail,
		LicensePlate:  NormalizePlate(req.LicensePlate),
		PlateState:    NormalizePlate(orDefault(req.PlateState, s.defaultPlateState)),
		VehicleMake:   req.VehicleMake,
		VehicleModel:  optional(req.VehicleModel),
		VehicleColor:  req.VehicleColor,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Address:       optional(req.Address),
		Reason:        req.Reason,
		Notes:         optional(req.Notes),
		PhotoURL:      optional(req.PhotoBase64),
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if inline != nil && s.photos != nil {
		key := fmt.Sprintf("reports/%s.%s", report.ID, inline.ext)
		photoURL, err := s.photos.PutPhoto(ctx, key, inline.contentType, inline.data)
		if err != nil {
			return nil, &PersistenceError{ReportID: report.ID, Err: fmt.Errorf("upload photo: %w", err)}
		}
		report.PhotoURL = &photoURL
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, &PersistenceError{ReportID: report.ID, Err: err}
	}

	return report, nil
}

// NormalizePlate trims and uppercases a plate or jurisdiction code.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (s *ReportService) validateRequest(req *dto.CreateReportRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return ErrMissingFields
			}
		}
		fe := verrs[0]
		return fmt.Errorf("%w: %s must be at most %s characters", ErrInvalidField, fe.Field(), fe.Param())
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be provided together", ErrInvalidField)
	}
	if req.Latitude != nil && !s2.LatLngFromDegrees(*req.Latitude, *req.Longitude).IsValid() {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidField)
	}

	return nil
}

type inlinePhoto struct {
	data        []byte
	contentType string
	ext         string
}

// checkPhoto accepts an http(s) URL or an image data URL within the size limit.
// It returns the decoded image for data URLs.
func (s *ReportService) checkPhoto(p string) (*inlinePhoto, error) {
	if p == "" {
		return nil, nil
	}

	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		u, err := url.ParseRequestURI(p)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: malformed url", ErrInvalidPhoto)
		}
		return nil, nil
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(p, "data:"), ",")
	if !ok || !strings.HasPrefix(p, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: expected a data url or http(s) url", ErrInvalidPhoto)
	}
	if mediaType := strings.TrimSuffix(header, ";base64"); !photo.AcceptedType(mediaType) {
		return nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidPhoto, mediaType)
	}
	if size := photo.EstimateEncodedSize(p); size > s.photoMaxKB {
		return nil, fmt.Errorf("%w: %.0fKB exceeds %.0fKB", ErrInvalidPhoto, size, s.photoMaxKB)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	hdr, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	if int64(hdr.Width)*int64(hdr.Height) > photo.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidPhoto, hdr.Width, hdr.Height, photo.MaxPixels)
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	return &inlinePhoto{data: data, contentType: "image/" + format, ext: ext}, nil
}

func trimRequest(req *dto.CreateReportRequest) {
	for _, f := range []*string{
		&req.ReporterEmail, &req.LicensePlate, &req.PlateState,
		&req.VehicleMake, &req.VehicleModel, &req.VehicleColor,
		&req.Address, &req.Reason, &req.Notes, &req.PhotoBase64,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
