package payment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
	"github.com/nekogravitycat/court-reservation-backend/internal/tariff"
)

const proofDir = "payment-proofs"

// DefaultMaxProofBytes caps proof uploads when no limit is configured.
const DefaultMaxProofBytes = 5 << 20

var proofExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Reservations resolves a booking code into the reservation being paid for.
type Reservations interface {
	PayableByCode(ctx context.Context, code string) (*Payable, error)
}

type AttachRequest struct {
	BookingCode string
	Method      Method
	Content     io.Reader // Sniffed for its type; declared types are ignored
}

type Service interface {
	// AttachProof stores a payment proof and records the payment as PENDING verification.
	AttachProof(ctx context.Context, req AttachRequest) (*Payment, error)
	// OpenProof streams a stored proof or thumbnail to staff.
	OpenProof(ctx context.Context, staff auth.Staff, objectPath string) (io.ReadCloser, string, error)
	ProofURL(objectPath string) string
}

type service struct {
	repo         Repository
	reservations Reservations
	tariffs      tariff.Service
	storage      storage.Storage
	imgProc      *storage.ImageProcessor
	maxBytes     int64
	now          func() time.Time
}

func NewService(
	repo Repository,
	reservations Reservations,
	tariffs tariff.Service,
	store storage.Storage,
	imgProc *storage.ImageProcessor,
	maxBytes int64,
) Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxProofBytes
	}
	return &service{
		repo:         repo,
		reservations: reservations,
		tariffs:      tariffs,
		storage:      store,
		imgProc:      imgProc,
		maxBytes:     maxBytes,
		now:          time.Now,
	}
}

func (s *service) AttachProof(ctx context.Context, req AttachRequest) (*Payment, error) {
	method := req.Method
	if method == "" {
		method = MethodTransfer
	}
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}
	if req.Content == nil {
		return nil, ErrProofRequired
	}

	// Read one byte past the limit to detect oversized uploads.
	content, err := io.ReadAll(io.LimitReader(req.Content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read proof: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrProofRequired
	}
	if int64(len(content)) > s.maxBytes {
		return nil, ErrProofTooLarge
	}

	contentType := http.DetectContentType(content)
	ext, ok := proofExtensions[contentType]
	if !ok {
		return nil, ErrProofType
	}

	target, err := s.reservations.PayableByCode(ctx, req.BookingCode)
	if err != nil {
		return nil, err
	}
	if err := CheckPayable(target.Status); err != nil {
		return nil, err
	}

	previous, err := s.repo.GetByReservation(ctx, target.ReservationID)
	switch {
	case apperror.IsNotFound(err):
		previous = nil
	case err != nil:
		return nil, err
	case previous.VerificationStatus == StatusValid:
		return nil, ErrAlreadyVerified
	}

	rate, err := s.tariffs.HourlyRate(ctx, target.CourtID, target.Date)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s/%s-%d", proofDir, target.BookingCode, s.now().Unix())
	proofPath := base + ext
	if err := s.storage.Save(ctx, proofPath, bytes.NewReader(content)); err != nil {
		return nil, apperror.Store("save proof", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") && s.imgProc != nil {
		thumbnailPath = s.saveThumbnail(ctx, base+"_thumb.jpg", content)
	}

	p := &Payment{
		ReservationID: target.ReservationID,
		Amount:        tariff.AmountFor(rate, target.Interval.Minutes()),
		Method:        method,
		ProofPath:     proofPath,
		ThumbnailPath: thumbnailPath,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		s.discard(ctx, proofPath, thumbnailPath)
		return nil, err
	}

	if previous != nil {
		s.discardReplaced(ctx, previous, p)
	}

	log.Ctx(ctx).Info().
		Str("booking_code", target.BookingCode).
		Int64("amount", p.Amount).
		Str("method", string(method)).
		Msg("payment proof attached")

	return p, nil
}

// saveThumbnail is best effort. A proof without a preview is still a valid proof.
func (s *service) saveThumbnail(ctx context.Context, thumbPath string, content []byte) *string {
	thumb, err := s.imgProc.Thumbnail(bytes.NewReader(content))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("proof thumbnail generation failed")
		return nil
	}
	if err := s.storage.Save(ctx, thumbPath, thumb); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", thumbPath).Msg("proof thumbnail save failed")
		return nil
	}
	return &thumbPath
}

func (s *service) discard(ctx context.Context, proofPath string, thumbnailPath *string) {
	var paths []string
	if proofPath != "" {
		paths = append(paths, proofPath)
	}
	if thumbnailPath != nil {
		paths = append(paths, *thumbnailPath)
	}
	for _, p := range paths {
		if err := s.storage.Delete(ctx, p); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", p).Msg("stored proof cleanup failed")
		}
	}
}

// discardReplaced removes the files of a proof that was overwritten by current.
func (s *service) discardReplaced(ctx context.Context, previous, current *Payment) {
	var thumb *string
	if previous.ThumbnailPath != nil && (current.ThumbnailPath == nil || *previous.ThumbnailPath != *current.ThumbnailPath) {
		thumb = previous.ThumbnailPath
	}
	proof := previous.ProofPath
	if proof == current.ProofPath {
		proof = ""
	}
	s.discard(ctx, proof, thumb)
}

func (s *service) OpenProof(ctx context.Context, staff auth.Staff, objectPath string) (io.ReadCloser, string, error) {
	if err := staff.Require(); err != nil {
		return nil, "", err
	}

	clean := path.Clean("/" + objectPath)
	if !strings.HasPrefix(clean, "/"+proofDir+"/") {
		return nil, "", apperror.NewNotFound("proof", objectPath)
	}
	clean = strings.TrimPrefix(clean, "/")

	rc, err := s.storage.Get(ctx, clean)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", apperror.NewNotFound("proof", objectPath)
		}
		return nil, "", apperror.Store("open proof", err)
	}

	contentType := "application/octet-stream"
	for ct, ext := range proofExtensions {
		if strings.HasSuffix(clean, ext) {
			contentType = ct
			break
		}
	}
	return rc, contentType, nil
}

func (s *service) ProofURL(objectPath string) string {
	return s.storage.PublicURL(objectPath)
}
