package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/events"
	"github.com/spec-kit/docket-service/internal/render"
	"github.com/spec-kit/docket-service/internal/repository"
	"github.com/spec-kit/docket-service/internal/settings"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// qrSeparator joins student number, exam type and token in the QR payload.
// Student numbers reject '|' at registration and base64url tokens cannot
// contain it, so the payload splits unambiguously.
const qrSeparator = "|"

// DocketService runs the eligibility check and docket issuance workflow.
type DocketService struct {
	students   repository.StudentRepository
	clearances repository.ClearanceRepository
	dockets    repository.DocketRepository
	tokenKeys  repository.TokenKeyRepository
	blocklist  *settings.BlocklistStore
	renderer   *render.DocketRenderer
	dispatcher events.Dispatcher
}

// DocketDependencies bundles collaborators for the docket service.
type DocketDependencies struct {
	StudentRepo   repository.StudentRepository
	ClearanceRepo repository.ClearanceRepository
	DocketRepo    repository.DocketRepository
	TokenKeyRepo  repository.TokenKeyRepository
	Blocklist     *settings.BlocklistStore
	Renderer      *render.DocketRenderer
	Dispatcher    events.Dispatcher
}

// NewDocketService constructs the service.
func NewDocketService(deps DocketDependencies) *DocketService {
	return &DocketService{
		students:   deps.StudentRepo,
		clearances: deps.ClearanceRepo,
		dockets:    deps.DocketRepo,
		tokenKeys:  deps.TokenKeyRepo,
		blocklist:  deps.Blocklist,
		renderer:   deps.Renderer,
		dispatcher: deps.Dispatcher,
	}
}

// EligibilityEntry is one exam phase's eligibility flag.
type EligibilityEntry struct {
	ExamType domain.ExamType `json:"exam_type"`
	Eligible bool            `json:"eligible"`
}

// GeneratedDocket is the issuance result: the persisted docket plus its
// rendered artifact. QRPayload is the full payload encoded into the QR
// image, token included; it lives only here and in the PDF, never in the
// store.
type GeneratedDocket struct {
	Docket    *domain.Docket
	QRPayload string
	PDF       []byte
	Filename  string
}

// CheckEligibility returns the per-phase eligibility flags for a student.
func (s *DocketService) CheckEligibility(ctx context.Context, studentID int64) ([]EligibilityEntry, error) {
	clearance, err := s.clearances.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("No clearance records found.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}

	return []EligibilityEntry{
		{ExamType: domain.ExamTypeCA1, Eligible: clearance.Eligible(domain.ExamTypeCA1)},
		{ExamType: domain.ExamTypeCA2, Eligible: clearance.Eligible(domain.ExamTypeCA2)},
		{ExamType: domain.ExamTypeFinal, Eligible: clearance.Eligible(domain.ExamTypeFinal)},
	}, nil
}

// Generate runs the full issuance workflow for a student and exam type:
// clearance gate, blocklist gate, enrollment check, token generation, PDF
// rendering and the transactional docket+token insert. The PDF renders
// before anything is committed, so a persisted docket always has a
// deliverable artifact.
func (s *DocketService) Generate(ctx context.Context, studentID int64, examTypeRaw string) (*GeneratedDocket, error) {
	examType, ok := domain.ParseExamType(examTypeRaw)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid exam type specified.")
	}

	clearance, err := s.clearances.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("No clearance record found.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	if !clearance.Eligible(examType) {
		return nil, apperrors.NewForbidden(fmt.Sprintf(
			"Not eligible for %s docket. Please visit the Retentions Office.",
			strings.ToUpper(string(examType))))
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Student not found.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}

	blocked, err := s.blocklist.Contains(ctx, student.StudentNumber)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperrors.NewForbidden("Docket issuance is blocked for this student. Please visit the Retentions Office.")
	}

	courses, err := s.students.ListEnrolledCourses(ctx, studentID)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	// A student with zero enrolled courses cannot receive a docket.
	if len(courses) == 0 {
		return nil, apperrors.NewNotFound("No enrolled courses found.")
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	// Only the token-less lookup prefix is persisted; the token itself
	// leaves the server exclusively inside the QR image.
	lookup := qrLookup(student.StudentNumber, examType)
	payload := lookup + qrSeparator + token

	qrPNG, err := render.EncodeQR(payload, 256)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.Render(student, courses, examType, qrPNG)
	if err != nil {
		return nil, err
	}

	docket := &domain.Docket{
		Ref:         uuid.NewString(),
		StudentID:   student.ID,
		ProgrammeID: student.ProgrammeID,
		ExamType:    examType,
		QRPayload:   lookup,
		Status:      domain.DocketStatusIssued,
		PrintCount:  1,
		IssuedAt:    time.Now().UTC(),
	}
	err = s.dockets.CreateWithToken(ctx, docket, func(keySecret string) string {
		return TokenDigest(keySecret, token)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDocketAlreadyIssued) {
			return nil, apperrors.NewConflict("A docket for this exam has already been issued.")
		}
		return nil, apperrors.NewPersistenceFailure("Could not issue docket.", err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventDocketIssued,
		Payload: events.DocketIssuedPayload{
			DocketRef:     docket.Ref,
			StudentNumber: student.StudentNumber,
			ExamType:      examType,
		},
	})

	return &GeneratedDocket{
		Docket:    docket,
		QRPayload: payload,
		PDF:       pdf,
		Filename:  render.Filename(student.StudentNumber, examType),
	}, nil
}

// Redeem verifies a presented QR payload against the stored token digest
// and consumes the docket. The docket is resolved by the token-less lookup
// prefix; the token tail is only ever compared through its digest. At most
// one redemption ever succeeds.
func (s *DocketService) Redeem(ctx context.Context, qrPayload string) (*domain.Docket, error) {
	lookup, token, ok := splitQRPayload(qrPayload)
	if !ok {
		return nil, apperrors.NewValidationError("Malformed QR payload.")
	}

	docket, err := s.dockets.GetByPayload(ctx, lookup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Docket not found.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}

	key, err := s.tokenKeys.GetActive(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	digest := TokenDigest(key.Secret, token)

	stored, err := s.dockets.GetActiveToken(ctx, docket.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("Token already used or expired.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	if !hmac.Equal([]byte(stored.TokenDigest), []byte(digest)) {
		return nil, apperrors.NewForbidden("Invalid verification token.")
	}

	if err := s.dockets.Redeem(ctx, docket.ID, digest); err != nil {
		if errors.Is(err, repository.ErrTokenNotRedeemable) {
			return nil, apperrors.NewConflict("Token already used or expired.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	docket.Status = domain.DocketStatusConsumed

	s.publish(ctx, events.Event{
		Type:    events.EventTokenRedeemed,
		Payload: events.TokenRedeemedPayload{DocketRef: docket.Ref},
	})
	return docket, nil
}

func (s *DocketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

// TokenDigest computes the one-way digest stored for a verification token:
// HMAC-SHA256 of the token value under the active signing key.
func TokenDigest(keySecret, token string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// newVerificationToken returns a URL-safe token with 32 bytes of entropy.
func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// qrLookup is the persisted, token-less prefix of a QR payload.
func qrLookup(studentNumber string, examType domain.ExamType) string {
	return studentNumber + qrSeparator + string(examType)
}

// splitQRPayload splits a presented payload into its lookup prefix and
// token tail. It cuts on the last separator so student numbers that happen
// to contain the separator still parse.
func splitQRPayload(payload string) (lookup, token string, ok bool) {
	last := strings.LastIndex(payload, qrSeparator)
	if last <= 0 {
		return "", "", false
	}
	lookup, token = payload[:last], payload[last+1:]
	if token == "" || !strings.Contains(lookup, qrSeparator) {
		return "", "", false
	}
	return lookup, token, true
}
