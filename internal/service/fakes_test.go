package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/repository"
)

// In-memory repository implementations backing the service tests. They
// mimic the Postgres repos' error contract: pgx.ErrNoRows on misses and
// the repository sentinels on constraint violations.

type fakeStudentRepo struct {
	students map[int64]*domain.Student
	courses  map[int64][]domain.Course
	err      error
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	student, ok := f.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentRepo) GetByNumber(_ context.Context, studentNumber string) (*domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, student := range f.students {
		if student.StudentNumber == studentNumber {
			copied := *student
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentRepo) ListEnrolledCourses(_ context.Context, studentID int64) ([]domain.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courses[studentID], nil
}

func (f *fakeStudentRepo) Search(_ context.Context, term string, limit int) ([]domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matches []domain.Student
	for _, student := range f.students {
		if strings.Contains(student.StudentNumber, term) ||
			strings.Contains(strings.ToLower(student.FirstName), strings.ToLower(term)) ||
			strings.Contains(strings.ToLower(student.LastName), strings.ToLower(term)) {
			matches = append(matches, *student)
		}
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.ID == id {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	admin, ok := f.admins[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (f *fakeAdminRepo) Upsert(_ context.Context, username, passwordHash string) (*domain.Admin, error) {
	if f.admins == nil {
		f.admins = make(map[string]*domain.Admin)
	}
	admin, ok := f.admins[username]
	if !ok {
		admin = &domain.Admin{ID: int64(len(f.admins) + 1), Username: username}
		f.admins[username] = admin
	}
	admin.PasswordHash = passwordHash
	copied := *admin
	return &copied, nil
}

type fakeClearanceRepo struct {
	clearances map[int64]*domain.Clearance
}

func (f *fakeClearanceRepo) GetByStudent(_ context.Context, studentID int64) (*domain.Clearance, error) {
	clearance, ok := f.clearances[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *clearance
	return &copied, nil
}

const fakeKeySecret = "test-signing-key-secret"

type fakeTokenKeyRepo struct{}

func (f *fakeTokenKeyRepo) GetActive(_ context.Context) (*domain.TokenKey, error) {
	return &domain.TokenKey{ID: 1, Secret: fakeKeySecret, Status: domain.KeyStatusActive}, nil
}

type fakeDocketRepo struct {
	nextID  int64
	dockets []*domain.Docket
	tokens  map[int64]*domain.DocketToken
}

func newFakeDocketRepo() *fakeDocketRepo {
	return &fakeDocketRepo{nextID: 1, tokens: make(map[int64]*domain.DocketToken)}
}

func (f *fakeDocketRepo) CreateWithToken(_ context.Context, docket *domain.Docket, digest func(keySecret string) string) error {
	for _, existing := range f.dockets {
		if existing.StudentID == docket.StudentID &&
			existing.ExamType == docket.ExamType &&
			existing.Status == domain.DocketStatusIssued {
			return repository.ErrDocketAlreadyIssued
		}
	}
	docket.ID = f.nextID
	f.nextID++
	f.dockets = append(f.dockets, docket)
	f.tokens[docket.ID] = &domain.DocketToken{
		ID:          docket.ID,
		DocketID:    docket.ID,
		TokenDigest: digest(fakeKeySecret),
		Status:      domain.TokenStatusActive,
	}
	return nil
}

func (f *fakeDocketRepo) GetByPayload(_ context.Context, qrPayload string) (*domain.Docket, error) {
	for _, docket := range f.dockets {
		if docket.QRPayload == qrPayload {
			copied := *docket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDocketRepo) GetActiveToken(_ context.Context, docketID int64) (*domain.DocketToken, error) {
	token, ok := f.tokens[docketID]
	if !ok || token.Status != domain.TokenStatusActive {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (f *fakeDocketRepo) Redeem(_ context.Context, docketID int64, tokenDigest string) error {
	token, ok := f.tokens[docketID]
	if !ok || token.Status != domain.TokenStatusActive || token.TokenDigest != tokenDigest {
		return repository.ErrTokenNotRedeemable
	}
	token.Status = domain.TokenStatusUsed
	for _, docket := range f.dockets {
		if docket.ID == docketID {
			docket.Status = domain.DocketStatusConsumed
		}
	}
	return nil
}

type fakePaymentRepo struct {
	payments      []domain.Payment
	knownStudents map[string]int64
	nextID        int64
}

func newFakePaymentRepo(known map[string]int64) *fakePaymentRepo {
	return &fakePaymentRepo{knownStudents: known, nextID: 1}
}

func (f *fakePaymentRepo) List(_ context.Context, limit int) ([]domain.Payment, error) {
	if limit > len(f.payments) {
		limit = len(f.payments)
	}
	return append([]domain.Payment(nil), f.payments[:limit]...), nil
}

func (f *fakePaymentRepo) Record(_ context.Context, payment *domain.Payment) error {
	studentID, ok := f.knownStudents[payment.StudentNumber]
	if !ok {
		return pgx.ErrNoRows
	}
	payment.ID = f.nextID
	payment.StudentID = studentID
	f.nextID++
	f.payments = append(f.payments, *payment)
	return nil
}
