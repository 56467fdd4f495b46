package domain

import "time"

// DocketStatus enumerates the docket lifecycle. A docket is never deleted,
// only status-transitioned.
type DocketStatus string

const (
	DocketStatusIssued   DocketStatus = "issued"
	DocketStatusConsumed DocketStatus = "consumed"
	DocketStatusVoid     DocketStatus = "void"
)

// TokenStatus enumerates the verification token lifecycle.
type TokenStatus string

const (
	TokenStatusActive  TokenStatus = "active"
	TokenStatusUsed    TokenStatus = "used"
	TokenStatusExpired TokenStatus = "expired"
)

// KeyStatus enumerates token signing key states. At most one key is active.
type KeyStatus string

const (
	KeyStatusActive  KeyStatus = "active"
	KeyStatusRetired KeyStatus = "retired"
)

// Docket is one issued exam-entry document. QRPayload holds only the
// token-less prefix of the scanned payload; the verification token itself
// is never stored in any form but its digest.
type Docket struct {
	ID          int64
	Ref         string
	StudentID   int64
	ProgrammeID int64
	ExamType    ExamType
	QRPayload   string
	Status      DocketStatus
	PrintCount  int
	IssuedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocketToken is the redeemable secret bound to a docket. Only the one-way
// digest of the token value is ever stored.
type DocketToken struct {
	ID          int64
	DocketID    int64
	TokenDigest string
	Status      TokenStatus
	IssuedAt    time.Time
	CreatedAt   time.Time
}

// TokenKey is the server-held secret the verification step derives token
// digests from.
type TokenKey struct {
	ID        int64
	Secret    string
	Status    KeyStatus
	CreatedAt time.Time
}
