// Package auth gates the dashboard behind the Admin collection. Login
// checks the admin document's authorization flags and password hash,
// then issues an opaque session token kept in memory.
package auth

import (
	"context"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/jishinalert/dashboard/internal/errors"
	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/models"
	"github.com/jishinalert/dashboard/internal/normalize"
	"github.com/jishinalert/dashboard/internal/store"
)

const adminCollection = "Admin"

// Service authenticates admins against the store.
type Service struct {
	store store.Store
	log   *logger.Logger
}

// NewService builds an auth service.
func NewService(s store.Store) *Service {
	return &Service{store: s, log: logger.Default().WithPrefix("auth")}
}

// Login validates a user id and password against the Admin collection
// and returns the matching admin record. Every failure maps to one of
// the AUTH_* codes so the login page can show its fixed messages.
func (s *Service) Login(ctx context.Context, userID, password string) (*models.AdminRecord, *apperrors.AppError) {
	docs, err := s.store.Collection(adminCollection).
		Where("userID", userID).
		Limit(1).
		Documents(ctx)
	if err != nil {
		s.log.Error("admin lookup failed for %s: %v", userID, err)
		return nil, apperrors.NewAuthError(backendCode(err), err)
	}
	if len(docs) == 0 {
		s.log.Warn("login rejected: no admin record for %s", userID)
		return nil, apperrors.NewAuthError(apperrors.ErrCodeUserNotFound, nil)
	}

	admin := normalize.Admin(docs[0])
	if !admin.Authorized() {
		s.log.Warn("login rejected: %s is not an admin", userID)
		return nil, apperrors.NewAuthError(apperrors.ErrCodeAccessDenied, nil)
	}

	// The email on the record must be well-formed before the password is
	// even considered; a bad one means the document was hand-edited.
	if _, err := mail.ParseAddress(admin.Email); err != nil {
		s.log.Warn("login rejected: malformed email on admin record %s", userID)
		return nil, apperrors.NewAuthError(apperrors.ErrCodeInvalidEmail, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("login rejected: wrong password for %s", userID)
		return nil, apperrors.NewAuthError(apperrors.ErrCodeWrongPassword, err)
	}

	s.log.Info("admin %s logged in", userID)
	return &admin, nil
}

// backendCode maps a store error to a login error code. gRPC status
// codes come straight off the Firestore client; anything unrecognized
// falls back to the generic failure.
func backendCode(err error) string {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return apperrors.ErrCodeNetwork
	case codes.ResourceExhausted:
		return apperrors.ErrCodeTooManyRequests
	default:
		return apperrors.ErrCodeInternal
	}
}
