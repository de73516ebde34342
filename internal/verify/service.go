package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"verifyserver/internal/codestore"
	"verifyserver/internal/mailer"
)

// codeTTL is the validity window of an issued code. It is fixed, not
// configurable per request; the mail body states the same window.
const codeTTL = 180 * time.Second

// Store is the expiring record store the orchestrator needs. Satisfied by
// *codestore.Store.
type Store interface {
	Fetch(ctx context.Context, email string) (string, error)
	Save(ctx context.Context, email, code string, ttl time.Duration) error
}

// Outcome is the terminal state of one issuance attempt.
type Outcome int

const (
	// OutcomeDelivered means the code was stored (or reused) and the mail was
	// accepted by the transport.
	OutcomeDelivered Outcome = iota + 1
	// OutcomeStoreFailure means the store rejected the new record; no mail was
	// attempted.
	OutcomeStoreFailure
	// OutcomeDeliveryFailure means the mail transport rejected the message; the
	// stored record is left to expire on its own.
	OutcomeDeliveryFailure
	// OutcomeInternalFailure means the store could not be read.
	OutcomeInternalFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeStoreFailure:
		return "store failure"
	case OutcomeDeliveryFailure:
		return "delivery failure"
	case OutcomeInternalFailure:
		return "internal failure"
	default:
		return "unknown"
	}
}

// Result is what one issuance attempt produced. Code is set only on
// OutcomeDelivered.
type Result struct {
	Email   string
	Code    string
	Outcome Outcome
}

// Service issues verification codes: it reuses a still-live cached code or
// mints and stores a new one, then dispatches it by mail. Collaborators are
// injected once at construction and shared across invocations; the Service
// itself holds no per-request state.
type Service struct {
	store    Store
	mailer   mailer.Mailer
	from     string
	logger   *slog.Logger
	generate func(length int) (string, error)
}

func NewService(store Store, m mailer.Mailer, from string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		mailer:   m,
		from:     from,
		logger:   logger,
		generate: generateCode,
	}
}

// Issue runs one issuance attempt for email: exactly one store read, at most
// one store write, at most one mail send. Collaborator failures are normalized
// into the Result outcome; a non-nil error is returned only for faults outside
// that taxonomy (a recovered panic or a failed code generation) and never
// together with a usable Result.
func (s *Service) Issue(ctx context.Context, email string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("issue code for %s: panic: %v", email, r)
		}
	}()

	result.Email = email

	code, fetchErr := s.store.Fetch(ctx, email)
	switch {
	case fetchErr == nil:
		// Reuse path: the outstanding code is authoritative and is mailed
		// again. Repeat requests inside the TTL window are not suppressed.
		s.logger.Info("reusing outstanding code", slog.String("email", email))

	case errors.Is(fetchErr, codestore.ErrNotFound):
		code, err = s.generate(codeLength)
		if err != nil {
			return Result{}, fmt.Errorf("generate code: %w", err)
		}
		if saveErr := s.store.Save(ctx, email, code, codeTTL); saveErr != nil {
			s.logger.Error("failed to store code", slog.String("email", email), slog.Any("err", saveErr))
			result.Outcome = OutcomeStoreFailure
			return result, nil
		}

	default:
		s.logger.Error("failed to read code store", slog.String("email", email), slog.Any("err", fetchErr))
		result.Outcome = OutcomeInternalFailure
		return result, nil
	}

	receipt, sendErr := s.mailer.Send(ctx, buildMessage(s.from, email, code))
	if sendErr != nil {
		s.logger.Error("failed to send code mail", slog.String("email", email), slog.Any("err", sendErr))
		result.Outcome = OutcomeDeliveryFailure
		return result, nil
	}

	s.logger.Info("code delivered", slog.String("email", email), slog.String("receipt", receipt))
	result.Code = code
	result.Outcome = OutcomeDelivered
	return result, nil
}

func buildMessage(from, to, code string) mailer.Message {
	return mailer.Message{
		From:     from,
		To:       to,
		Subject:  "Verification Code",
		TextBody: fmt.Sprintf("Your verification code is %s. Please complete registration within three minutes.", code),
		HTMLBody: fmt.Sprintf("<p>Your verification code is <b>%s</b>. Please complete registration within three minutes.</p>", code),
	}
}
