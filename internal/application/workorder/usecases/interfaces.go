package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
)

// TransactionManager runs fn atomically; repositories called with the
// returned context join the same transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CaptchaVerifier checks the one-time code presented on the
// unauthenticated maintenance endpoints.
type CaptchaVerifier interface {
	Verify(ctx context.Context, caseID, presented string) error
}

// CaptchaIssuer hands out a fresh code for a case, rate limited per
// equipment.
type CaptchaIssuer interface {
	Issue(ctx context.Context, caseID string, eid uint, phone string) error
}

// DispatchNotifier emails the assigned worker after a dispatch commits.
type DispatchNotifier interface {
	NotifyDispatch(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error
	Resend(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error
}
