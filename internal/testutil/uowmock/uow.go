package uowmock

import (
	"context"

	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/domain/uow"
)

// UoW runs the callback directly against the given repos, without a
// real transaction. WithinRequestTx loads the request through the
// repo's locking method so mocks can observe the lookup.
type UoW struct {
	Repos uow.Repos
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(u.Repos)
}

func (u *UoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *loan.LoanRequest) error) error {
	req, err := u.Repos.LoanRequests.GetByRequestIDForUpdate(ctx, requestID)
	if err != nil {
		return err
	}
	return fn(u.Repos, req)
}
