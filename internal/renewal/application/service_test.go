package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

type fakeRenewalRepo struct {
	renewals  map[string]*domain.RenewalApplication
	normaled  map[uint]bool // customer_id -> renewed back to normal
	nextRowID uint
	createErr error // 模拟落库事务内的重查失败
}

func newFakeRenewalRepo() *fakeRenewalRepo {
	return &fakeRenewalRepo{
		renewals: make(map[string]*domain.RenewalApplication),
		normaled: make(map[uint]bool),
	}
}

func (f *fakeRenewalRepo) Create(_ context.Context, app *domain.RenewalApplication) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.renewals {
		if existing.CustomerID == app.CustomerID && existing.Status == domain.StatusPending {
			return domain.ErrPendingRenewalExists
		}
	}
	f.nextRowID++
	app.ID = f.nextRowID
	f.renewals[app.RenewalID] = app
	return nil
}

func (f *fakeRenewalRepo) GetByRenewalID(_ context.Context, renewalID string) (*domain.RenewalApplication, error) {
	app, ok := f.renewals[renewalID]
	if !ok {
		return nil, nil
	}
	clone := *app
	return &clone, nil
}

func (f *fakeRenewalRepo) List(_ context.Context, q domain.ListQuery) ([]*domain.RenewalApplication, int64, error) {
	var out []*domain.RenewalApplication
	for _, app := range f.renewals {
		if q.Status != "" && app.Status != q.Status {
			continue
		}
		if q.Applicant != "" && app.Applicant != q.Applicant {
			continue
		}
		clone := *app
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRenewalRepo) HasPending(_ context.Context, customerID uint) (bool, error) {
	for _, app := range f.renewals {
		if app.CustomerID == customerID && app.Status == domain.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRenewalRepo) SaveDecision(_ context.Context, app *domain.RenewalApplication) error {
	stored, ok := f.renewals[app.RenewalID]
	if !ok {
		return domain.ErrRenewalNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrAlreadyDecided
	}
	*stored = *app
	if app.Status == domain.StatusApproved {
		f.normaled[app.CustomerID] = true
	}
	return nil
}

type fakeDefaultRecordGateway struct {
	records map[uint]*domain.ActiveDefaultRecord
}

func (f *fakeDefaultRecordGateway) ActiveDefault(_ context.Context, customerID uint) (*domain.ActiveDefaultRecord, error) {
	return f.records[customerID], nil
}

type fakeReasonGateway struct {
	enabled map[uint]bool
}

func (f *fakeReasonGateway) Available(_ context.Context, id uint) (bool, error) {
	return f.enabled[id], nil
}

type fakePublisher struct {
	topics []string
}

func (f *fakePublisher) Publish(_ context.Context, topic string, _ string, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

func newTestService(repo *fakeRenewalRepo, publisher *fakePublisher) *RenewalService {
	defaults := &fakeDefaultRecordGateway{records: map[uint]*domain.ActiveDefaultRecord{
		1: {CustomerID: 1, CustomerName: "宁德时代"},
	}}
	reasons := &fakeReasonGateway{enabled: map[uint]bool{1: true, 2: false}}
	return NewRenewalService(repo, defaults, reasons, publisher, metrics.New("test"))
}

func validCreateCommand() CreateRenewalCommand {
	return CreateRenewalCommand{
		CustomerID:      1,
		RenewalReasonID: 1,
		Remark:          "已结清全部违约金额",
		Applicant:       "operator",
	}
}

func TestCreateRenewal(t *testing.T) {
	repo := newFakeRenewalRepo()
	publisher := &fakePublisher{}
	svc := newTestService(repo, publisher)

	dto, err := svc.CreateRenewal(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.Contains(t, dto.RenewalID, "REN")
	assert.Equal(t, string(domain.StatusPending), dto.Status)
	assert.Equal(t, uint(1), dto.CustomerID)
	assert.Contains(t, publisher.topics, "renewal.submitted")
}

func TestCreateRenewalRequiresDefaultStatus(t *testing.T) {
	svc := newTestService(newFakeRenewalRepo(), &fakePublisher{})

	cmd := validCreateCommand()
	cmd.CustomerID = 2 // 未违约
	_, err := svc.CreateRenewal(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrCustomerNotInDefault)
}

func TestCreateRenewalSurfacesConflictFromStore(t *testing.T) {
	// 前置检查通过后，并发事务先一步提交了待审申请，
	// 落库时的事务内重查要把冲突原样抛给调用方
	repo := newFakeRenewalRepo()
	repo.createErr = domain.ErrPendingRenewalExists
	svc := newTestService(repo, &fakePublisher{})

	_, err := svc.CreateRenewal(context.Background(), validCreateCommand())
	assert.ErrorIs(t, err, domain.ErrPendingRenewalExists)
	assert.Empty(t, repo.renewals)
}

func TestCreateRenewalRejectsDisabledReason(t *testing.T) {
	svc := newTestService(newFakeRenewalRepo(), &fakePublisher{})

	cmd := validCreateCommand()
	cmd.RenewalReasonID = 2
	_, err := svc.CreateRenewal(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrReasonNotAvailable)
}

func TestCreateRenewalRejectsDuplicatePending(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	_, err = svc.CreateRenewal(ctx, validCreateCommand())
	assert.ErrorIs(t, err, domain.ErrPendingRenewalExists)
}

func TestApproveRenewal(t *testing.T) {
	repo := newFakeRenewalRepo()
	publisher := &fakePublisher{}
	svc := newTestService(repo, publisher)
	ctx := context.Background()

	dto, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	err = svc.ApproveRenewal(ctx, ApproveCommand{
		ApproveItem: ApproveItem{RenewalID: dto.RenewalID, Approved: true, Remark: "同意"},
		Approver:    "auditor",
	})
	require.NoError(t, err)

	stored := repo.renewals[dto.RenewalID]
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.True(t, repo.normaled[stored.CustomerID], "approval should restore customer to normal")
	assert.Contains(t, publisher.topics, "renewal.decided")
}

func TestApproveRenewalTwice(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	dto, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	cmd := ApproveCommand{
		ApproveItem: ApproveItem{RenewalID: dto.RenewalID, Approved: false},
		Approver:    "auditor",
	}
	require.NoError(t, svc.ApproveRenewal(ctx, cmd))

	err = svc.ApproveRenewal(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
}

func TestRejectedRenewalAllowsNewApplication(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	dto, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	require.NoError(t, svc.ApproveRenewal(ctx, ApproveCommand{
		ApproveItem: ApproveItem{RenewalID: dto.RenewalID, Approved: false},
		Approver:    "auditor",
	}))

	// 被驳回不再占用待审名额
	_, err = svc.CreateRenewal(ctx, validCreateCommand())
	assert.NoError(t, err)
}

func TestBatchApproveRenewals(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	dto, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	result := svc.BatchApprove(ctx, BatchApproveCommand{
		Approver: "auditor",
		Items: []ApproveItem{
			{RenewalID: dto.RenewalID, Approved: true},
			{RenewalID: "REN-missing", Approved: true},
		},
	})

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	require.Len(t, result.Details, 2)
	assert.True(t, result.Details[0].Success)
	assert.False(t, result.Details[1].Success)
	assert.NotEmpty(t, result.Details[1].Message)
}

func TestDetailOwnScopeReturnsPermissionError(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	dto, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	foreign := identitydomain.ResolveScope(identitydomain.RoleOperator, "another-operator")
	_, err = svc.Detail(ctx, dto.RenewalID, foreign)
	assert.ErrorIs(t, err, domain.ErrNoPermission)

	owner := identitydomain.ResolveScope(identitydomain.RoleOperator, "operator")
	got, err := svc.Detail(ctx, dto.RenewalID, owner)
	require.NoError(t, err)
	assert.Equal(t, dto.RenewalID, got.RenewalID)
}

func TestDetailMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(newFakeRenewalRepo(), &fakePublisher{})

	scope := identitydomain.ResolveScope(identitydomain.RoleAdmin, "admin")
	_, err := svc.Detail(context.Background(), "REN-missing", scope)
	assert.ErrorIs(t, err, domain.ErrRenewalNotFound)
}

func TestListOwnScopeFiltersByApplicant(t *testing.T) {
	repo := newFakeRenewalRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreateRenewal(ctx, validCreateCommand())
	require.NoError(t, err)

	foreign := identitydomain.ResolveScope(identitydomain.RoleOperator, "another-operator")
	result, err := svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 10}, foreign)
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	owner := identitydomain.ResolveScope(identitydomain.RoleOperator, "operator")
	result, err = svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 10}, owner)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}
