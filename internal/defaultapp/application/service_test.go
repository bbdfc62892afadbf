package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

// fakeDefaultRecord 模拟 default_customers 表的一行
type fakeDefaultRecord struct {
	applicationID string
	customerID    uint
	active        bool
}

type fakeApplicationRepo struct {
	apps           map[string]*domain.DefaultApplication
	reasonLinks    map[uint][]uint
	attachments    map[uint][]domain.Attachment
	customers      map[string]uint // customer_name -> customer_id
	defaultRecords []fakeDefaultRecord
	nextRowID      uint
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:        make(map[string]*domain.DefaultApplication),
		reasonLinks: make(map[uint][]uint),
		attachments: make(map[uint][]domain.Attachment),
		customers:   make(map[string]uint),
	}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.DefaultApplication, reasonIDs []uint, attachments []domain.Attachment) error {
	f.nextRowID++
	app.ID = f.nextRowID
	if id, ok := f.customers[app.CustomerName]; ok {
		app.CustomerID = id
	} else {
		f.customers[app.CustomerName] = app.ID
		app.CustomerID = app.ID
	}
	f.apps[app.ApplicationID] = app
	f.reasonLinks[app.ID] = reasonIDs
	f.attachments[app.ID] = attachments
	return nil
}

// activeDefaults 客户当前生效的违约记录
func (f *fakeApplicationRepo) activeDefaults(customerID uint) []fakeDefaultRecord {
	var out []fakeDefaultRecord
	for _, rec := range f.defaultRecords {
		if rec.customerID == customerID && rec.active {
			out = append(out, rec)
		}
	}
	return out
}

func (f *fakeApplicationRepo) GetByApplicationID(_ context.Context, applicationID string) (*domain.DefaultApplication, error) {
	app, ok := f.apps[applicationID]
	if !ok {
		return nil, nil
	}
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationRepo) List(_ context.Context, q domain.ListQuery) ([]*domain.DefaultApplication, int64, error) {
	var out []*domain.DefaultApplication
	for _, app := range f.apps {
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

func (f *fakeApplicationRepo) ReasonIDs(_ context.Context, rowID uint) ([]uint, error) {
	return f.reasonLinks[rowID], nil
}

func (f *fakeApplicationRepo) Attachments(_ context.Context, rowID uint) ([]domain.Attachment, error) {
	return f.attachments[rowID], nil
}

func (f *fakeApplicationRepo) SaveDecision(_ context.Context, app *domain.DefaultApplication) error {
	stored, ok := f.apps[app.ApplicationID]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if stored.Status != domain.StatusPending {
		return domain.ErrAlreadyDecided
	}
	*stored = *app
	if app.Status == domain.StatusApproved {
		for i := range f.defaultRecords {
			if f.defaultRecords[i].customerID == app.CustomerID {
				f.defaultRecords[i].active = false
			}
		}
		f.defaultRecords = append(f.defaultRecords, fakeDefaultRecord{
			applicationID: app.ApplicationID,
			customerID:    app.CustomerID,
			active:        true,
		})
	}
	return nil
}

func (f *fakeApplicationRepo) CountActiveDefaults(_ context.Context) (int64, error) {
	seen := make(map[uint]struct{})
	for _, rec := range f.defaultRecords {
		if rec.active {
			seen[rec.customerID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

type fakeReasonGateway struct {
	enabled map[uint]bool
}

func (f *fakeReasonGateway) AvailableReasonIDs(_ context.Context, ids []uint) ([]uint, error) {
	var out []uint
	seen := make(map[uint]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if f.enabled[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakePublisher struct {
	topics []string
}

func (f *fakePublisher) Publish(_ context.Context, topic string, _ string, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

func newTestService(repo *fakeApplicationRepo, publisher *fakePublisher) *DefaultApplicationService {
	gateway := &fakeReasonGateway{enabled: map[uint]bool{1: true, 2: true, 3: false}}
	return NewDefaultApplicationService(repo, gateway, publisher, metrics.New("test"))
}

func validCreateCommand() CreateApplicationCommand {
	return CreateApplicationCommand{
		CustomerName:         "宁德时代",
		Severity:             domain.SeverityHigh,
		DefaultReasons:       []uint{1, 2},
		LatestExternalRating: "AA",
		Remark:               "连续两个季度亏损",
		Applicant:            "operator",
	}
}

func TestCreateApplication(t *testing.T) {
	repo := newFakeApplicationRepo()
	publisher := &fakePublisher{}
	svc := newTestService(repo, publisher)

	detail, err := svc.CreateApplication(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.NotEmpty(t, detail.ApplicationID)
	assert.Equal(t, string(domain.StatusPending), detail.Status)
	assert.Equal(t, []uint{1, 2}, detail.DefaultReasons)
	assert.Contains(t, publisher.topics, "default.application.submitted")
}

func TestCreateApplicationValidation(t *testing.T) {
	svc := newTestService(newFakeApplicationRepo(), &fakePublisher{})
	ctx := context.Background()

	cmd := validCreateCommand()
	cmd.CustomerName = ""
	_, err := svc.CreateApplication(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)

	cmd = validCreateCommand()
	cmd.Severity = "EXTREME"
	_, err = svc.CreateApplication(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidSeverity)

	cmd = validCreateCommand()
	cmd.DefaultReasons = nil
	_, err = svc.CreateApplication(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrNoReasons)
}

func TestCreateApplicationRejectsDisabledReason(t *testing.T) {
	svc := newTestService(newFakeApplicationRepo(), &fakePublisher{})

	cmd := validCreateCommand()
	cmd.DefaultReasons = []uint{1, 3} // 3 已停用
	_, err := svc.CreateApplication(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrReasonNotAvailable)

	cmd.DefaultReasons = []uint{1, 99} // 99 不存在
	_, err = svc.CreateApplication(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrReasonNotAvailable)
}

func TestApproveApplication(t *testing.T) {
	repo := newFakeApplicationRepo()
	publisher := &fakePublisher{}
	svc := newTestService(repo, publisher)
	ctx := context.Background()

	detail, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)

	err = svc.ApproveApplication(ctx, ApproveCommand{
		ApproveItem: ApproveItem{ApplicationID: detail.ApplicationID, Approved: true, Remark: "属实"},
		Approver:    "auditor",
	})
	require.NoError(t, err)

	stored := repo.apps[detail.ApplicationID]
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, "auditor", stored.Approver)
	assert.NotNil(t, stored.ApproveTime)
	assert.Len(t, repo.activeDefaults(stored.CustomerID), 1, "approval should materialize one active default record")
	assert.Contains(t, publisher.topics, "default.application.decided")
}

func TestApproveApplicationNotFound(t *testing.T) {
	svc := newTestService(newFakeApplicationRepo(), &fakePublisher{})

	err := svc.ApproveApplication(context.Background(), ApproveCommand{
		ApproveItem: ApproveItem{ApplicationID: "APP-missing", Approved: true},
		Approver:    "auditor",
	})
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestApproveApplicationTwice(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	detail, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)

	cmd := ApproveCommand{
		ApproveItem: ApproveItem{ApplicationID: detail.ApplicationID, Approved: false},
		Approver:    "auditor",
	}
	require.NoError(t, svc.ApproveApplication(ctx, cmd))

	err = svc.ApproveApplication(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	// 驳回不产生违约标记
	assert.Empty(t, repo.defaultRecords)
}

func TestApproveSecondApplicationReplacesActiveDefault(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	first, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)
	second, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)
	require.Equal(t, first.CustomerID, second.CustomerID)

	for _, id := range []string{first.ApplicationID, second.ApplicationID} {
		require.NoError(t, svc.ApproveApplication(ctx, ApproveCommand{
			ApproveItem: ApproveItem{ApplicationID: id, Approved: true},
			Approver:    "auditor",
		}))
	}

	// 后批准的替换先前的生效记录，同一客户不会叠加出两条
	active := repo.activeDefaults(first.CustomerID)
	require.Len(t, active, 1)
	assert.Equal(t, second.ApplicationID, active[0].applicationID)
}

func TestCreateApplicationDeduplicatesReasons(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})

	cmd := validCreateCommand()
	cmd.DefaultReasons = []uint{1, 2, 1}
	detail, err := svc.CreateApplication(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2}, detail.DefaultReasons)
	stored := repo.apps[detail.ApplicationID]
	assert.Equal(t, []uint{1, 2}, repo.reasonLinks[stored.ID])
}

func TestBatchApproveIsolatesFailures(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	first, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)
	cmd := validCreateCommand()
	cmd.CustomerName = "比亚迪"
	second, err := svc.CreateApplication(ctx, cmd)
	require.NoError(t, err)

	result := svc.BatchApprove(ctx, BatchApproveCommand{
		Approver: "auditor",
		Items: []ApproveItem{
			{ApplicationID: first.ApplicationID, Approved: true},
			{ApplicationID: "APP-missing", Approved: true},
			{ApplicationID: second.ApplicationID, Approved: false},
		},
	})

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	require.Len(t, result.Details, 3)
	assert.True(t, result.Details[0].Success)
	assert.False(t, result.Details[1].Success)
	assert.Equal(t, "APP-missing", result.Details[1].ApplicationID)
	assert.NotEmpty(t, result.Details[1].Message)
	assert.True(t, result.Details[2].Success)

	assert.Equal(t, domain.StatusApproved, repo.apps[first.ApplicationID].Status)
	assert.Equal(t, domain.StatusRejected, repo.apps[second.ApplicationID].Status)
}

func TestListOwnScopeFiltersByApplicant(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	mine := validCreateCommand()
	_, err := svc.CreateApplication(ctx, mine)
	require.NoError(t, err)
	other := validCreateCommand()
	other.CustomerName = "比亚迪"
	other.Applicant = "someone-else"
	_, err = svc.CreateApplication(ctx, other)
	require.NoError(t, err)

	scope := identitydomain.ResolveScope(identitydomain.RoleOperator, "operator")
	result, err := svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 10}, scope)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "operator", result.Items[0].Applicant)

	// own 范围下显式指定他人 applicant 也被覆盖
	result, err = svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 10, Applicant: "someone-else"}, scope)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "operator", result.Items[0].Applicant)
}

func TestListBasicScopeHidesSensitiveFields(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)

	scope := identitydomain.ResolveScope(identitydomain.RoleUser, "viewer")
	result, err := svc.List(ctx, domain.ListQuery{Page: 1, PageSize: 10}, scope)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.NotEmpty(t, item.CustomerName)
	assert.NotEmpty(t, item.Status)
	assert.Empty(t, item.Applicant)
	assert.Empty(t, item.Remark)
	assert.Empty(t, item.LatestExternalRating)
}

func TestDetailOwnScopeHidesForeignAsNotFound(t *testing.T) {
	repo := newFakeApplicationRepo()
	svc := newTestService(repo, &fakePublisher{})
	ctx := context.Background()

	detail, err := svc.CreateApplication(ctx, validCreateCommand())
	require.NoError(t, err)

	scope := identitydomain.ResolveScope(identitydomain.RoleOperator, "another-operator")
	_, err = svc.Detail(ctx, detail.ApplicationID, scope)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

	owner := identitydomain.ResolveScope(identitydomain.RoleOperator, "operator")
	got, err := svc.Detail(ctx, detail.ApplicationID, owner)
	require.NoError(t, err)
	assert.Equal(t, detail.ApplicationID, got.ApplicationID)
	assert.Equal(t, []uint{1, 2}, got.DefaultReasons)
}
