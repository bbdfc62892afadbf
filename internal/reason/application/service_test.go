package application

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/defaultmanagement/internal/reason/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
)

type fakeDefaultReasonRepo struct {
	reasons map[uint]*domain.DefaultReason
	nextID  uint
}

func newFakeDefaultReasonRepo() *fakeDefaultReasonRepo {
	return &fakeDefaultReasonRepo{reasons: make(map[uint]*domain.DefaultReason)}
}

func (f *fakeDefaultReasonRepo) Save(_ context.Context, r *domain.DefaultReason) error {
	if r.ID == 0 {
		f.nextID++
		r.ID = f.nextID
	}
	clone := *r
	f.reasons[r.ID] = &clone
	return nil
}

func (f *fakeDefaultReasonRepo) GetByID(_ context.Context, id uint) (*domain.DefaultReason, error) {
	r, ok := f.reasons[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (f *fakeDefaultReasonRepo) ListAll(_ context.Context) ([]*domain.DefaultReason, error) {
	return f.list(func(*domain.DefaultReason) bool { return true }), nil
}

func (f *fakeDefaultReasonRepo) ListEnabled(_ context.Context) ([]*domain.DefaultReason, error) {
	return f.list(func(r *domain.DefaultReason) bool { return r.Enabled }), nil
}

func (f *fakeDefaultReasonRepo) EnabledIDs(_ context.Context, ids []uint) ([]uint, error) {
	var out []uint
	for _, id := range ids {
		if r, ok := f.reasons[id]; ok && r.Enabled {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeDefaultReasonRepo) Delete(_ context.Context, id uint) error {
	delete(f.reasons, id)
	return nil
}

func (f *fakeDefaultReasonRepo) list(keep func(*domain.DefaultReason) bool) []*domain.DefaultReason {
	var out []*domain.DefaultReason
	for _, r := range f.reasons {
		if keep(r) {
			clone := *r
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

type fakeRenewalReasonRepo struct {
	reasons map[uint]*domain.RenewalReason
	nextID  uint
}

func newFakeRenewalReasonRepo() *fakeRenewalReasonRepo {
	return &fakeRenewalReasonRepo{reasons: make(map[uint]*domain.RenewalReason)}
}

func (f *fakeRenewalReasonRepo) Save(_ context.Context, r *domain.RenewalReason) error {
	if r.ID == 0 {
		f.nextID++
		r.ID = f.nextID
	}
	clone := *r
	f.reasons[r.ID] = &clone
	return nil
}

func (f *fakeRenewalReasonRepo) GetByID(_ context.Context, id uint) (*domain.RenewalReason, error) {
	r, ok := f.reasons[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRenewalReasonRepo) ListAll(_ context.Context) ([]*domain.RenewalReason, error) {
	var out []*domain.RenewalReason
	for _, r := range f.reasons {
		clone := *r
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRenewalReasonRepo) ListEnabled(_ context.Context) ([]*domain.RenewalReason, error) {
	var out []*domain.RenewalReason
	for _, r := range f.reasons {
		if r.Enabled {
			clone := *r
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeRenewalReasonRepo) EnabledIDs(_ context.Context, ids []uint) ([]uint, error) {
	var out []uint
	for _, id := range ids {
		if r, ok := f.reasons[id]; ok && r.Enabled {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeRenewalReasonRepo) Delete(_ context.Context, id uint) error {
	delete(f.reasons, id)
	return nil
}

func newTestService() (*ReasonService, *fakeDefaultReasonRepo, *fakeRenewalReasonRepo) {
	defaults := newFakeDefaultReasonRepo()
	renewals := newFakeRenewalReasonRepo()
	return NewReasonService(defaults, renewals), defaults, renewals
}

func TestCreateDefaultReason(t *testing.T) {
	svc, _, _ := newTestService()

	dto, err := svc.CreateDefaultReason(context.Background(), CreateReasonCommand{Reason: "头寸缺口过多", SortOrder: 1})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.True(t, dto.Enabled)

	_, err = svc.CreateDefaultReason(context.Background(), CreateReasonCommand{})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdateDefaultReasonDisable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	dto, err := svc.CreateDefaultReason(ctx, CreateReasonCommand{Reason: "对外负债数额巨大"})
	require.NoError(t, err)

	disabled := false
	updated, err := svc.UpdateDefaultReason(ctx, UpdateReasonCommand{ID: dto.ID, Enabled: &disabled})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "对外负债数额巨大", updated.Reason)

	list, err := svc.ListDefaultReasons(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.ListDefaultReasons(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateDefaultReasonNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateDefaultReason(context.Background(), UpdateReasonCommand{ID: 42, Reason: "x"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteDefaultReason(t *testing.T) {
	svc, defaults, _ := newTestService()
	ctx := context.Background()

	dto, err := svc.CreateDefaultReason(ctx, CreateReasonCommand{Reason: "进入破产程序"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDefaultReason(ctx, dto.ID))
	assert.Empty(t, defaults.reasons)

	err = svc.DeleteDefaultReason(ctx, dto.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListRenewalReasonsEnabledOrdered(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateRenewalReason(ctx, CreateReasonCommand{Reason: "正常结算后解除", SortOrder: 2})
	require.NoError(t, err)
	first, err := svc.CreateRenewalReason(ctx, CreateReasonCommand{Reason: "结清全部违约金额", SortOrder: 1})
	require.NoError(t, err)
	disabled, err := svc.CreateRenewalReason(ctx, CreateReasonCommand{Reason: "已废弃口径", SortOrder: 0})
	require.NoError(t, err)

	off := false
	_, err = svc.UpdateRenewalReason(ctx, UpdateReasonCommand{ID: disabled.ID, Enabled: &off})
	require.NoError(t, err)

	list, err := svc.ListRenewalReasons(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}
