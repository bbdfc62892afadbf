package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wyfcoding/defaultmanagement/internal/reason/domain"
)

// Default reason repository

type defaultReasonRepository struct {
	db *gorm.DB
}

func NewDefaultReasonRepository(db *gorm.DB) domain.DefaultReasonRepository {
	return &defaultReasonRepository{db: db}
}

func (r *defaultReasonRepository) Save(ctx context.Context, reason *domain.DefaultReason) error {
	return r.db.WithContext(ctx).Save(reason).Error
}

func (r *defaultReasonRepository) GetByID(ctx context.Context, id uint) (*domain.DefaultReason, error) {
	var reason domain.DefaultReason
	err := r.db.WithContext(ctx).First(&reason, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default reason: %w", err)
	}
	return &reason, nil
}

func (r *defaultReasonRepository) ListAll(ctx context.Context) ([]*domain.DefaultReason, error) {
	var reasons []*domain.DefaultReason
	err := r.db.WithContext(ctx).Order("sort_order asc").Find(&reasons).Error
	return reasons, err
}

func (r *defaultReasonRepository) ListEnabled(ctx context.Context) ([]*domain.DefaultReason, error) {
	var reasons []*domain.DefaultReason
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("sort_order asc").Find(&reasons).Error
	return reasons, err
}

func (r *defaultReasonRepository) EnabledIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&domain.DefaultReason{}).
		Where("id IN ? AND enabled = ?", ids, true).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check default reasons: %w", err)
	}
	return found, nil
}

func (r *defaultReasonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.DefaultReason{}, id).Error
}

// Renewal reason repository

type renewalReasonRepository struct {
	db *gorm.DB
}

func NewRenewalReasonRepository(db *gorm.DB) domain.RenewalReasonRepository {
	return &renewalReasonRepository{db: db}
}

func (r *renewalReasonRepository) Save(ctx context.Context, reason *domain.RenewalReason) error {
	return r.db.WithContext(ctx).Save(reason).Error
}

func (r *renewalReasonRepository) GetByID(ctx context.Context, id uint) (*domain.RenewalReason, error) {
	var reason domain.RenewalReason
	err := r.db.WithContext(ctx).First(&reason, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get renewal reason: %w", err)
	}
	return &reason, nil
}

func (r *renewalReasonRepository) ListAll(ctx context.Context) ([]*domain.RenewalReason, error) {
	var reasons []*domain.RenewalReason
	err := r.db.WithContext(ctx).Order("sort_order asc").Find(&reasons).Error
	return reasons, err
}

func (r *renewalReasonRepository) ListEnabled(ctx context.Context) ([]*domain.RenewalReason, error) {
	var reasons []*domain.RenewalReason
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("sort_order asc").Find(&reasons).Error
	return reasons, err
}

func (r *renewalReasonRepository) EnabledIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&domain.RenewalReason{}).
		Where("id IN ? AND enabled = ?", ids, true).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check renewal reasons: %w", err)
	}
	return found, nil
}

func (r *renewalReasonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RenewalReason{}, id).Error
}
