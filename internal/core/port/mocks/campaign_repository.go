// Package mocks contains hand-written testify mocks over the port
// interfaces, used by the usecase tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"spec-tracker/internal/core/domain"
)

// CampaignRepository is a mock implementation of port.CampaignRepository.
type CampaignRepository struct {
	mock.Mock
}

func (m *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	var campaigns []domain.Campaign
	if v := args.Get(0); v != nil {
		campaigns = v.([]domain.Campaign)
	}
	return campaigns, args.Error(1)
}

func (m *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	var c *domain.Campaign
	if v := args.Get(0); v != nil {
		c = v.(*domain.Campaign)
	}
	return c, args.Error(1)
}

func (m *CampaignRepository) UpdateCampaign(ctx context.Context, id int64, c domain.Campaign) error {
	return m.Called(ctx, id, c).Error(0)
}

func (m *CampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CampaignRepository) SaveNotes(ctx context.Context, campaignID int64, notes, editor string) error {
	return m.Called(ctx, campaignID, notes, editor).Error(0)
}

func (m *CampaignRepository) LatestEdit(ctx context.Context, campaignID int64) (*domain.NotesEntry, error) {
	args := m.Called(ctx, campaignID)
	var e *domain.NotesEntry
	if v := args.Get(0); v != nil {
		e = v.(*domain.NotesEntry)
	}
	return e, args.Error(1)
}

func (m *CampaignRepository) NotesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error) {
	args := m.Called(ctx, campaignID, limit)
	var entries []domain.NotesEntry
	if v := args.Get(0); v != nil {
		entries = v.([]domain.NotesEntry)
	}
	return entries, args.Error(1)
}

func (m *CampaignRepository) NextSpecVersion(ctx context.Context, campaignID int64) (int, error) {
	args := m.Called(ctx, campaignID)
	return args.Int(0), args.Error(1)
}

func (m *CampaignRepository) InsertSpecVersion(ctx context.Context, v domain.SpecVersion) error {
	return m.Called(ctx, v).Error(0)
}

func (m *CampaignRepository) ListSpecVersions(ctx context.Context, campaignID int64) ([]domain.SpecVersion, error) {
	args := m.Called(ctx, campaignID)
	var versions []domain.SpecVersion
	if v := args.Get(0); v != nil {
		versions = v.([]domain.SpecVersion)
	}
	return versions, args.Error(1)
}
