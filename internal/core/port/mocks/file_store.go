package mocks

import (
	"github.com/stretchr/testify/mock"
)

// FileStore is a mock implementation of port.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) EnsureDir(campaignID int64) error {
	return m.Called(campaignID).Error(0)
}

func (m *FileStore) Exists(campaignID int64, filename string) bool {
	return m.Called(campaignID, filename).Bool(0)
}

func (m *FileStore) Save(campaignID int64, filename string, content []byte) error {
	return m.Called(campaignID, filename, content).Error(0)
}

func (m *FileStore) Remove(campaignID int64, filename string) error {
	return m.Called(campaignID, filename).Error(0)
}

func (m *FileStore) Resolve(campaignID int64, filename string) (string, bool) {
	args := m.Called(campaignID, filename)
	return args.String(0), args.Bool(1)
}
