package iohistory

import (
	"time"

	"github.com/prgate/prgate/internal/contract"
	"github.com/prgate/prgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, pr schema.PRContext, environments []string) (int64, error) {
	args := m.Called(startTime, pr, environments)
	return args.Get(0).(int64), args.Error(1)
}

// RecordCheckResult implements the HistoryStore interface.
func (m *MockHistoryStore) RecordCheckResult(runID int64, result schema.CheckResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// CompleteRun implements the HistoryStore interface.
func (m *MockHistoryStore) CompleteRun(runID int64, outcome *schema.RunOutcome) error {
	args := m.Called(runID, outcome)
	return args.Error(0)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllCheckRecords implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllCheckRecords() ([]schema.HistoryCheckRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.HistoryCheckRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
