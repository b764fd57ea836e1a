package fichebundle

import (
	"errors"
	"sync/atomic"
	"time"

	"cardioapp_backend/app/core"
)

// Compile-time check to ensure MockFicheStore implements FicheStoreContract
var _ FicheStoreContract = (*MockFicheStore)(nil)

// MockFicheStore is a mock implementation of FicheStoreContract.
type MockFicheStore struct {
	AppendFunc  func(token string, submittedAt time.Time, rawPayload string) (*FicheRecord, error)
	ListFunc    func(paging *core.Paging) ([]FicheRecord, error)
	ListAllFunc func() ([]FicheRecord, error)

	AppendCallCount  int32
	ListCallCount    int32
	ListAllCallCount int32
}

func (m *MockFicheStore) Append(token string, submittedAt time.Time, rawPayload string) (*FicheRecord, error) {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendFunc != nil {
		return m.AppendFunc(token, submittedAt, rawPayload)
	}
	return &FicheRecord{Token: token, SubmittedAt: submittedAt, RawPayload: rawPayload}, nil
}

func (m *MockFicheStore) List(paging *core.Paging) ([]FicheRecord, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListFunc != nil {
		return m.ListFunc(paging)
	}
	return nil, errors.New("ListFunc not implemented in mock")
}

func (m *MockFicheStore) ListAll() ([]FicheRecord, error) {
	atomic.AddInt32(&m.ListAllCallCount, 1)
	if m.ListAllFunc != nil {
		return m.ListAllFunc()
	}
	return nil, errors.New("ListAllFunc not implemented in mock")
}
