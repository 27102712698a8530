package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockCardStore is a mock of CardStore interface.
type MockCardStore struct {
	ctrl     *gomock.Controller
	recorder *MockCardStoreMockRecorder
	isgomock struct{}
}

// MockCardStoreMockRecorder is the mock recorder for MockCardStore.
type MockCardStoreMockRecorder struct {
	mock *MockCardStore
}

// NewMockCardStore creates a new mock instance.
func NewMockCardStore(ctrl *gomock.Controller) *MockCardStore {
	mock := &MockCardStore{ctrl: ctrl}
	mock.recorder = &MockCardStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCardStore) EXPECT() *MockCardStoreMockRecorder {
	return m.recorder
}

// CreateCard mocks base method.
func (m *MockCardStore) CreateCard(ctx context.Context, card *models.Card) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCard", ctx, card)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateCard indicates an expected call of CreateCard.
func (mr *MockCardStoreMockRecorder) CreateCard(ctx, card any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCard", reflect.TypeOf((*MockCardStore)(nil).CreateCard), ctx, card)
}

// FindCardsByRarity mocks base method.
func (m *MockCardStore) FindCardsByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCardsByRarity", ctx, rarity)
	ret0, _ := ret[0].([]*models.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCardsByRarity indicates an expected call of FindCardsByRarity.
func (mr *MockCardStoreMockRecorder) FindCardsByRarity(ctx, rarity any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCardsByRarity", reflect.TypeOf((*MockCardStore)(nil).FindCardsByRarity), ctx, rarity)
}

// GetCard mocks base method.
func (m *MockCardStore) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCard", ctx, id)
	ret0, _ := ret[0].(*models.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCard indicates an expected call of GetCard.
func (mr *MockCardStoreMockRecorder) GetCard(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCard", reflect.TypeOf((*MockCardStore)(nil).GetCard), ctx, id)
}

// MockImageStore is a mock of ImageStore interface.
type MockImageStore struct {
	ctrl     *gomock.Controller
	recorder *MockImageStoreMockRecorder
	isgomock struct{}
}

// MockImageStoreMockRecorder is the mock recorder for MockImageStore.
type MockImageStoreMockRecorder struct {
	mock *MockImageStore
}

// NewMockImageStore creates a new mock instance.
func NewMockImageStore(ctrl *gomock.Controller) *MockImageStore {
	mock := &MockImageStore{ctrl: ctrl}
	mock.recorder = &MockImageStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockImageStore) EXPECT() *MockImageStoreMockRecorder {
	return m.recorder
}

// PutCardImage mocks base method.
func (m *MockImageStore) PutCardImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutCardImage", ctx, key, data, contentType)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PutCardImage indicates an expected call of PutCardImage.
func (mr *MockImageStoreMockRecorder) PutCardImage(ctx, key, data, contentType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutCardImage", reflect.TypeOf((*MockImageStore)(nil).PutCardImage), ctx, key, data, contentType)
}

// MockLedgerStore is a mock of LedgerStore interface.
type MockLedgerStore struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerStoreMockRecorder
	isgomock struct{}
}

// MockLedgerStoreMockRecorder is the mock recorder for MockLedgerStore.
type MockLedgerStoreMockRecorder struct {
	mock *MockLedgerStore
}

// NewMockLedgerStore creates a new mock instance.
func NewMockLedgerStore(ctrl *gomock.Controller) *MockLedgerStore {
	mock := &MockLedgerStore{ctrl: ctrl}
	mock.recorder = &MockLedgerStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedgerStore) EXPECT() *MockLedgerStoreMockRecorder {
	return m.recorder
}

// AppendOwnership mocks base method.
func (m *MockLedgerStore) AppendOwnership(ctx context.Context, ownership *models.Ownership) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendOwnership", ctx, ownership)
	ret0, _ := ret[0].(error)
	return ret0
}

// AppendOwnership indicates an expected call of AppendOwnership.
func (mr *MockLedgerStoreMockRecorder) AppendOwnership(ctx, ownership any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendOwnership", reflect.TypeOf((*MockLedgerStore)(nil).AppendOwnership), ctx, ownership)
}

// CommitPackOpen mocks base method.
func (m *MockLedgerStore) CommitPackOpen(ctx context.Context, userID string, expected time.Time, openedAt time.Time, records []*models.Ownership) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CommitPackOpen", ctx, userID, expected, openedAt, records)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CommitPackOpen indicates an expected call of CommitPackOpen.
func (mr *MockLedgerStoreMockRecorder) CommitPackOpen(ctx, userID, expected, openedAt, records any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CommitPackOpen", reflect.TypeOf((*MockLedgerStore)(nil).CommitPackOpen), ctx, userID, expected, openedAt, records)
}

// CountOwnershipGroups mocks base method.
func (m *MockLedgerStore) CountOwnershipGroups(ctx context.Context, userID string, rarity models.Rarity) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountOwnershipGroups", ctx, userID, rarity)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountOwnershipGroups indicates an expected call of CountOwnershipGroups.
func (mr *MockLedgerStoreMockRecorder) CountOwnershipGroups(ctx, userID, rarity any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountOwnershipGroups", reflect.TypeOf((*MockLedgerStore)(nil).CountOwnershipGroups), ctx, userID, rarity)
}

// CreateUser mocks base method.
func (m *MockLedgerStore) CreateUser(ctx context.Context, userID string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateUser", ctx, userID)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateUser indicates an expected call of CreateUser.
func (mr *MockLedgerStoreMockRecorder) CreateUser(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateUser", reflect.TypeOf((*MockLedgerStore)(nil).CreateUser), ctx, userID)
}

// GetUser mocks base method.
func (m *MockLedgerStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUser", ctx, userID)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUser indicates an expected call of GetUser.
func (mr *MockLedgerStoreMockRecorder) GetUser(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUser", reflect.TypeOf((*MockLedgerStore)(nil).GetUser), ctx, userID)
}

// HasOwnership mocks base method.
func (m *MockLedgerStore) HasOwnership(ctx context.Context, userID string, cardID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasOwnership", ctx, userID, cardID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HasOwnership indicates an expected call of HasOwnership.
func (mr *MockLedgerStoreMockRecorder) HasOwnership(ctx, userID, cardID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasOwnership", reflect.TypeOf((*MockLedgerStore)(nil).HasOwnership), ctx, userID, cardID)
}

// ListOwnedCards mocks base method.
func (m *MockLedgerStore) ListOwnedCards(ctx context.Context, userID string) ([]*models.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOwnedCards", ctx, userID)
	ret0, _ := ret[0].([]*models.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOwnedCards indicates an expected call of ListOwnedCards.
func (mr *MockLedgerStoreMockRecorder) ListOwnedCards(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOwnedCards", reflect.TypeOf((*MockLedgerStore)(nil).ListOwnedCards), ctx, userID)
}

// ListOwnership mocks base method.
func (m *MockLedgerStore) ListOwnership(ctx context.Context, userID string, filter models.InventoryFilter) ([]*models.OwnershipGroup, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOwnership", ctx, userID, filter)
	ret0, _ := ret[0].([]*models.OwnershipGroup)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOwnership indicates an expected call of ListOwnership.
func (mr *MockLedgerStoreMockRecorder) ListOwnership(ctx, userID, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOwnership", reflect.TypeOf((*MockLedgerStore)(nil).ListOwnership), ctx, userID, filter)
}

// MockTradeStore is a mock of TradeStore interface.
type MockTradeStore struct {
	ctrl     *gomock.Controller
	recorder *MockTradeStoreMockRecorder
	isgomock struct{}
}

// MockTradeStoreMockRecorder is the mock recorder for MockTradeStore.
type MockTradeStoreMockRecorder struct {
	mock *MockTradeStore
}

// NewMockTradeStore creates a new mock instance.
func NewMockTradeStore(ctrl *gomock.Controller) *MockTradeStore {
	mock := &MockTradeStore{ctrl: ctrl}
	mock.recorder = &MockTradeStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTradeStore) EXPECT() *MockTradeStoreMockRecorder {
	return m.recorder
}

// CreateTrade mocks base method.
func (m *MockTradeStore) CreateTrade(ctx context.Context, senderID string, receiverID string, card *models.Card) (*models.Trade, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTrade", ctx, senderID, receiverID, card)
	ret0, _ := ret[0].(*models.Trade)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateTrade indicates an expected call of CreateTrade.
func (mr *MockTradeStoreMockRecorder) CreateTrade(ctx, senderID, receiverID, card any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTrade", reflect.TypeOf((*MockTradeStore)(nil).CreateTrade), ctx, senderID, receiverID, card)
}

// ExpirePendingTrades mocks base method.
func (m *MockTradeStore) ExpirePendingTrades(ctx context.Context, before time.Time) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExpirePendingTrades", ctx, before)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExpirePendingTrades indicates an expected call of ExpirePendingTrades.
func (mr *MockTradeStoreMockRecorder) ExpirePendingTrades(ctx, before any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExpirePendingTrades", reflect.TypeOf((*MockTradeStore)(nil).ExpirePendingTrades), ctx, before)
}

// GetTrade mocks base method.
func (m *MockTradeStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTrade", ctx, id)
	ret0, _ := ret[0].(*models.Trade)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTrade indicates an expected call of GetTrade.
func (mr *MockTradeStoreMockRecorder) GetTrade(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTrade", reflect.TypeOf((*MockTradeStore)(nil).GetTrade), ctx, id)
}

// SetTradeStatus mocks base method.
func (m *MockTradeStore) SetTradeStatus(ctx context.Context, id string, status models.TradeStatus, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetTradeStatus", ctx, id, status, at)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetTradeStatus indicates an expected call of SetTradeStatus.
func (mr *MockTradeStoreMockRecorder) SetTradeStatus(ctx, id, status, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetTradeStatus", reflect.TypeOf((*MockTradeStore)(nil).SetTradeStatus), ctx, id, status, at)
}
