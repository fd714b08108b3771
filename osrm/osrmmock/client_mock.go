// Package osrmmock holds a hand-authored gomock-style mock of osrm.Client,
// generated in spirit the way mockgen would produce it, so generator and
// solver tests can inject a deterministic stub oracle (§8, scenarios S1
// and S4) without a live OSRM server.
package osrmmock

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/osrm"
)

// MockClient is a mock of the osrm.Client interface.
type MockClient struct {
	ctrl     *gomock.Controller
	recorder *MockClientMockRecorder
}

// MockClientMockRecorder is the mock recorder for MockClient.
type MockClientMockRecorder struct {
	mock *MockClient
}

// NewMockClient creates a new mock instance.
func NewMockClient(ctrl *gomock.Controller) *MockClient {
	mock := &MockClient{ctrl: ctrl}
	mock.recorder = &MockClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClient) EXPECT() *MockClientMockRecorder {
	return m.recorder
}

// Nearest mocks osrm.Client.Nearest.
func (m *MockClient) Nearest(ctx context.Context, loc geo.Location) (geo.Location, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Nearest", ctx, loc)
	ret0, _ := ret[0].(geo.Location)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Nearest indicates an expected call of Nearest.
func (mr *MockClientMockRecorder) Nearest(ctx, loc any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock, "Nearest", reflect.TypeOf((*MockClient)(nil).Nearest), ctx, loc,
	)
}

// Table mocks osrm.Client.Table.
func (m *MockClient) Table(ctx context.Context, locs []geo.Location, kind osrm.Annotation) ([][]float32, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Table", ctx, locs, kind)
	ret0, _ := ret[0].([][]float32)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Table indicates an expected call of Table.
func (mr *MockClientMockRecorder) Table(ctx, locs, kind any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock, "Table", reflect.TypeOf((*MockClient)(nil).Table), ctx, locs, kind,
	)
}
