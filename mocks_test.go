/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Mocks for Storage and EvictionStrategy in the shape mockgen
// (go.uber.org/mock) produces. They are hand-maintained: mockgen is not
// run as part of this repo's build, and both mocks live in this one file.

package memocache

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockStorage is a mock of the Storage interface.
type MockStorage[T any] struct {
	ctrl     *gomock.Controller
	recorder *MockStorageMockRecorder[T]
}

// MockStorageMockRecorder is the mock recorder for MockStorage.
type MockStorageMockRecorder[T any] struct {
	mock *MockStorage[T]
}

// NewMockStorage creates a new mock instance.
func NewMockStorage[T any](ctrl *gomock.Controller) *MockStorage[T] {
	mock := &MockStorage[T]{ctrl: ctrl}
	mock.recorder = &MockStorageMockRecorder[T]{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorage[T]) EXPECT() *MockStorageMockRecorder[T] {
	return m.recorder
}

func (m *MockStorage[T]) Get(ctx context.Context, key Key) (Entry[T], bool, error) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(Entry[T])
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)

	return ret0, ret1, ret2
}

func (mr *MockStorageMockRecorder[T]) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockStorage[T])(nil).Get), ctx, key)
}

func (m *MockStorage[T]) Offer(ctx context.Context, key Key, entry Entry[T]) error {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "Offer", ctx, key, entry)
	ret0, _ := ret[0].(error)

	return ret0
}

func (mr *MockStorageMockRecorder[T]) Offer(ctx, key, entry interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Offer", reflect.TypeOf((*MockStorage[T])(nil).Offer), ctx, key, entry)
}

func (m *MockStorage[T]) Release(ctx context.Context, key Key) error {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "Release", ctx, key)
	ret0, _ := ret[0].(error)

	return ret0
}

func (mr *MockStorageMockRecorder[T]) Release(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockStorage[T])(nil).Release), ctx, key)
}

// MockEvictionStrategy is a mock of the EvictionStrategy interface.
type MockEvictionStrategy struct {
	ctrl     *gomock.Controller
	recorder *MockEvictionStrategyMockRecorder
}

// MockEvictionStrategyMockRecorder is the mock recorder for MockEvictionStrategy.
type MockEvictionStrategyMockRecorder struct {
	mock *MockEvictionStrategy
}

// NewMockEvictionStrategy creates a new mock instance.
func NewMockEvictionStrategy(ctrl *gomock.Controller) *MockEvictionStrategy {
	mock := &MockEvictionStrategy{ctrl: ctrl}
	mock.recorder = &MockEvictionStrategyMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEvictionStrategy) EXPECT() *MockEvictionStrategyMockRecorder {
	return m.recorder
}

func (m *MockEvictionStrategy) MarkRead(key Key) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "MarkRead", key)
}

func (mr *MockEvictionStrategyMockRecorder) MarkRead(key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkRead", reflect.TypeOf((*MockEvictionStrategy)(nil).MarkRead), key)
}

func (m *MockEvictionStrategy) MarkWritten(meta WrittenMeta) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "MarkWritten", meta)
}

func (mr *MockEvictionStrategyMockRecorder) MarkWritten(meta interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkWritten", reflect.TypeOf((*MockEvictionStrategy)(nil).MarkWritten), meta)
}

func (m *MockEvictionStrategy) MarkReleased(key Key) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "MarkReleased", key)
}

func (mr *MockEvictionStrategyMockRecorder) MarkReleased(key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkReleased", reflect.TypeOf((*MockEvictionStrategy)(nil).MarkReleased), key)
}

func (m *MockEvictionStrategy) NextToRelease() (Key, bool) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "NextToRelease")
	ret0, _ := ret[0].(Key)
	ret1, _ := ret[1].(bool)

	return ret0, ret1
}

func (mr *MockEvictionStrategyMockRecorder) NextToRelease() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NextToRelease", reflect.TypeOf((*MockEvictionStrategy)(nil).NextToRelease))
}
