//go:build unit
// +build unit

package v1

import (
	"context"
	"io"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerationService is a mock implementation of KeyGenerationService
type MockKeyGenerationService struct {
	mock.Mock
}

func (m *MockKeyGenerationService) Generate(ctx context.Context, req *keys.GenerateRequest) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

// MockKeyMetadataService is a mock implementation of KeyMetadataService
type MockKeyMetadataService struct {
	mock.Mock
}

func (m *MockKeyMetadataService) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockKeyDownloadService is a mock implementation of KeyDownloadService
type MockKeyDownloadService struct {
	mock.Mock
}

func (m *MockKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFileCipherService is a mock implementation of FileCipherService.
// The ByID methods write the configured output to w.
type MockFileCipherService struct {
	mock.Mock
}

func (m *MockFileCipherService) EncryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) error {
	args := m.Called(ctx, keyPath, password, srcPath, dstPath)
	return args.Error(0)
}

func (m *MockFileCipherService) DecryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) (crypto.Version, error) {
	args := m.Called(ctx, keyPath, password, srcPath, dstPath)
	return args.Get(0).(crypto.Version), args.Error(1)
}

func (m *MockFileCipherService) EncryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) error {
	input, _ := io.ReadAll(r)
	args := m.Called(ctx, keyID, password, input)
	if out, ok := args.Get(0).([]byte); ok {
		_, _ = w.Write(out)
	}
	return args.Error(1)
}

func (m *MockFileCipherService) DecryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) (crypto.Version, error) {
	input, _ := io.ReadAll(r)
	args := m.Called(ctx, keyID, password, input)
	if out, ok := args.Get(0).([]byte); ok {
		_, _ = w.Write(out)
	}
	return args.Get(1).(crypto.Version), args.Error(2)
}
