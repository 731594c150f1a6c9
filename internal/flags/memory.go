package flags

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/feyloom/attunement-tracker/internal/errors"
)

// memoryStore is a map-backed Store for tests and the demo seeding
// path. Values still round-trip through JSON so numeric types behave
// the same as in the persistent backends.
type memoryStore struct {
	mu    sync.RWMutex
	flags map[string]json.RawMessage
}

// NewMemory creates an in-memory flag store
func NewMemory() Store {
	return &memoryStore{flags: make(map[string]json.RawMessage)}
}

func (s *memoryStore) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	raw, ok := s.flags[memKey(input.Scope, input.Namespace, input.Key)]
	s.mu.RUnlock()

	if !ok {
		return &GetOutput{Found: false}, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.Wrapf(err, "failed to decode flag value")
	}

	return &GetOutput{Value: value, Found: true}, nil
}

func (s *memoryStore) Set(_ context.Context, input SetInput) (*SetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode flag value")
	}

	s.mu.Lock()
	s.flags[memKey(input.Scope, input.Namespace, input.Key)] = data
	s.mu.Unlock()

	return &SetOutput{}, nil
}

func memKey(scope DocScope, namespace, key string) string {
	return string(scope.Kind) + ":" + scope.ID + ":" + namespace + ":" + key
}
