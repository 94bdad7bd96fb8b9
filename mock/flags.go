package mock

import "github.com/fwojciec/starprep"

// Compile-time interface verification.
var _ starprep.FlagStore = (*FlagStore)(nil)

// FlagStore is a mock implementation of starprep.FlagStore.
type FlagStore struct {
	FlagFn       func(key string) (bool, bool)
	SetFlagFn    func(key string, value bool) error
	RemoveFlagFn func(key string) error
}

func (s *FlagStore) Flag(key string) (bool, bool) {
	return s.FlagFn(key)
}

func (s *FlagStore) SetFlag(key string, value bool) error {
	return s.SetFlagFn(key, value)
}

func (s *FlagStore) RemoveFlag(key string) error {
	return s.RemoveFlagFn(key)
}
