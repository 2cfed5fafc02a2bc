package storage

import "context"

// Noop stands in for storage in non-interactive contexts. It never holds anything,
// and Available reports false so guards and interceptors can fail closed.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Available() bool { return false }

func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (Noop) Set(context.Context, string, string) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Keys(context.Context, string) ([]string, error) { return nil, nil }
