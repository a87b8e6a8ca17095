package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every Get misses and writes are dropped.
// Reason says why caching is off and shows up in status output.
type NullCache struct {
	Reason string
}

// Disabled returns a NullCache recording reason.
func Disabled(reason string) NullCache {
	return NullCache{Reason: reason}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// String returns "disabled", followed by the reason if there is one.
func (n NullCache) String() string {
	if n.Reason == "" {
		return "disabled"
	}
	return "disabled (" + n.Reason + ")"
}

var _ Cache = NullCache{}
