package logger

import (
	"slices"
	"sync"
)

var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register binds name to l. Later Get(name) calls return l.
func Register(name string, l *Logger) {
	namedMu.Lock()
	named[name] = l
	namedMu.Unlock()
}

// Get returns the logger registered under name. Unregistered names get the
// global logger tagged with name as its component.
func Get(name string) *Logger {
	namedMu.RLock()
	l, ok := named[name]
	namedMu.RUnlock()
	if !ok {
		return GetGlobalLogger().WithComponent(name)
	}
	return l
}

// RegisterDefaults binds each name to a component logger derived from the
// current global logger. Run it again after Init to pick up a new config.
func RegisterDefaults(names ...string) {
	base := GetGlobalLogger()
	namedMu.Lock()
	defer namedMu.Unlock()
	for _, name := range names {
		named[name] = base.WithComponent(name)
	}
}

// Registered returns the registered names in sorted order.
func Registered() []string {
	namedMu.RLock()
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	namedMu.RUnlock()
	slices.Sort(names)
	return names
}
