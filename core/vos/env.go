package vos

import (
	"strings"
	"sync"
)

// Var is a single entry of an OrderedEnv.
type Var struct {
	Key   string
	Value string
	// Null is set for variables declared without a value (export KEY).
	Null bool
}

// String formats the variable as "key=value", or just the key if it has no
// value.
func (v Var) String() string {
	if v.Null {
		return v.Key
	}
	return v.Key + "=" + v.Value
}

// CopyEnv copies all the environment variables from src to dst.
// Entries without an "=" are skipped.
func CopyEnv(dst VEnv, src EnvironFetcher) error {
	for _, e := range src.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

// NewOrderedEnv creates a new, empty environment.
func NewOrderedEnv() *OrderedEnv {
	return &OrderedEnv{}
}

// NewOrderedEnvFrom creates a new environment with a copy of the environment
// variables in the original environment.
func NewOrderedEnvFrom(src EnvironFetcher) *OrderedEnv {
	return NewOrderedEnvFromEnvList(src.Environ())
}

// NewOrderedEnvFromEnvList imports "key=value" pairs in order. Entries without
// an "=" are ignored, later duplicates update earlier ones in place.
func NewOrderedEnvFromEnvList(environ []string) *OrderedEnv {
	out := &OrderedEnv{}

	// Ignore error, it will never be set for OrderedEnv.
	_ = CopyEnv(out, EnvList(environ))

	return out
}

// OrderedEnv implements an in-memory VEnv that preserves insertion order and
// keeps at most one entry per key.
type OrderedEnv struct {
	rw    sync.RWMutex
	vars  []Var
	index map[string]int
}

var _ VEnv = (*OrderedEnv)(nil)

func (o *OrderedEnv) put(v Var, keepValue bool) {
	o.rw.Lock()
	defer o.rw.Unlock()

	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[v.Key]; ok {
		if keepValue && !o.vars[i].Null {
			return
		}
		o.vars[i] = v
		return
	}
	o.index[v.Key] = len(o.vars)
	o.vars = append(o.vars, v)
}

// Setenv implements VEnv.Setenv.
func (o *OrderedEnv) Setenv(key, value string) error {
	o.put(Var{Key: key, Value: value}, false)
	return nil
}

// Declare implements VEnv.Declare.
func (o *OrderedEnv) Declare(key string) error {
	o.put(Var{Key: key, Null: true}, true)
	return nil
}

// Unsetenv implements VEnv.Unsetenv.
func (o *OrderedEnv) Unsetenv(key string) error {
	o.rw.Lock()
	defer o.rw.Unlock()

	i, ok := o.index[key]
	if !ok {
		return nil
	}
	o.vars = append(o.vars[:i], o.vars[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.vars); j++ {
		o.index[o.vars[j].Key] = j
	}
	return nil
}

// LookupVar returns the full entry for key, including variables declared
// without a value.
func (o *OrderedEnv) LookupVar(key string) (Var, bool) {
	o.rw.RLock()
	defer o.rw.RUnlock()

	i, ok := o.index[key]
	if !ok {
		return Var{}, false
	}
	return o.vars[i], true
}

// LookupEnv implements VEnv.LookupEnv.
func (o *OrderedEnv) LookupEnv(key string) (string, bool) {
	v, ok := o.LookupVar(key)
	if !ok || v.Null {
		return "", false
	}
	return v.Value, true
}

// Getenv implements VEnv.Getenv.
func (o *OrderedEnv) Getenv(key string) string {
	val, _ := o.LookupEnv(key)
	return val
}

// Vars returns a copy of every entry in insertion order.
func (o *OrderedEnv) Vars() []Var {
	o.rw.RLock()
	defer o.rw.RUnlock()

	return append([]Var(nil), o.vars...)
}

// Environ implements VEnv.Environ.
func (o *OrderedEnv) Environ() []string {
	var env []string

	for _, v := range o.Vars() {
		if v.Null {
			continue
		}
		env = append(env, v.String())
	}

	return env
}

// Clone returns an independent copy of the environment. Changes to the copy
// are never visible in the original.
func (o *OrderedEnv) Clone() *OrderedEnv {
	vars := o.Vars()
	out := &OrderedEnv{
		vars:  vars,
		index: make(map[string]int, len(vars)),
	}
	for i, v := range vars {
		out.index[v.Key] = i
	}
	return out
}

// Clearenv implements VEnv.Clearenv.
func (o *OrderedEnv) Clearenv() {
	o.rw.Lock()
	defer o.rw.Unlock()
	o.vars = nil
	o.index = nil
}
