// File: objects.go
// Title: Live Object Store
// Description: Registry of named live object instances grouped by type name.
//              The console resolves get/set/call requests against it; the
//              host program registers the objects it wants to expose.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package objects

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/msto63/devconsole/pkg/core/logging"
)

// Instance is one live object exposed to the console
type Instance struct {
	Name  string
	Value any
}

// Store is the contract the console uses to find live objects
type Store interface {
	// Reflectable reports whether typeName is a known object type
	Reflectable(typeName string) bool

	// Instances returns the live instances of typeName in registration order
	Instances(typeName string) []Instance
}

// TypeInfo summarises one declared type
type TypeInfo struct {
	Name      string
	Instances int
}

type typeEntry struct {
	name      string
	instances []Instance
}

// Registry is an in-memory Store populated by the host.
// It is safe for concurrent use.
type Registry struct {
	types  map[string]*typeEntry
	logger *logging.Logger
	mutex  sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{
		types:  make(map[string]*typeEntry),
		logger: logger.WithField("component", "objects"),
	}
}

func normalize(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}

// Declare makes typeName known without registering an instance
func (r *Registry) Declare(typeName string) error {
	key := normalize(typeName)
	if key == "" {
		return errors.New("type name cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.declareLocked(key, strings.TrimSpace(typeName))
	return nil
}

func (r *Registry) declareLocked(key, display string) *typeEntry {
	entry, ok := r.types[key]
	if !ok {
		entry = &typeEntry{name: display}
		r.types[key] = entry
	}
	return entry
}

// Register adds a named instance of typeName. ptr must be a non-nil pointer
// to a struct so fields can be written through it.
func (r *Registry) Register(typeName, name string, ptr any) error {
	key := normalize(typeName)
	if key == "" {
		return errors.New("type name cannot be empty")
	}

	v := reflect.ValueOf(ptr)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("instance %q of type %s must be a non-nil pointer", name, typeName)
	}
	if v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("instance %q of type %s must point to a struct, got %s", name, typeName, v.Elem().Kind())
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry := r.declareLocked(key, strings.TrimSpace(typeName))
	for _, inst := range entry.instances {
		if inst.Name == name {
			return fmt.Errorf("instance %q of type %s already registered", name, entry.name)
		}
	}
	entry.instances = append(entry.instances, Instance{Name: name, Value: ptr})

	r.logger.Debug("Object registered", logging.Fields{
		"type":     entry.name,
		"instance": name,
		"goType":   v.Type().String(),
	})
	return nil
}

// Unregister removes a named instance. It reports whether one was removed.
func (r *Registry) Unregister(typeName, name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, ok := r.types[normalize(typeName)]
	if !ok {
		return false
	}
	for i, inst := range entry.instances {
		if inst.Name == name {
			entry.instances = append(entry.instances[:i], entry.instances[i+1:]...)
			r.logger.Debug("Object unregistered", logging.Fields{"type": entry.name, "instance": name})
			return true
		}
	}
	return false
}

// Reflectable implements Store
func (r *Registry) Reflectable(typeName string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.types[normalize(typeName)]
	return ok
}

// Instances implements Store. The returned slice is a copy.
func (r *Registry) Instances(typeName string) []Instance {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.types[normalize(typeName)]
	if !ok {
		return nil
	}
	return append([]Instance(nil), entry.instances...)
}

// Types lists the declared types sorted by name
func (r *Registry) Types() []TypeInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	infos := make([]TypeInfo, 0, len(r.types))
	for _, entry := range r.types {
		infos = append(infos, TypeInfo{Name: entry.name, Instances: len(entry.instances)})
	}
	sort.Slice(infos, func(i, j int) bool {
		return strings.ToLower(infos[i].Name) < strings.ToLower(infos[j].Name)
	})
	return infos
}
