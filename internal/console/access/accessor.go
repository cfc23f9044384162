// File: accessor.go
// Title: Reflective Accessor
// Description: Reads and writes exported fields and invokes exported methods
//              of live objects found through the object store. Names are
//              matched case-insensitively; text arguments are converted to
//              the target type.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package access

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/msto63/devconsole/internal/objects"
	"github.com/msto63/devconsole/pkg/core/logging"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Accessor resolves live objects and accesses their members
type Accessor struct {
	store  objects.Store
	logger *logging.Logger
}

// New creates an accessor over store
func New(store objects.Store, logger *logging.Logger) *Accessor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Accessor{
		store:  store,
		logger: logger.WithField("component", "accessor"),
	}
}

// Store returns the underlying object store
func (a *Accessor) Store() objects.Store {
	return a.store
}

// resolve finds the target instance. With exactly one live instance the
// name is ignored; with several an exact name match is required.
func (a *Accessor) resolve(typ, instance string) (lookup, reflect.Value) {
	l := lookup{Type: typ, Instance: instance}

	if a.store == nil || !a.store.Reflectable(typ) {
		return l, reflect.Value{}
	}
	l.ValidType = true

	instances := a.store.Instances(typ)
	if len(instances) == 0 {
		return l, reflect.Value{}
	}
	l.InstancesFound = true

	if len(instances) == 1 {
		l.InstanceResolved = true
		return l, reflect.ValueOf(instances[0].Value)
	}

	if instance == "" {
		return l, reflect.Value{}
	}
	for _, inst := range instances {
		if inst.Name == instance {
			l.InstanceResolved = true
			return l, reflect.ValueOf(inst.Value)
		}
	}
	return l, reflect.Value{}
}

// GetField reads field of the resolved instance of typ
func (a *Accessor) GetField(typ, field, instance string) *FieldResult {
	l, target := a.resolve(typ, instance)
	r := &FieldResult{lookup: l, Field: field}
	if !l.InstanceResolved {
		return r
	}

	fv, ok := findField(target, field)
	if !ok {
		return r
	}
	r.FieldFound = true
	r.ValidValue = true
	r.Success = true
	r.Value = fv.Interface()
	return r
}

// SetField writes value to field of the resolved instance of typ. With
// fromText the value must be a string and is converted to the field type;
// otherwise its dynamic type must equal the field type.
func (a *Accessor) SetField(typ, field string, value any, instance string, fromText bool) *FieldResult {
	l, target := a.resolve(typ, instance)
	r := &FieldResult{lookup: l, Field: field, input: value}
	if !l.InstanceResolved {
		return r
	}
	a.set(r, target, field, value, fromText)
	if r.Success {
		a.logger.Debug("Field set", logging.Fields{"type": typ, "field": field, "instance": instance})
	}
	return r
}

// SetFieldOn writes value to field of target, which must be a pointer to a
// struct. The lookup flags are reported as satisfied.
func (a *Accessor) SetFieldOn(target any, field string, value any, fromText bool) *FieldResult {
	r := &FieldResult{
		lookup: lookup{
			Type:             typeName(target),
			ValidType:        true,
			InstancesFound:   true,
			InstanceResolved: true,
		},
		Field: field,
		input: value,
	}
	a.set(r, reflect.ValueOf(target), field, value, fromText)
	return r
}

func (a *Accessor) set(r *FieldResult, target reflect.Value, field string, value any, fromText bool) {
	fv, ok := findField(target, field)
	if !ok || !fv.CanSet() {
		return
	}
	r.FieldFound = true

	var nv reflect.Value
	if fromText {
		text, isText := value.(string)
		if !isText {
			return
		}
		converted, err := FromText(text, fv.Type())
		if err != nil {
			return
		}
		nv = converted
	} else {
		if value == nil || reflect.TypeOf(value) != fv.Type() {
			return
		}
		nv = reflect.ValueOf(value)
	}

	fv.Set(nv)
	r.ValidValue = true
	r.Success = true
	r.Value = fv.Interface()
}

// Invoke calls method op of the resolved instance of typ with params. The
// first method whose parameters accept params is called.
func (a *Accessor) Invoke(typ, op string, params []any, instance string) *FunctionResult {
	l, target := a.resolve(typ, instance)
	r := &FunctionResult{lookup: l, Function: op}
	if !l.InstanceResolved {
		return r
	}

	methods := findMethods(target, op)
	if len(methods) == 0 {
		return r
	}
	r.FunctionFound = true

	for _, m := range methods {
		args, ok := assignParams(m.Type(), params)
		if !ok {
			continue
		}
		r.CorrectParameters = true
		a.call(r, m, args)
		return r
	}
	return r
}

// InvokeText is Invoke with text arguments converted per parameter type
func (a *Accessor) InvokeText(typ, op string, args []string, instance string) *FunctionResult {
	l, target := a.resolve(typ, instance)
	r := &FunctionResult{lookup: l, Function: op}
	if !l.InstanceResolved {
		return r
	}

	methods := findMethods(target, op)
	if len(methods) == 0 {
		return r
	}
	r.FunctionFound = true

	for _, m := range methods {
		in, ok := convertParams(m.Type(), args)
		if !ok {
			continue
		}
		r.CorrectParameters = true
		a.call(r, m, in)
		return r
	}
	return r
}

func (a *Accessor) call(r *FunctionResult, m reflect.Value, args []reflect.Value) {
	defer func() {
		if p := recover(); p != nil {
			r.CallErr = fmt.Errorf("function %s panicked: %v", r.Function, p)
			a.logger.Error("Invoked function panicked", logging.Fields{
				"type":     r.Type,
				"function": r.Function,
				"panic":    fmt.Sprint(p),
			})
		}
	}()

	out := m.Call(args)
	r.Success = true

	if n := len(out); n > 0 && m.Type().Out(n-1).Implements(errorType) {
		if err, _ := out[n-1].Interface().(error); err != nil {
			r.CallErr = err
		}
		out = out[:n-1]
	}
	if len(out) > 0 {
		r.ReturnValue = out[0].Interface()
	}
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// findField locates an exported field, promoted fields included, by
// case-insensitive name. An exact match wins over a case-insensitive one.
func findField(target reflect.Value, name string) (reflect.Value, bool) {
	v := target
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	var match *reflect.StructField
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() {
			continue
		}
		if f.Name == name {
			match = &f
			break
		}
		if match == nil && strings.EqualFold(f.Name, name) {
			fc := f
			match = &fc
		}
	}
	if match == nil {
		return reflect.Value{}, false
	}

	fv, err := v.FieldByIndexErr(match.Index)
	if err != nil {
		return reflect.Value{}, false
	}
	return fv, true
}

// findMethods returns the bound exported methods named name, exact case first
func findMethods(target reflect.Value, name string) []reflect.Value {
	var exact, folded []reflect.Value
	t := target.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		switch {
		case m.Name == name:
			exact = append(exact, target.Method(i))
		case strings.EqualFold(m.Name, name):
			folded = append(folded, target.Method(i))
		}
	}
	return append(exact, folded...)
}

func assignParams(ft reflect.Type, params []any) ([]reflect.Value, bool) {
	if ft.IsVariadic() || ft.NumIn() != len(params) {
		return nil, false
	}

	args := make([]reflect.Value, len(params))
	for i, p := range params {
		in := ft.In(i)
		if p == nil {
			if !nillable(in.Kind()) {
				return nil, false
			}
			args[i] = reflect.Zero(in)
			continue
		}
		pv := reflect.ValueOf(p)
		if !pv.Type().AssignableTo(in) {
			return nil, false
		}
		args[i] = pv
	}
	return args, true
}

func convertParams(ft reflect.Type, texts []string) ([]reflect.Value, bool) {
	if ft.IsVariadic() || ft.NumIn() != len(texts) {
		return nil, false
	}

	args := make([]reflect.Value, len(texts))
	for i, text := range texts {
		v, err := FromText(text, ft.In(i))
		if err != nil {
			return nil, false
		}
		args[i] = v
	}
	return args, true
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
