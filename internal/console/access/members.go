// File: members.go
// Title: Member Listing
// Description: Lists the exported fields and methods of a live object.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package access

import (
	"reflect"
	"sort"
	"strings"
)

// MemberKind distinguishes fields from functions
type MemberKind string

const (
	MemberField    MemberKind = "field"
	MemberFunction MemberKind = "func"
)

// Member describes one accessible member of a live object
type Member struct {
	Kind MemberKind
	Name string
	Type string
}

// Members lists the exported fields (promoted included) and methods of v,
// fields first, each group sorted by name.
func Members(v any) []Member {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}

	var fields, funcs []Member

	st := rv.Type()
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(st) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			fields = append(fields, Member{Kind: MemberField, Name: f.Name, Type: f.Type.String()})
		}
	}

	mt := rv.Type()
	for i := 0; i < mt.NumMethod(); i++ {
		m := mt.Method(i)
		funcs = append(funcs, Member{Kind: MemberFunction, Name: m.Name, Type: signature(m.Type)})
	}

	byName := func(ms []Member) {
		sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	}
	byName(fields)
	byName(funcs)
	return append(fields, funcs...)
}

// signature renders a method type without its receiver, e.g. "(int) string"
func signature(t reflect.Type) string {
	in := make([]string, 0, t.NumIn())
	// Method types from reflect.Type.Method include the receiver.
	for i := 1; i < t.NumIn(); i++ {
		in = append(in, t.In(i).String())
	}
	out := make([]string, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		out = append(out, t.Out(i).String())
	}

	s := "(" + strings.Join(in, ", ") + ")"
	switch len(out) {
	case 0:
	case 1:
		s += " " + out[0]
	default:
		s += " (" + strings.Join(out, ", ") + ")"
	}
	return s
}
