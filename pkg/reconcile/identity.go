package reconcile

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Resolver maps a value to a comparable identity. Two values are the same
// when their identities are equal.
type Resolver interface {
	Identity(v any) any
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(v any) any

// Identity implements Resolver.
func (f ResolverFunc) Identity(v any) any { return f(v) }

type refIdentity struct {
	typ  reflect.Type
	ptr  uintptr
	len  int
	data unsafe.Pointer
}

// DefaultResolver compares comparable values by value and reference values
// (functions, pointers, maps, channels, slices) by address. A function is
// identified by its closure object: a named or non-capturing function is the
// same value on every pass, while each evaluation of a capturing literal is a
// new one.
var DefaultResolver Resolver = ResolverFunc(defaultIdentity)

func defaultIdentity(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return refIdentity{typ: rv.Type(), data: funcData(v)}
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return refIdentity{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		return refIdentity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}
	}
	if rv.Comparable() {
		return v
	}
	return fmt.Sprintf("%T:%#v", v, v)
}

// funcData returns the data word of the interface holding a func, which is
// the func's closure pointer.
func funcData(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}

// Same reports whether a and b resolve to the same identity.
func Same(r Resolver, a, b any) bool {
	if r == nil {
		r = DefaultResolver
	}
	return r.Identity(a) == r.Identity(b)
}

// ShallowEqual reports whether a and b hold the same keys with values of the
// same identity. Nested values are not inspected. A nil map equals an empty
// one.
func ShallowEqual(r Resolver, a, b vdom.Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Same(r, av, bv) {
			return false
		}
	}
	return true
}
