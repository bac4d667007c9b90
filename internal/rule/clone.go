package rule

import "reflect"

// CloneRule returns an independent copy of r. Pointer rules are copied by
// value, so settings held in plain fields (such as an embedded
// SeverityConfig) carry over and can then be changed on the copy alone.
// Value rules are returned as is.
func CloneRule(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return r
	}
	newPtr := reflect.New(rv.Elem().Type())
	newPtr.Elem().Set(rv.Elem())
	return newPtr.Interface().(Rule)
}
