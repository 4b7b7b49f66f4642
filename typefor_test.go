package funcbuf

import "reflect"

// typeFor mirrors reflect.TypeFor, which is unavailable before Go 1.22.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
