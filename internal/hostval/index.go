package hostval

import (
	"fmt"
	"reflect"

	"bracefmt/internal/fieldpath"
)

// IndexInto returns container[key] for slices, arrays, strings and maps.
// Pointers and interfaces are followed. Strings are indexed by rune.
func IndexInto(container any, key fieldpath.Key) (any, error) {
	rv := reflect.ValueOf(container)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrNotIndexable, rv.Type())
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: <nil>", ErrNotIndexable)
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n, err := sequenceIndex(rv.Type().String(), key, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(n).Interface(), nil

	case reflect.String:
		runes := []rune(rv.String())
		n, err := sequenceIndex("string", key, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[n]), nil

	case reflect.Map:
		k, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		v := rv.MapIndex(k)
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return v.Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotIndexable, rv.Type())
}

func sequenceIndex(typ string, key fieldpath.Key, length int) (int, error) {
	if key.Kind != fieldpath.KeyIndex {
		return 0, fmt.Errorf("%w: %s indices must be integers, not %q", ErrNotIndexable, typ, key.Name)
	}
	if key.Index < 0 || key.Index >= length {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, key.Index, length)
	}
	return key.Index, nil
}

// mapKey converts key to a value of the map's key type. Name keys match
// string-kinded maps, index keys match integer-kinded maps; interface-keyed
// maps take either as-is.
func mapKey(t reflect.Type, key fieldpath.Key) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		if key.Kind != fieldpath.KeyName {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(key.Name).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if key.Kind != fieldpath.KeyIndex || reflect.Zero(t).OverflowInt(int64(key.Index)) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(int64(key.Index)).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if key.Kind != fieldpath.KeyIndex || key.Index < 0 || reflect.Zero(t).OverflowUint(uint64(key.Index)) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(uint64(key.Index)).Convert(t), true
	case reflect.Interface:
		var k any = key.Name
		if key.Kind == fieldpath.KeyIndex {
			k = key.Index
		}
		v := reflect.ValueOf(k)
		if !v.Type().Implements(t) {
			return reflect.Value{}, false
		}
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}
