package bencode

import (
	"errors"
	"reflect"
	"testing"
)

func TestExpect(t *testing.T) {
	if d, err := ExpectDict(Dict{"a": Integer(1)}); err != nil || len(d) != 1 {
		t.Errorf("ExpectDict() = %v, %v", d, err)
	}
	if l, err := ExpectList(List{Integer(1)}); err != nil || len(l) != 1 {
		t.Errorf("ExpectList() = %v, %v", l, err)
	}
	if s, err := ExpectTextString(TextString("ham")); err != nil || s != "ham" {
		t.Errorf("ExpectTextString() = %q, %v", s, err)
	}
	if b, err := ExpectByteString(ByteString{0xff}); err != nil || len(b) != 1 {
		t.Errorf("ExpectByteString() = %v, %v", b, err)
	}
	if i, err := ExpectInteger(Integer(-3)); err != nil || i != -3 {
		t.Errorf("ExpectInteger() = %d, %v", i, err)
	}
}

func TestExpectMismatch(t *testing.T) {
	tests := []struct {
		name string
		call func() error
		want TypeError
	}{
		{"dict", func() error { _, err := ExpectDict(List{}); return err }, TypeError{KindDict, KindList}},
		{"list", func() error { _, err := ExpectList(Integer(1)); return err }, TypeError{KindList, KindInteger}},
		{"text", func() error { _, err := ExpectTextString(ByteString{0xff}); return err }, TypeError{KindTextString, KindByteString}},
		{"bytes", func() error { _, err := ExpectByteString(TextString("a")); return err }, TypeError{KindByteString, KindTextString}},
		{"integer", func() error { _, err := ExpectInteger(Dict{}); return err }, TypeError{KindInteger, KindDict}},
		{"nil", func() error { _, err := ExpectInteger(nil); return err }, TypeError{KindInteger, kindNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *TypeError
			if err := tt.call(); !errors.As(err, &got) {
				t.Fatalf("error = %v, want *TypeError", err)
			}
			if *got != tt.want {
				t.Errorf("error = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestKeyedPeeling(t *testing.T) {
	var v Value = Dict{
		"name":   TextString("debian.iso"),
		"length": Integer(42),
		"pieces": ByteString{0xff, 0xfe},
		"files":  List{Integer(1)},
		"nested": Dict{"x": Integer(1)},
		"extra":  TextString("kept"),
	}
	original := v.(Dict)

	name, v, err := KeyedTextString(v, "name")
	if err != nil || name != "debian.iso" {
		t.Fatalf("KeyedTextString() = %q, %v", name, err)
	}
	length, v, err := KeyedInteger(v, "length")
	if err != nil || length != 42 {
		t.Fatalf("KeyedInteger() = %d, %v", length, err)
	}
	pieces, v, err := KeyedByteString(v, "pieces")
	if err != nil || !reflect.DeepEqual(pieces, []byte{0xff, 0xfe}) {
		t.Fatalf("KeyedByteString() = %v, %v", pieces, err)
	}
	files, v, err := KeyedList(v, "files")
	if err != nil || !reflect.DeepEqual(files, List{Integer(1)}) {
		t.Fatalf("KeyedList() = %v, %v", files, err)
	}
	nested, v, err := KeyedDict(v, "nested")
	if err != nil || !reflect.DeepEqual(nested, Dict{"x": Integer(1)}) {
		t.Fatalf("KeyedDict() = %v, %v", nested, err)
	}

	if want := (Dict{"extra": TextString("kept")}); !reflect.DeepEqual(v, want) {
		t.Errorf("residual = %v, want %v", v, want)
	}
	if len(original) != 6 {
		t.Errorf("peeling modified the input dict: %v", original)
	}
}

func TestKeyedErrors(t *testing.T) {
	var notFound *KeyNotFoundError
	if _, _, err := KeyedInteger(Dict{}, "length"); !errors.As(err, &notFound) || notFound.Key != "length" {
		t.Errorf("missing key error = %v", err)
	}

	var typeErr *TypeError
	if _, _, err := KeyedInteger(Dict{"length": TextString("1")}, "length"); !errors.As(err, &typeErr) {
		t.Errorf("wrong kind error = %v", err)
	}
	if _, _, err := KeyedInteger(List{}, "length"); !errors.As(err, &typeErr) || typeErr.Want != KindDict {
		t.Errorf("not a dict error = %v", err)
	}
}
