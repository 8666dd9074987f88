package logging

import (
	"errors"
	"reflect"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		err  error
		want []string
	}{
		{nil, nil},
		{errors.New("one"), []string{"one"}},
		{errors.New("A: bad\nB: worse\n"), []string{"A: bad", "B: worse"}},
	}

	for i, tt := range tests {
		if have := Lines(tt.err); !reflect.DeepEqual(have, tt.want) {
			t.Fatalf("test %d: lines mismatch:\nhave: %q\nwant: %q", i, have, tt.want)
		}
	}
}
