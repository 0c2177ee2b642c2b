package crypt

import (
	"encoding/hex"
	"testing"
)

func TestSha1VariantVectors(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "19ea6cf956ddd18a4a08ac1710c6923defc00877"},
		{"hello world", "c382ce9f95c18748a2b3403b85183e88a6a84f0c"},
		{"hello, world", "cd4df1db2c067776df20233f305e1c8bb9101d94"},
		{"Hello, World", "8a3e3ab2ba039d638aa171b17a1a477b06d19b53"},
	}

	for _, tc := range cases {
		got := Sha1Variant([]byte(tc.input))
		if hex.EncodeToString(got[:]) != tc.want {
			t.Errorf("Sha1Variant(%q) = %x, want %s", tc.input, got, tc.want)
		}
	}
}
