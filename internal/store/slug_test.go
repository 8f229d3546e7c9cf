package store

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":           "hello-world",
		"  Go   Generics 101  ":   "go-generics-101",
		"Déjà vu":                 "d-j-vu",
		"---":                     "post",
		"":                        "post",
		"React Native & Flutter?": "react-native-flutter",
	}
	for in, expect := range cases {
		if got := Slugify(in); got != expect {
			t.Fatalf("slugify %q => %q, expected %q", in, got, expect)
		}
	}
}
