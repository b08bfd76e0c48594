package popover

import "testing"

func TestEmbeddedReleaseIsSemver(t *testing.T) {
	if !IsSemver(Version()) {
		t.Fatalf("VERSION must hold a semver release: got %q", Version())
	}
	if got, want := Tag(), "v"+Version(); got != want {
		t.Fatalf("tag: got %q, want %q", got, want)
	}
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{in: "0.1.0", want: true},
		{in: " 3.4.5\n", want: true},
		{in: "1.0.0-rc.2", want: true},
		{in: "1.0.0+sha.5114f85", want: true},
		{in: "v0.1.0", want: false},
		{in: "0.1", want: false},
		{in: "0.01.0", want: false},
		{in: "", want: false},
	}
	for _, tc := range cases {
		if got := IsSemver(tc.in); got != tc.want {
			t.Fatalf("IsSemver(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
