package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	stderr := `error[E0382]: borrow of moved value: ` + "`v`" + `
error[E0499]: cannot borrow as mutable more than once
error[E0382]: borrow of moved value: ` + "`w`" + `
For more information about an error, try ` + "`rustc --explain E0382`" + `.`

	assert.Equal(t, []string{"E0382", "E0499"}, ErrorCodes(stderr))
	assert.Empty(t, ErrorCodes("test result: FAILED. 0 passed; 1 failed"))
	assert.Empty(t, ErrorCodes("E12 E123x"))
}

func TestDocURL(t *testing.T) {
	assert.Equal(t, "https://doc.rust-lang.org/error_codes/E0382.html", DocURL("E0382"))
}

func TestRewriteTests(t *testing.T) {
	in := "use crate::add;\n// crate::add is tested\nfn t() { crate::add(1, 2); }\n"
	want := "use exercise_sandbox::add;\n// exercise_sandbox::add is tested\nfn t() { exercise_sandbox::add(1, 2); }\n"
	assert.Equal(t, want, RewriteTests(in))
	assert.Equal(t, "no qualifiers", RewriteTests("no qualifiers"))
}

func TestDecodeOutput(t *testing.T) {
	assert.Equal(t, "", decodeOutput(nil))
	assert.Equal(t, "héllo", decodeOutput([]byte("héllo")))
	assert.Equal(t, "ok\uFFFDdone", decodeOutput([]byte("ok\xffdone")))
}

func TestParseCargoVersion(t *testing.T) {
	v, err := ParseCargoVersion("cargo 1.79.0 (ffa9cf99a 2024-06-03)")
	require.NoError(t, err)
	assert.Equal(t, "v1.79.0", v)

	v, err = ParseCargoVersion("cargo 1.81.0-nightly (154fdac39 2024-06-25)")
	require.NoError(t, err)
	assert.Equal(t, "v1.81.0-nightly", v)

	_, err = ParseCargoVersion("rustc 1.79.0")
	require.Error(t, err)
	_, err = ParseCargoVersion("cargo banana")
	require.Error(t, err)
}

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		version, min string
		want         bool
	}{
		{"v1.79.0", "1.70.0", true},
		{"v1.79.0", "v1.79.0", true},
		{"v1.69.2", "1.70", false},
		{"v1.70.0-nightly", "1.70.0", false},
		{"v1.79.0", "", true},
		{"v1.79.0", "not-a-version", false},
	}
	for _, tt := range tests {
		if got := MeetsMinimum(tt.version, tt.min); got != tt.want {
			t.Errorf("MeetsMinimum(%q, %q) = %v, want %v", tt.version, tt.min, got, tt.want)
		}
	}
}
