package sandbox

import "strings"

// PackageName is the crate name every sandbox is built as.
const PackageName = "exercise_sandbox"

// Sandbox layout, relative to the sandbox directory.
const (
	ManifestFile = "Cargo.toml"
	SourceFile   = "src/lib.rs"
	TestFile     = "tests/exercise.rs"
)

// Manifest is written once when a sandbox is provisioned. The dependencies
// cover what the bundled advanced exercises import.
const Manifest = `[package]
name = "` + PackageName + `"
version = "0.1.0"
edition = "2021"

[dependencies]
thiserror = "1"
tokio = { version = "1", features = ["rt-multi-thread","macros","sync"] }
`

// RewriteTests points crate-relative paths in a test file at the sandbox
// crate. It is a plain textual replacement: any "crate::" token is
// rewritten, including ones inside strings or comments.
func RewriteTests(src string) string {
	return strings.ReplaceAll(src, "crate::", PackageName+"::")
}
