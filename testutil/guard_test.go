package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestForbiddenPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"internal hit", InternalImportForbidden, "manuscriptdna/internal/core", true},
		{"internal miss", InternalImportForbidden, "manuscriptdna/pkg/domain", false},
		{"domain hit", DomainImportForbidden, "manuscriptdna/pkg/domain", true},
		{"domain versioned", DomainImportForbidden, "example.com/mod/pkg/domain@v1", true},
		{"domain miss", DomainImportForbidden, "example.com/mod/pkg/notdomain", false},
		{"core hit", CoreImportForbidden, "manuscriptdna/internal/core", true},
		{"core miss", CoreImportForbidden, "manuscriptdna/internal/corentine", false},
		{"blob driver hit", BlobDriverImportForbidden, "manuscriptdna/internal/infra/blob/s3", true},
		{"blob driver miss", BlobDriverImportForbidden, "manuscriptdna/internal/blob", false},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("%s: predicate(%q)=%v want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestAssertNoDirectImportsIgnoresTestsAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("safe.go", "package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}\n")
	write("safe_test.go", "package tmp\nimport _ \"banned/pkg\"\n")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sub := filepath.Join(dir, "sub", "sub.go")
	if err := os.WriteFile(sub, []byte("package sub\nimport _ \"banned/pkg\"\n"), 0o600); err != nil {
		t.Fatalf("write sub: %v", err)
	}
	AssertNoDirectImports(t, dir, func(ip string) bool { return ip == "banned/pkg" }, "test files and subdirectories are out of scope")
}

func TestAssertNoDirectImportsFlagsViolation(t *testing.T) {
	dir := t.TempDir()
	src := "package tmp\nimport _ \"banned/pkg\"\n"
	if err := os.WriteFile(filepath.Join(dir, "bad.go"), []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	probe := &probeT{TB: t}
	AssertNoDirectImports(probe, dir, func(ip string) bool { return ip == "banned/pkg" }, "banned import")
	if !probe.failed {
		t.Fatalf("expected violation to fail the probe")
	}
}

func TestAssertNoTransitiveDependencyUsesListOutput(t *testing.T) {
	orig := goListDeps
	defer func() { goListDeps = orig }()

	goListDeps = func(pattern string) ([]byte, error) {
		return []byte("fmt\nmanuscriptdna/pkg/domain\n"), nil
	}
	probe := &probeT{TB: t}
	AssertNoTransitiveDependency(probe, "./...", DomainImportForbidden, "domain disallowed")
	if !probe.failed {
		t.Fatalf("expected domain dependency to fail the probe")
	}

	goListDeps = func(pattern string) ([]byte, error) {
		return nil, fmt.Errorf("boom")
	}
	probe = &probeT{TB: t}
	AssertNoTransitiveDependency(probe, "./...", DomainImportForbidden, "domain disallowed")
	if !probe.failed {
		t.Fatalf("expected list failure to fail the probe")
	}
}

// probeT records Fatalf calls instead of aborting, so guard failures can be
// asserted without failing the enclosing test.
type probeT struct {
	testing.TB
	failed bool
}

func (p *probeT) Helper() {}

func (p *probeT) Fatalf(format string, args ...any) {
	p.failed = true
}
