package main_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectFileSize returns a comparator verifying that path holds exactly size bytes.
func expectFileSize(path string, size int64) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		info, err := os.Stat(path)
		if err != nil {
			testing.Log(fmt.Sprintf("expected output file %q: %v", path, err))
			testing.Fail()

			return
		}

		if info.Size() != size {
			testing.Log(fmt.Sprintf("expected %q to hold %d bytes, got %d", path, size, info.Size()))
			testing.Fail()
		}
	}
}

// expectFilePrefix returns a comparator verifying that the file at path starts with prefix.
func expectFilePrefix(path, prefix string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		content, err := os.ReadFile(path) //nolint:gosec // test-controlled path
		if err != nil || !strings.HasPrefix(string(content), prefix) {
			testing.Log(fmt.Sprintf("expected %q to start with %q (err: %v)", path, prefix, err))
			testing.Fail()
		}
	}
}
