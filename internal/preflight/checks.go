package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"panosort/internal/deps"
)

// CheckInputDirectory verifies that path is a directory that can be listed.
func CheckInputDirectory(name, path string) Result {
	result := Result{Name: name, Required: true}
	if detail, ok := statDirectory(path); !ok {
		result.Detail = detail
		return result
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		result.Detail = fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)
		return result
	}
	result.Passed = true
	result.Detail = fmt.Sprintf("%s (read ok)", path)
	return result
}

// CheckOutputDirectory verifies that path is, or can become, a writable
// directory. With create set a missing folder is made; without it a missing
// folder passes as long as nothing else occupies the path.
func CheckOutputDirectory(name, path string, create bool) Result {
	result := Result{Name: name, Required: true}
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !create:
		result.Passed = true
		result.Detail = fmt.Sprintf("%s (not created: dry run)", path)
		return result
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(path, 0o755); err != nil {
			result.Detail = fmt.Sprintf("%s (error: create: %v)", path, err)
			return result
		}
	}
	if detail, ok := statDirectory(path); !ok {
		result.Detail = detail
		return result
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		result.Detail = fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)
		return result
	}
	result.Passed = true
	result.Detail = fmt.Sprintf("%s (write ok)", path)
	return result
}

// CheckExtractor reports whether the configured metadata extractor resolves.
func CheckExtractor(binary string) Result {
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        "ExifTool",
		Command:     binary,
		Description: "Reads embedded image metadata",
	}})
	if missing := deps.Missing(statuses); len(missing) > 0 {
		return Result{Name: missing[0].Name, Detail: missing[0].Detail + "; every file will be treated as not a panorama"}
	}
	return Result{Name: statuses[0].Name, Passed: true, Detail: statuses[0].Path}
}

func statDirectory(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Sprintf("%s (error: does not exist)", path), false
		}
		return fmt.Sprintf("%s (error: stat: %v)", path, err), false
	}
	if !info.IsDir() {
		return fmt.Sprintf("%s (error: is not a directory)", path), false
	}
	return "", true
}
