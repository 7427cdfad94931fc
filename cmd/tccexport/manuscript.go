package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/fileutil"
	"github.com/alnah/go-tccexport/internal/yamlutil"
)

// manuscriptExtensions lists the accepted manuscript file extensions.
// JSON is read by the YAML decoder, YAML being a superset.
var manuscriptExtensions = []string{".yaml", ".yml", ".json"}

// readManuscript loads a manuscript file. Unknown keys are rejected so
// typos in hand-written files surface early.
func readManuscript(path string) (tccexport.Manuscript, error) {
	var m tccexport.Manuscript

	err := yamlutil.DecodeFile(path, &m, yamlutil.MaxManuscriptSize)
	var pathErr *fs.PathError
	switch {
	case err == nil:
		return m, nil
	case errors.As(err, &pathErr):
		return m, fmt.Errorf("%w: %w", ErrReadManuscript, err)
	}
	return m, fmt.Errorf("%w: %s: %v", ErrReadManuscript, path, err)
}

// writeManuscript stores a manuscript atomically, as JSON for .json paths
// and YAML otherwise.
func writeManuscript(path string, m tccexport.Manuscript) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yamlutil.Encode(m)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteManuscript, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteManuscript, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteManuscript, err)
	}
	return nil
}

// discoverManuscripts expands the positional arguments into manuscript
// files. Directories are scanned (non-recursively) for known extensions.
func discoverManuscripts(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadManuscript, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadManuscript, err)
		}
		for _, e := range entries {
			if e.IsDir() || !hasManuscriptExtension(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(arg, e.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no manuscript files (%s) in %s",
			ErrNoInput, strings.Join(manuscriptExtensions, ", "), strings.Join(args, ", "))
	}
	return files, nil
}

func hasManuscriptExtension(name string) bool {
	return slices.Contains(manuscriptExtensions, strings.ToLower(filepath.Ext(name)))
}
