/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeb26/outing-grouper/internal"
)

// Load reads a CSV roster. The header must name the PlayerID and Handicap
// columns; preference columns are optional and may be sparse.
func Load(r io.Reader, opts Options) (*Registry, error) {
	opts = opts.withDefaults()

	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true

	header, err := rdr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedRecordError{Line: 1, Field: "header",
				Reason: "empty roster"}
		}
		return nil, fmt.Errorf("roster.load: unable to read header: %w", err)
	}
	cols, err := mapColumns(header, opts)
	if err != nil {
		return nil, err
	}

	reg := &Registry{index: make(map[PlayerID]int)}
	for {
		record, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster.load: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := rdr.FieldPos(0)
		p, err := parseRecord(line, record, cols)
		if err != nil {
			return nil, err
		}
		if err := reg.add(line, p); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// LoadFile loads a roster from a local file, choosing the HTML parser for
// .html/.htm files and CSV otherwise.
func LoadFile(path string, opts Options) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roster.loadfile: %w", err)
	}
	defer f.Close()

	if isHTMLPath(path) {
		return LoadHTML(f, opts)
	}

	return Load(f, opts)
}

// IsURL reports whether source should be fetched over http rather than read
// from disk.
func IsURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// LoadSource loads a roster from a local path or an http(s) URL. URLs are
// fetched with client; a nil client means http.DefaultClient.
func LoadSource(ctx context.Context, client *http.Client, source string,
	opts Options) (*Registry, error) {

	if !IsURL(source) {
		return LoadFile(source, opts)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch roster %v: http status: %v",
			source, resp.StatusCode)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "html") ||
		isHTMLPath(req.URL.Path) {
		return LoadHTML(resp.Body, opts)
	}

	return Load(resp.Body, opts)
}

func isHTMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}
