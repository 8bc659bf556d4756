package main

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// null is the IMDb marker for a missing value.
const null = `\N`

// tsvReader reads the IMDb dumps: one header line, tab separated fields,
// no quoting.
type tsvReader struct {
	r      *bufio.Reader
	header map[string]int
	line   int
}

func newTSVReader(r io.Reader, gzipped bool) (*tsvReader, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		r = gz
	}
	t := &tsvReader{r: bufio.NewReaderSize(r, 1<<16)}
	fields, err := t.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty dataset: missing header")
		}
		return nil, err
	}
	t.header = make(map[string]int, len(fields))
	for i, name := range fields {
		t.header[name] = i
	}
	return t, nil
}

func (t *tsvReader) next() ([]string, error) {
	for {
		line, err := t.r.ReadString('\n')
		if line == "" && err != nil {
			return nil, err
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		t.line++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		return strings.Split(line, "\t"), nil
	}
}

// require fails when a column is missing from the header.
func (t *tsvReader) require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns %v", missing)
	}
	return nil
}

// Read returns the next record keyed by column name.
func (t *tsvReader) Read() (record, error) {
	fields, err := t.next()
	if err != nil {
		return record{}, err
	}
	return record{header: t.header, fields: fields, line: t.line}, nil
}

type record struct {
	header map[string]int
	fields []string
	line   int
}

func (r record) raw(column string) string {
	i, ok := r.header[column]
	if !ok || i >= len(r.fields) {
		return null
	}
	return r.fields[i]
}

func (r record) str(column string) string {
	if v := r.raw(column); v != null {
		return v
	}
	return ""
}

func (r record) optStr(column string) *string {
	v := r.raw(column)
	if v == null || v == "" {
		return nil
	}
	return &v
}

func (r record) optInt(column string) (*int, error) {
	v := r.raw(column)
	if v == null || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %q is not an integer", r.line, column, v)
	}
	return &n, nil
}

func (r record) boolean(column string) bool {
	return r.raw(column) == "1"
}

// list splits a multi-valued column. A missing value yields an empty list.
func (r record) list(column, sep string) []string {
	v := r.raw(column)
	if v == null || v == "" {
		return []string{}
	}
	parts := strings.Split(v, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != null {
			out = append(out, p)
		}
	}
	return out
}
