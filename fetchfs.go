package main

import (
	"bytes"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"
)

// fetchFS opens files relative to a base URL through get.
type fetchFS struct {
	base *url.URL
	get  func(url string) ([]byte, error)
}

func newFetchFS(base string, get func(string) ([]byte, error)) (*fetchFS, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return &fetchFS{base: u, get: get}, nil
}

func (f *fetchFS) Open(name string) (fs.File, error) {
	u, err := resolveURL(f.base, name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	b, err := f.get(u)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &memFile{
		Reader: bytes.NewReader(b),
		info:   fileInfo{name: path.Base(name), size: int64(len(b))},
	}, nil
}

// resolveURL resolves ref against base. Data URIs are returned as is.
func resolveURL(base *url.URL, ref string) (string, error) {
	if strings.HasPrefix(ref, "data:") {
		return ref, nil
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(r).String(), nil
}

type memFile struct {
	*bytes.Reader
	info fileInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

func (f *memFile) Close() error {
	return nil
}

type fileInfo struct {
	name string
	size int64
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0444 }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() interface{}   { return nil }
