package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"syscall/js"

	"github.com/seqsense/arviewer/model"
)

type loadedModel struct {
	*model.Model
	// decoded texture images, null for images failed to load
	images map[*model.Image]js.Value
}

type modelResult struct {
	seq   int
	url   string
	model *loadedModel
	err   error
}

// loadModel fetches and flattens the glTF document at modelURL together
// with its external buffers and images.
func loadModel(modelURL string, log *logger) (*loadedModel, error) {
	fsys, err := newFetchFS(modelURL, func(u string) ([]byte, error) {
		log.Print("fetching " + shortURL(u))
		return fetchGet(u)
	})
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(fsys, modelURL)
	if err != nil {
		return nil, err
	}
	m, err := model.Decode(bytes.NewReader(b), fsys)
	if err != nil {
		return nil, err
	}
	if m.Skipped > 0 {
		log.Print(fmt.Sprintf("skipped %d non-triangle primitives", m.Skipped))
	}

	lm := &loadedModel{Model: m, images: make(map[*model.Image]js.Value)}
	for i := range m.Primitives {
		img := m.Primitives[i].Material.Texture
		if img == nil {
			continue
		}
		if _, ok := lm.images[img]; ok {
			continue
		}
		el, err := loadTextureImage(fsys, img)
		if err != nil {
			log.Error(err)
		}
		lm.images[img] = el
	}
	return lm, nil
}

func shortURL(u string) string {
	if len(u) > 96 {
		return u[:96] + "..."
	}
	return u
}
