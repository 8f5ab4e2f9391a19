package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

type part struct {
	name, content string
}

// Write serialises the presentation as a .pptx package.
func (p *Presentation) Write(w io.Writer) error {
	slides := make([]string, len(p.Slides))
	for i, s := range p.Slides {
		x, err := slideXML(s)
		if err != nil {
			return fmt.Errorf("pptx: slide %d: %w", i+1, err)
		}
		slides[i] = x
	}

	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}

	zw := zip.NewWriter(w)
	put := func(name, content string) error {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: created})
		if err != nil {
			return fmt.Errorf("pptx: create %s: %w", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			return fmt.Errorf("pptx: write %s: %w", name, err)
		}
		return nil
	}

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(len(slides))},
		{"_rels/.rels", relsXML(rootRels())},
		{"docProps/core.xml", coreXML(p.Title, p.Author, created)},
		{"docProps/app.xml", appXML(len(slides))},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", relsXML(presentationRels(len(slides)))},
		{"ppt/presProps.xml", presPropsXML},
		{"ppt/viewProps.xml", viewPropsXML},
		{"ppt/tableStyles.xml", tableStylesXML},
		{"ppt/theme/theme1.xml", themeXML()},
		{"ppt/slideMasters/slideMaster1.xml", masterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML(masterRels())},
	}
	for i, l := range Layouts {
		parts = append(parts,
			part{layoutPart(i), layoutXML(l)},
			part{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), relsXML(layoutRels)},
		)
	}
	for i, x := range slides {
		parts = append(parts,
			part{slidePart(i), x},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), relsXML(slideRels(p.Slides[i].Layout))},
		)
	}

	for _, pt := range parts {
		if err := put(pt.name, pt.content); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pptx: close package: %w", err)
	}
	return nil
}

// Bytes returns the serialised package.
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
