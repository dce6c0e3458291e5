package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

var _ Extractor = DOCX{}

// DOCX extracts paragraph text from Word documents.
type DOCX struct{}

// Extensions returns the handled extensions.
func (DOCX) Extensions() []string {
	return []string{"docx"}
}

type docxBody struct {
	Body struct {
		Paragraphs []struct {
			Runs []struct {
				Text []string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

type docxCore struct {
	Title string `xml:"title"`
}

// Extract reads word/document.xml, one line per paragraph. The title comes
// from docProps/core.xml when present.
func (DOCX) Extract(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, invalid("docx", err)
	}

	raw, err := readZipEntry(zr, "word/document.xml")
	if err != nil {
		return nil, invalid("docx", err)
	}
	var body docxBody
	if err := xml.Unmarshal(raw, &body); err != nil {
		return nil, invalid("docx", err)
	}

	paragraphs := make([]string, 0, len(body.Body.Paragraphs))
	for _, p := range body.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				b.WriteString(t)
			}
		}
		paragraphs = append(paragraphs, b.String())
	}

	res := &Result{Text: strings.TrimSpace(strings.Join(paragraphs, "\n"))}
	if raw, err := readZipEntry(zr, "docProps/core.xml"); err == nil {
		var core docxCore
		if xml.Unmarshal(raw, &core) == nil {
			res.Title = strings.TrimSpace(core.Title)
		}
	}
	return res, nil
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, errors.New(name + " not found")
}
