package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "PDF"
	FormatDOCX DocumentFormat = "DOCX"
)

const (
	docxBodyPart      = "word/document.xml"
	wordprocessingML  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	maxDocumentXMLLen = 32 << 20
)

type DocumentParserService interface {
	ExtractText(data []byte, format DocumentFormat) (string, error)
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

// FormatFromFilename maps an upload name to a document format by extension, ignoring case.
func FormatFromFilename(filename string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ExtractText implements DocumentParserService.
func (p *documentParserService) ExtractText(data []byte, format DocumentFormat) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDOCXText(data)
	default:
		return "", ErrUnsupportedFormat
	}

	if err != nil {
		return "", &DocumentParseError{Format: format, Err: err}
	}

	return norm.NFKC.String(text), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The decoder panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		if pageText == "" {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", docxBodyPart, err)
		}
		defer rc.Close()

		return paragraphsFromDocumentXML(io.LimitReader(rc, maxDocumentXMLLen))
	}

	return "", fmt.Errorf("no %s found in DOCX", docxBodyPart)
}

// paragraphsFromDocumentXML emits the direct w:p children of w:body in document
// order. Tables, text boxes and alternate-content blocks are not part of that
// sequence. Each non-empty paragraph is written followed by a newline.
func paragraphsFromDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		out       strings.Builder
		paragraph strings.Builder
		path      []xml.Name
		inText    bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name)
			if !isRunContent(path) {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				paragraph.WriteString("\t")
			case "br", "cr":
				paragraph.WriteString("\n")
			}
		case xml.EndElement:
			if isBodyParagraph(path) {
				if paragraph.Len() > 0 {
					out.WriteString(paragraph.String())
					out.WriteString("\n")
				}
				paragraph.Reset()
			}
			inText = false
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return out.String(), nil
}

func isWord(name xml.Name, local string) bool {
	return name.Space == wordprocessingML && name.Local == local
}

// isBodyParagraph reports whether path ends at document/body/p.
func isBodyParagraph(path []xml.Name) bool {
	return len(path) == 3 &&
		isWord(path[0], "document") &&
		isWord(path[1], "body") &&
		isWord(path[2], "p")
}

// isRunContent reports whether path ends at a child of a run that sits directly in a
// body paragraph, or in a hyperlink inside one.
func isRunContent(path []xml.Name) bool {
	switch len(path) {
	case 5:
		return isBodyParagraph(path[:3]) && isWord(path[3], "r")
	case 6:
		return isBodyParagraph(path[:3]) && isWord(path[3], "hyperlink") && isWord(path[4], "r")
	default:
		return false
	}
}
