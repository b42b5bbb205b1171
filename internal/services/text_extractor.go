package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type TextExtractor interface {
	ExtractText(filename string, data []byte) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText picks a parser from the filename suffix and returns normalized
// text. Anything that is not .pdf, .doc or .docx is decoded as UTF-8 and
// never fails.
func (t *textExtractor) ExtractText(filename string, data []byte) (string, error) {
	lower := strings.ToLower(filename)

	var (
		text string
		err  error
	)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		text, err = extractPDFText(filename, data)
	case strings.HasSuffix(lower, ".docx"), strings.HasSuffix(lower, ".doc"):
		text, err = extractDocxText(filename, data)
	default:
		text = decodePlainText(data)
	}
	if err != nil {
		return "", err
	}

	return CleanText(text), nil
}

func extractPDFText(filename string, data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentParseError{Filename: filename, Cause: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentParseError{Filename: filename, Cause: err}
	}

	totalPage := reader.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("⚠️  Skipping page %d of %s: %v", pageIndex, filename, err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

func extractDocxText(filename string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentParseError{Filename: filename, Cause: fmt.Errorf("docx reader panic: %v", r)}
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentParseError{Filename: filename, Cause: err}
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", &DocumentParseError{Filename: filename, Cause: err}
	}

	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs walks WordprocessingML and returns the text of every w:p in
// document order, table cells included. Runs are concatenated; w:tab becomes
// a tab and w:br/w:cr a line break.
func docxParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []*strings.Builder
		open       []*strings.Builder
		inText     bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read document.xml: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				b := &strings.Builder{}
				paragraphs = append(paragraphs, b)
				open = append(open, b)
			case "t":
				inText = true
			case "tab":
				if len(open) > 0 {
					open[len(open)-1].WriteByte('\t')
				}
			case "br", "cr":
				if len(open) > 0 {
					open[len(open)-1].WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if len(open) > 0 {
					open = open[:len(open)-1]
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && len(open) > 0 {
				open[len(open)-1].Write(el)
			}
		}
	}

	out := make([]string, len(paragraphs))
	for i, b := range paragraphs {
		out[i] = b.String()
	}
	return out, nil
}

// decodePlainText drops byte sequences that are not valid UTF-8.
func decodePlainText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(text, "\ufeff")
}

// CleanText normalizes line breaks, trims every line and drops blank lines,
// so the result never contains an empty line or two consecutive newlines.
func CleanText(text string) string {
	lines := strings.FieldsFunc(text, isLineBreak)

	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
