package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/cvassistenza/backend/internal/model/cv"
)

// Page geometry in millimeters (A4, portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0
	lineHeight = 6.0

	titleSize   = 24.0
	headingSize = 14.0
	contactSize = 11.0
	bodySize    = 10.0
	entrySize   = 12.0

	titleAdvance   = 15.0 // gap after the identity header
	headingAdvance = 8.0  // gap between a section heading and its body
	sectionGap     = 5.0  // gap after a section
	entryGap       = 3.0  // extra gap between education entries

	// Average Helvetica glyph width is about half the font size; font sizes
	// are in points, the page is in millimeters.
	ptToMM        = 25.4 / 72.0
	avgGlyphRatio = 0.5
)

// SkillSeparator joins the skill list into one flowing line.
const SkillSeparator = " • "

// TextBlock is one positioned run of text. Y is the text baseline.
type TextBlock struct {
	X    float64
	Y    float64
	Text string
	Size float64
	Bold bool
}

// Page is an ordered list of placed blocks.
type Page struct {
	Blocks []TextBlock
}

// Document is the transient layout output, consumed by WritePDF or any other
// sink. It is never persisted.
type Document struct {
	Pages []Page
}

// Layout flows the CV record into positioned text blocks. Pure and
// deterministic: identical records yield identical documents. Sections whose
// backing field or list is empty are omitted entirely; the identity header is
// always present, falling back to a generic title when the name is absent.
func Layout(record cv.Record) Document {
	l := &layouter{y: margin}
	l.newPage()

	title := strings.TrimSpace(record.PersonalInfo.Name)
	if title == "" {
		title = "Curriculum Vitae"
	}
	l.place(title, titleSize, true, titleAdvance)

	l.contactLines(record.PersonalInfo)

	if record.ProfessionalSummary != "" {
		l.section("PROFILO PROFESSIONALE")
		l.paragraph(record.ProfessionalSummary, bodySize)
		l.y += sectionGap
	}

	if len(record.WorkExperience) > 0 {
		l.section("ESPERIENZA LAVORATIVA")
		for _, exp := range record.WorkExperience {
			l.place(exp.Position, entrySize, true, lineHeight)
			l.place(exp.Company+" - "+exp.Location, bodySize, false, lineHeight)
			l.place(exp.Period, bodySize, false, lineHeight)
			if exp.Description != "" {
				l.paragraph(exp.Description, bodySize)
			}
			l.y += sectionGap
		}
	}

	if len(record.Skills) > 0 {
		l.section("COMPETENZE")
		l.paragraph(strings.Join(record.Skills, SkillSeparator), bodySize)
		l.y += sectionGap
	}

	if len(record.Languages) > 0 {
		l.section("LINGUE")
		for _, lang := range record.Languages {
			l.place(lang.Language+": "+lang.Level, bodySize, false, lineHeight)
		}
		l.y += sectionGap
	}

	if len(record.Education) > 0 {
		l.section("ISTRUZIONE")
		for _, edu := range record.Education {
			l.place(edu.Title, contactSize, true, lineHeight)
			l.place(edu.Institution+" - "+edu.Location, bodySize, false, lineHeight)
			l.place(edu.Year, bodySize, false, lineHeight+entryGap)
		}
	}

	if record.References != "" {
		l.section("REFERENZE")
		l.paragraph(record.References, bodySize)
	}

	return l.doc
}

// Filename derives the output name from the identity name, whitespace
// collapsed to underscores, plus a timestamp so repeated generations for the
// same person never collide.
func Filename(record cv.Record, now time.Time) string {
	stem := strings.TrimSpace(record.PersonalInfo.Name)
	if stem == "" || stem == cv.Placeholder {
		stem = "Curriculum"
	} else {
		stem = strings.Join(strings.Fields(stem), "_")
	}
	return fmt.Sprintf("CV_%s_%d.pdf", stem, now.UnixMilli())
}

type layouter struct {
	doc  Document
	page int
	y    float64
}

func (l *layouter) newPage() {
	l.doc.Pages = append(l.doc.Pages, Page{})
	l.page = len(l.doc.Pages) - 1
	l.y = margin
}

// place puts one line at the cursor and advances it. A line that would cross
// the bottom margin starts a new page first.
func (l *layouter) place(text string, size float64, bold bool, advance float64) {
	if l.y+advance > pageHeight-margin {
		l.newPage()
	}

	page := &l.doc.Pages[l.page]
	page.Blocks = append(page.Blocks, TextBlock{
		X:    margin,
		Y:    l.y,
		Text: text,
		Size: size,
		Bold: bold,
	})
	l.y += advance
}

func (l *layouter) section(heading string) {
	l.place(heading, headingSize, true, headingAdvance)
}

// paragraph wraps body text into lines constrained to the content width.
func (l *layouter) paragraph(text string, size float64) {
	for _, line := range wrapText(text, size) {
		l.place(line, size, false, lineHeight)
	}
}

func (l *layouter) contactLines(info cv.PersonalInfo) {
	lines := make([]string, 0, 4)
	if info.Phone != "" {
		lines = append(lines, "Tel: "+info.Phone)
	}
	if info.Email != "" {
		lines = append(lines, "Email: "+info.Email)
	}
	if info.Address != "" {
		lines = append(lines, "Indirizzo: "+info.Address)
	}
	if info.Nationality != "" {
		lines = append(lines, "Nazionalità: "+info.Nationality)
	}

	for _, line := range lines {
		l.place(line, contactSize, false, lineHeight)
	}
	if len(lines) > 0 {
		l.y += sectionGap
	}
}

// wrapText greedily wraps words so each line fits the content width, using an
// average glyph width for the font size. Deterministic by construction; a
// single word longer than the line gets a line of its own.
func wrapText(text string, size float64) []string {
	maxChars := int((pageWidth - 2*margin) / (size * avgGlyphRatio * ptToMM))
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > maxChars {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
