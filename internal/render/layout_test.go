package render

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cvassistenza/backend/internal/model/cv"
)

func fullRecord() cv.Record {
	return cv.Record{
		PersonalInfo: cv.PersonalInfo{
			Name:        "Maria Popescu",
			Phone:       "+39 333 1234567",
			Email:       "maria.popescu@example.com",
			Address:     "Via Roma 12, Milano",
			Nationality: "Rumena",
		},
		ProfessionalSummary: "Badante con oltre dieci anni di esperienza nell'assistenza ad anziani, affidabile ed empatica, abituata alla convivenza e alla gestione completa della casa.",
		WorkExperience: []cv.Experience{
			{
				Position:    "Badante convivente",
				Company:     "Famiglia Rossi",
				Location:    "Milano, Italia",
				Period:      "03/2018 - 06/2023",
				Description: "Assistenza completa a una signora anziana: igiene personale, preparazione dei pasti, somministrazione dei farmaci e accompagnamento alle visite mediche.",
			},
		},
		Skills:    []string{"Cucina", "Pulizia"},
		Languages: []cv.LanguageSkill{{Language: "Italiano", Level: "B2"}, {Language: "Rumeno", Level: "Madrelingua"}},
		Education: []cv.Education{{Title: "Diploma di scuola superiore", Institution: "Liceo Teoretic", Year: "1998", Location: "Bucarest, Romania"}},
		References: "Disponibili su richiesta",
	}
}

func allText(doc Document) string {
	var b strings.Builder
	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			b.WriteString(block.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func TestLayoutDeterministic(t *testing.T) {
	record := fullRecord()

	first := Layout(record)
	second := Layout(record)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical records must produce identical layouts")
	}
}

func TestLayoutOmitsEmptySections(t *testing.T) {
	doc := Layout(cv.Record{})

	text := allText(doc)
	for _, heading := range []string{"PROFILO PROFESSIONALE", "ESPERIENZA LAVORATIVA", "COMPETENZE", "LINGUE", "ISTRUZIONE", "REFERENZE"} {
		if strings.Contains(text, heading) {
			t.Fatalf("empty record must not emit heading %q", heading)
		}
	}

	// Identity header always renders, with the generic fallback title.
	if len(doc.Pages) != 1 || len(doc.Pages[0].Blocks) != 1 {
		t.Fatalf("expected exactly the fallback title block, got %+v", doc.Pages)
	}
	if doc.Pages[0].Blocks[0].Text != "Curriculum Vitae" {
		t.Fatalf("unexpected title: %q", doc.Pages[0].Blocks[0].Text)
	}
}

func TestLayoutSectionOrder(t *testing.T) {
	text := allText(Layout(fullRecord()))

	order := []string{
		"Maria Popescu",
		"Tel: +39 333 1234567",
		"PROFILO PROFESSIONALE",
		"ESPERIENZA LAVORATIVA",
		"COMPETENZE",
		"LINGUE",
		"ISTRUZIONE",
		"REFERENZE",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(text, want)
		if idx == -1 {
			t.Fatalf("missing %q in layout", want)
		}
		if idx < last {
			t.Fatalf("%q rendered out of order", want)
		}
		last = idx
	}
}

func TestLayoutSkillsJoined(t *testing.T) {
	doc := Layout(cv.Record{Skills: []string{"Cucina", "Pulizia"}})

	found := false
	for _, block := range doc.Pages[0].Blocks {
		if block.Text == "Cucina"+SkillSeparator+"Pulizia" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected one line with both skills joined by the separator")
	}
}

func TestLayoutRendersEveryField(t *testing.T) {
	record := fullRecord()
	text := allText(Layout(record))

	literals := []string{
		record.PersonalInfo.Name,
		record.PersonalInfo.Phone,
		record.PersonalInfo.Email,
		record.PersonalInfo.Address,
		record.PersonalInfo.Nationality,
		record.WorkExperience[0].Position,
		record.WorkExperience[0].Company,
		record.WorkExperience[0].Location,
		record.WorkExperience[0].Period,
		"Cucina", "Pulizia",
		"Italiano: B2", "Rumeno: Madrelingua",
		record.Education[0].Title,
		record.Education[0].Institution,
		record.Education[0].Year,
		record.References,
	}
	for _, literal := range literals {
		if !strings.Contains(text, literal) {
			t.Fatalf("missing literal %q in layout", literal)
		}
	}

	// Wrapped paragraphs keep every word even when split across lines.
	joined := strings.ReplaceAll(text, "\n", " ")
	for _, word := range strings.Fields(record.ProfessionalSummary) {
		if !strings.Contains(joined, word) {
			t.Fatalf("missing summary word %q", word)
		}
	}
}

func TestLayoutStartsNewPageOnOverflow(t *testing.T) {
	record := fullRecord()
	for i := 0; i < 30; i++ {
		record.WorkExperience = append(record.WorkExperience, record.WorkExperience[0])
	}

	doc := Layout(record)
	if len(doc.Pages) < 2 {
		t.Fatalf("expected overflow onto a second page, got %d page(s)", len(doc.Pages))
	}
	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			if block.Y > pageHeight-margin {
				t.Fatalf("block crosses the bottom margin at y=%.1f", block.Y)
			}
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	record := fullRecord()
	if got := Filename(record, now); got != "CV_Maria_Popescu_1700000000000.pdf" {
		t.Fatalf("unexpected filename: %q", got)
	}

	record.PersonalInfo.Name = cv.Placeholder
	if got := Filename(record, now); got != "CV_Curriculum_1700000000000.pdf" {
		t.Fatalf("unexpected fallback filename: %q", got)
	}
}

func TestWritePDF(t *testing.T) {
	data, err := WritePDF(Layout(fullRecord()))
	if err != nil {
		t.Fatalf("WritePDF err: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatal("output does not look like a PDF")
	}
}
