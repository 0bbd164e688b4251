package submission

import (
	"fmt"
	"strings"
)

// RenderedMessage is the immutable HTML + plain-text pair produced once
// per request and handed to the mail transport.
type RenderedMessage struct {
	HTML string
	Text string
}

// Placeholders for absent or explicitly empty fields. The renderer
// substitutes rather than omits so staff reading the mail can tell
// "not provided" apart from a rendering gap.
const (
	placeholderAbsent     = "N/A"
	placeholderNoAllergy  = "None reported"
	placeholderNoNotes    = "None"
	placeholderNoMedGroup = "No medications reported"
)

type field struct {
	label string
	value string
}

type section struct {
	title  string
	fields []field
}

// Render produces the message pair for a sanitized submission. Both
// bodies contain identical field values in identical order. No
// escaping happens here — input strings are already entity-encoded —
// and no value is reformatted, localized, or reordered.
func Render(s Submission) RenderedMessage {
	sections := []section{
		{
			title: "Patient",
			fields: []field{
				{"First Name", orAbsent(s.FirstName)},
				{"Last Name", orAbsent(s.LastName)},
				{"Date of Birth", orAbsent(s.DateOfBirth)},
			},
		},
		{
			title: "Contact",
			fields: []field{
				{"Phone", orAbsent(s.Phone)},
				{"Email", orAbsent(s.Email)},
			},
		},
		{
			title: "Current Pharmacy",
			fields: []field{
				{"Name", orAbsent(s.PharmacyName)},
				{"Phone", orAbsent(s.PharmacyPhone)},
			},
		},
	}

	medSection := section{title: "Medications"}
	for i, med := range s.Medications {
		medSection.fields = append(medSection.fields,
			field{fmt.Sprintf("Medication %d Name", i+1), orAbsent(med.Name)},
			field{fmt.Sprintf("Medication %d Dosage", i+1), orAbsent(med.Dosage)},
			field{fmt.Sprintf("Medication %d Frequency", i+1), orAbsent(med.Frequency)},
		)
	}
	sections = append(sections, medSection)

	sections = append(sections, section{
		title: "Additional Information",
		fields: []field{
			{"Allergies", orPlaceholder(s.Allergies, placeholderNoAllergy)},
			{"Notes", orPlaceholder(s.Notes, placeholderNoNotes)},
		},
	})

	return RenderedMessage{
		HTML: renderHTML(sections),
		Text: renderText(sections),
	}
}

func renderHTML(sections []section) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString("<h1>Prescription Transfer Request</h1>\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", sec.title)
		if len(sec.fields) == 0 {
			fmt.Fprintf(&b, "<p>%s</p>\n", placeholderNoMedGroup)
			continue
		}
		for _, f := range sec.fields {
			fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>\n", f.label, f.value)
		}
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func renderText(sections []section) string {
	var b strings.Builder
	b.WriteString("Prescription Transfer Request\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sec.title)
		b.WriteString("\n")
		if len(sec.fields) == 0 {
			fmt.Fprintf(&b, "  %s\n", placeholderNoMedGroup)
			continue
		}
		for _, f := range sec.fields {
			fmt.Fprintf(&b, "  %s: %s\n", f.label, f.value)
		}
	}
	return b.String()
}

func orAbsent(v string) string {
	return orPlaceholder(v, placeholderAbsent)
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
