package docgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/patronacct/draftboard/internal/models"
)

const (
	chairmanNameFallback = "____________________"
	dinFallback          = "__________"

	emptyBodyPlaceholder = `<p style="text-align:center; color:#ccc;">[Document Draft Content Placeholder]</p>`
)

// IsSimplified reports whether the document renders on the simplified path:
// no letterhead, no signature footer, single-purpose template.
func IsSimplified(docType, subType string) bool {
	return docType == models.CategoryResignation ||
		docType == models.CategoryDIR2 ||
		subType == models.SubTypeIncNOC ||
		subType == models.SubTypeSpecimenSignature
}

// Assemble composes company details, merged resolution items and the
// header/footer configuration into one inline-styled HTML document suitable
// for the contenteditable preview, PDF rasterization and persisted storage.
func Assemble(details models.CompanyDetails, items []models.ResolutionItem, header models.HeaderFooterConfig, docType, subType string) string {
	if docType == models.CategoryResolution {
		return assembleCertifiedCopy(details, items, header)
	}

	body := mergedItems(details, items, false)
	if body == "" {
		body = emptyBodyPlaceholder
	}

	headerHTML := ""
	footerHTML := ""
	if !IsSimplified(docType, subType) {
		if header.ShowHeader {
			headerHTML = fmt.Sprintf(`
        <div style="text-align: center; border-bottom: 1px solid #000; padding-bottom: 20px; margin-bottom: 30px;">
           <h1 style="font-size: 16pt; font-weight: bold; margin:0;">%s</h1>
           <p style="font-size: 9pt; margin:5px 0;">%s</p>
        </div>`,
				fallback(header.HeaderTitle, details.CompanyName),
				fallback(header.HeaderSubtitle, details.Address))
		}
		footerHTML = fmt.Sprintf(`
        <div style="margin-top: 50px;">
           <p>For <strong>%s</strong></p>
           <br/><br/>
           <p><strong>%s</strong><br/>%s</p>
        </div>`,
			details.CompanyName,
			fallback(header.SignatoryName, details.ChairmanName),
			fallback(header.SignatoryDesignation, "Director"))
	}

	return fmt.Sprintf(`
      %s
      <div style="padding: 20px;">
        %s
      </div>
      %s
    `, headerHTML, body, footerHTML)
}

// assembleCertifiedCopy renders the board-resolution CTC layout: company
// banner, certification sentence, item list, the two standard authorization
// clauses and the certified-true-copy signatory block.
func assembleCertifiedCopy(details models.CompanyDetails, items []models.ResolutionItem, header models.HeaderFooterConfig) string {
	dayName, longDate := formatMeetingDate(details.MeetingDate)
	place := resolveMeetingPlace(details)

	body := mergedItems(details, items, true)
	if body == "" {
		body = emptyBodyPlaceholder
	}

	signName := fallback(header.SignatoryName, fallback(details.ChairmanName, chairmanNameFallback))
	signDesignation := fallback(header.SignatoryDesignation, "Director")
	signDIN := fallback(header.SignatoryDIN, fallback(details.ChairmanDIN, dinFallback))

	return fmt.Sprintf(`
      <div style="font-family: 'Times New Roman', serif; padding: 40px; line-height: 1.5; color: #000; font-size: 12pt;">
        <div style="text-align: center; margin-bottom: 25px; border-bottom: 1px solid #000; padding-bottom: 15px;">
          <h1 style="font-size: 16pt; font-weight: bold; text-transform: uppercase; margin: 0; letter-spacing: 1px;">%s</h1>
          <p style="font-size: 10pt; margin: 5px 0;"><strong>Regd. Office:</strong> %s</p>
          <p style="font-size: 10pt; margin: 0;"><strong>CIN:</strong> %s | <strong>Email:</strong> %s</p>
        </div>

        <div style="text-align: center; font-weight: bold; text-decoration: underline; margin-bottom: 30px; line-height: 1.5;">
          CERTIFIED TRUE COPY OF THE RESOLUTION PASSED AT THE MEETING<br/>
          OF THE BOARD OF DIRECTORS OF<br/>
          %s<br/>
          HELD ON %s, %s AT %s<br/>
          AT %s
        </div>

        <br/>

        <div style="text-align: center; font-weight: bold; margin-bottom: 20px;">BOARD RESOLUTION</div>

        <div style="text-align: justify; margin: 30px 0;">
          %s
          %s
        </div>

        <br/>

        <div style="margin-top: 40px;">
          <p style="font-weight: bold;">CERTIFIED TRUE COPY</p>
          <p style="margin-top: 10px; font-weight: bold;">For %s</p>

          <div style="margin-top: 60px;">
             <p>__________________________</p>
             <p style="margin-top: 5px;">Name: <strong>%s</strong></p>
             <p style="margin-top: 5px;">Designation: <strong>%s</strong></p>
             <p style="margin-top: 5px;">DIN / Membership No.: <strong>%s</strong></p>
             <p style="margin-top: 5px;">Date: __________________</p>
             <p style="margin-top: 5px;">Place: __________________</p>
          </div>
        </div>
      </div>
    `,
		details.CompanyName, details.Address, details.CIN, details.CompanyEmail,
		strings.ToUpper(details.CompanyName), strings.ToUpper(dayName), strings.ToUpper(longDate), details.MeetingTime, place,
		body, standardClauses(details),
		details.CompanyName, signName, signDesignation, signDIN)
}

// mergedItems runs each item through the substitution engine and concatenates
// the results in order. Items whose draft text is empty (for example when the
// item references a template that never existed) contribute nothing rather
// than aborting the document. ITEM NO. labels appear only with two or more
// items; paragraphs=true splits plain-text drafts on newlines into <p> blocks.
func mergedItems(details models.CompanyDetails, items []models.ResolutionItem, paragraphs bool) string {
	sys := SystemBindings(details)
	labeled := len(items) >= 2

	var parts []string
	for i, item := range items {
		if strings.TrimSpace(item.DraftText) == "" {
			continue
		}
		draft := ExpandSignatoryBoxes(item.DraftText, item.CustomValues)
		merged := Merge(draft, FieldBindings(item.Fields, item.CustomValues), sys)

		if paragraphs {
			var b strings.Builder
			for _, line := range strings.Split(merged, "\n") {
				fmt.Fprintf(&b, `<p style="margin-bottom: 10px;">%s</p>`, line)
			}
			merged = fmt.Sprintf(`<div style="text-align: justify; line-height: 1.5; font-size: 12pt;">%s</div>`, b.String())
		}

		label := ""
		if labeled {
			label = fmt.Sprintf(`<div style="text-decoration: underline; font-weight: bold; margin-bottom: 10px;">ITEM NO. %d: %s</div>`,
				i+1, strings.ToUpper(item.TemplateName))
		}
		parts = append(parts, fmt.Sprintf(`<div style="margin-bottom: 25px;">%s%s</div>`, label, merged))
	}
	return strings.Join(parts, "\n")
}

// standardClauses returns the two fixed authorization clauses appended to
// every board resolution: ROC filing authorization and certified-copy
// issuance. These are structural boilerplate, not user content.
func standardClauses(details models.CompanyDetails) string {
	return fmt.Sprintf(`
      <p style="text-align: justify; margin-bottom: 15px;">
        "<strong>RESOLVED FURTHER THAT</strong> %s (DIN: %s), Director of the Company, be and is hereby authorized to sign, execute, submit and file all necessary documents, applications, returns and e-forms with the Registrar of Companies, Ministry of Corporate Affairs and to do all such acts, deeds and things as may be necessary to give effect to this resolution."
      </p>
      <p style="text-align: justify; margin-bottom: 15px;">
        "<strong>RESOLVED FURTHER THAT</strong> a certified true copy of this resolution be provided to such authorities or persons as may be required."
      </p>
    `, details.ChairmanName, fallback(details.ChairmanDIN, "________"))
}

// formatMeetingDate renders a YYYY-MM-DD meeting date as the weekday name and
// the long-form "D Month YYYY" date used by the certification banner. An
// unparseable date degrades to the raw input so a partial draft still previews.
func formatMeetingDate(date string) (dayName, longDate string) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "", date
	}
	return t.Weekday().String(), fmt.Sprintf("%d %s %d", t.Day(), t.Month().String(), t.Year())
}

// resolveMeetingPlace returns the uppercased banner place: the full registered
// address when the entered place is the phrase "registered office" (any case),
// otherwise the entered place verbatim.
func resolveMeetingPlace(details models.CompanyDetails) string {
	if strings.EqualFold(strings.TrimSpace(details.MeetingPlace), "registered office") {
		return strings.ToUpper(details.Address)
	}
	return strings.ToUpper(details.MeetingPlace)
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
