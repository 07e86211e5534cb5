package analysis

import (
	"fmt"
	"strings"

	"github.com/farhanmaulana/clinicdesk/internal/domain/reports"
)

const dateLayout = "January 2, 2006"

func imageInstruction(rep *reports.Report) string {
	return fmt.Sprintf(
		"Analyze this medical image from the report %q by %s, dated %s. "+
			"Provide detailed findings, a clinical impression, and recommendations.",
		rep.Title, rep.DoctorName, rep.CreatedAt.Format(dateLayout),
	)
}

func summaryPrompt(rep *reports.Report, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Medical report %q by %s, dated %s.\n\n",
		rep.Title, rep.DoctorName, rep.CreatedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Report content:\n%s\n\n", body)
	b.WriteString("Summarize this report. Cover, in order:\n")
	b.WriteString("1. Key findings\n")
	b.WriteString("2. Clinical impression\n")
	b.WriteString("3. Follow-up recommendations\n")
	b.WriteString("4. Notable abnormalities\n")
	return b.String()
}
