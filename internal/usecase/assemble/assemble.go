// Package assemble renders retrieved candidates into bounded, labeled,
// source-attributed context blocks for the generation step. Per-document
// character budgets are a hard prompt-size control, not a relevance
// decision.
package assemble

import (
	"fmt"
	"strings"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/document"
	"github.com/carecompass/compass/internal/domain/plan"
	"github.com/carecompass/compass/internal/usecase/retrieval"
)

// Per-section document counts and character budgets.
const (
	emergencyDocs   = 3
	emergencyBudget = 600
	qaDocs          = 4
	qaBudget        = 700
	indiaDocs       = 3
	indiaBudget     = 600
	medicalDocs     = 3
	medicalBudget   = 500
)

// EmptyPlaceholder marks a section with no retrieved content. Present
// sections are never silently dropped.
const EmptyPlaceholder = "[no content found]"

const noInformation = "No specific information found in knowledge base."

const sectionRule = "============================================================"
const itemRule = "----------------------------------------"

// Flat renders a flat candidate list as labeled sections in fixed
// priority order: emergency experiences first when the plan is in
// emergency mode, then community Q&A, then locale-specific guidance,
// then medical authority sources.
func Flat(docs []candidate.Candidate, p plan.QueryPlan) string {
	if len(docs) == 0 {
		return noInformation
	}

	var (
		qaPairs   []candidate.Candidate
		emergency []candidate.Candidate
		india     []candidate.Candidate
		medical   []candidate.Candidate
	)
	for _, c := range docs {
		meta := c.Document().Meta()
		if meta.ContentType == document.TypeQAPair {
			qaPairs = append(qaPairs, c)
		}
		if meta.Emergency {
			emergency = append(emergency, c)
		}
		if meta.IndiaSpecific {
			india = append(india, c)
		}
		if strings.Contains(c.Collection(), "medical") {
			medical = append(medical, c)
		}
	}

	var b strings.Builder

	if p.EmergencyMode && len(emergency) > 0 {
		writeHeader(&b, "EMERGENCY EXPERIENCES FROM COMMUNITY")
		for i, c := range capDocs(emergency, emergencyDocs) {
			fmt.Fprintf(&b, "\n[EMERGENCY CASE #%d]\n", i+1)
			fmt.Fprintf(&b, "Source: %s\n", c.Source())
			fmt.Fprintf(&b, "Relevance: %.2f\n", c.Score())
			writeBody(&b, c, emergencyBudget)
		}
	}

	if len(qaPairs) > 0 {
		writeHeader(&b, "COMMUNITY Q&A - REAL SOLUTIONS")
		for i, c := range capDocs(qaPairs, qaDocs) {
			marker := ""
			if c.Document().Meta().IndiaSpecific {
				marker = " [India]"
			}
			fmt.Fprintf(&b, "\n[Q&A #%d]%s\n", i+1, marker)
			fmt.Fprintf(&b, "Trust Score: %d/10\n", c.Document().Meta().Trust())
			if line := costLine(c.Document().Meta().Costs); line != "" {
				b.WriteString(line + "\n")
			}
			writeBody(&b, c, qaBudget)
		}
	}

	if p.IndiaPriority && len(india) > 0 {
		writeHeader(&b, "INDIA-SPECIFIC GUIDANCE")
		for i, c := range capDocs(india, indiaDocs) {
			fmt.Fprintf(&b, "\n[INDIA SOURCE #%d]\n", i+1)
			fmt.Fprintf(&b, "Source: %s\n", c.Source())
			writeBody(&b, c, indiaBudget)
		}
	}

	if len(medical) > 0 {
		writeHeader(&b, "MEDICAL AUTHORITY SOURCES")
		for i, c := range capDocs(medical, medicalDocs) {
			fmt.Fprintf(&b, "\n[MEDICAL SOURCE #%d]\n", i+1)
			fmt.Fprintf(&b, "Organization: %s\n", c.Source())
			writeBody(&b, c, medicalBudget)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return noInformation
	}
	return out
}

// FromBuckets renders the three multi-agent buckets as fixed sections.
// Every section is always present; an empty bucket renders the explicit
// placeholder so the generation step can state that a source had nothing.
func FromBuckets(buckets retrieval.Buckets, p plan.QueryPlan) string {
	var b strings.Builder

	writeBucket(&b, "COMMUNITY EXPERIENCE", buckets.Community, qaBudget, func(c candidate.Candidate) string {
		return fmt.Sprintf("Source: %s (Trust: %d/10)", c.Source(), c.Document().Meta().Trust())
	})
	writeBucket(&b, "INDIA-SPECIFIC GUIDANCE", buckets.India, indiaBudget, func(c candidate.Candidate) string {
		return fmt.Sprintf("Source: %s", c.Source())
	})
	writeBucket(&b, "MEDICAL AUTHORITY SOURCES", buckets.Medical, medicalBudget, func(c candidate.Candidate) string {
		return fmt.Sprintf("Organization: %s (Trust: %d/10)", c.Source(), c.Document().Meta().Trust())
	})

	return strings.TrimSpace(b.String())
}

func writeBucket(b *strings.Builder, title string, docs []candidate.Candidate, budget int, attribution func(candidate.Candidate) string) {
	writeHeader(b, title)
	if len(docs) == 0 {
		b.WriteString(EmptyPlaceholder + "\n")
		return
	}
	for i, c := range docs {
		fmt.Fprintf(b, "\n[#%d]\n", i+1)
		b.WriteString(attribution(c) + "\n")
		writeBody(b, c, budget)
	}
}

func writeHeader(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(sectionRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(sectionRule + "\n")
}

func writeBody(b *strings.Builder, c candidate.Candidate, budget int) {
	b.WriteString("\n" + truncate(c.Document().Content(), budget) + "\n")
	b.WriteString(itemRule + "\n")
}

// costLine averages the cost figures mentioned in a document.
func costLine(costs []float64) string {
	if len(costs) == 0 {
		return ""
	}
	var sum float64
	for _, c := range costs {
		sum += c
	}
	return fmt.Sprintf("Costs mentioned: ~₹%d (avg)", int(sum/float64(len(costs))))
}

func capDocs(docs []candidate.Candidate, n int) []candidate.Candidate {
	if len(docs) > n {
		return docs[:n]
	}
	return docs
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
