package answer

import (
	"fmt"
	"strings"

	"github.com/carecompass/compass/internal/domain/plan"
)

// outOfDomainResponse is the canned terminal response for queries the
// relevance gate rejects. Rejection is a designed outcome, not an error.
const outOfDomainResponse = `I'm a specialized assistant for ALS caregiving support, so I can only help with questions about caring for someone with ALS: breathing and ventilation, feeding, secretion management, equipment, medication routines, mobility, communication, and caregiver wellbeing.

Your question seems to be outside that area. Please ask me something about ALS caregiving and I'll do my best to help.`

// emergencyContacts is included in every safety-critical fallback. It must
// never depend on a failing component.
const emergencyContacts = `**IMMEDIATE ACTION:**
1. Call emergency services NOW:
   - India: 102 (Ambulance) / 108 (Emergency)
   - USA: 911
   - EU: 112

2. Stay with the patient
3. If breathing difficulty: Position upright at 45 degree angle
4. If choking: Attempt back blows if trained`

// emergencyProtocolResponse is the static response when the generation
// capability fails during an emergency.
const emergencyProtocolResponse = `EMERGENCY SITUATION DETECTED

` + emergencyContacts + `

**This assistant cannot provide emergency medical care.**
**Professional help is required immediately.**

Do not delay seeking help.`

const emergencySystemPrompt = "You are an emergency medical guidance assistant. Prioritize immediate safety and action."

const baseSystemPrompt = `You are an empathetic, knowledgeable assistant specialized in ALS caregiving.

**YOUR ROLE:**
- Primary: Support ALS caregivers with evidence-based, practical guidance
- Context: Focused on Indian caregivers but with global medical knowledge
- Approach: Multi-step reasoning, synthesis from diverse sources

**CRITICAL RULES:**
1. EMERGENCIES: If the query involves breathing difficulty, choking, or an urgent crisis:
   - Immediately advise calling emergency services (India: 102/108, USA: 911)
   - Provide first-aid guidance if applicable
   - Do NOT delay with extensive information

2. INDIA PRIORITY: Prioritize information from the Indian caregiver community
   - This is real experience from hundreds of Indian families
   - Cost information in rupees is highly valuable
   - Local context matters

3. EVIDENCE-BASED: Synthesize from multiple sources
   - Compare community experience with medical guidelines
   - Be transparent about confidence level

4. NEVER GENERATE:
   - Personal information (names, phones, emails)
   - Medical diagnoses or prescriptions
   - False hope or unverified claims

**ATTRIBUTION FORMAT:**
- Community: "According to the ALS caregiver community..."
- Medical: "According to [Organization]..."

**TONE:** Compassionate, practical, evidence-based`

// systemPrompt builds the plan-conditional system prompt.
func systemPrompt(p plan.QueryPlan) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)

	switch p.QueryType {
	case plan.Emergency:
		b.WriteString(`

**EMERGENCY MODE ACTIVE:**
- Lead with immediate action steps
- Be concise and directive
- Include emergency contacts prominently`)
	case plan.Comparison:
		b.WriteString(`

**COMPARISON MODE:**
- Create a clear comparison structure
- Include pros and cons
- Include costs for the Indian context`)
	}

	if p.NeedsCostInfo {
		b.WriteString(`

**COST INFORMATION:**
- Provide ranges (budget/mid/premium)
- Include one-time vs recurring costs
- Mention government and charity options if known`)
	}

	return b.String()
}

// userPrompt combines the query, the assembled context, and a
// plan-conditional response template.
func userPrompt(query, context string, p plan.QueryPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**USER QUERY:**\n%s\n", query)
	fmt.Fprintf(&b, "\n**KNOWLEDGE BASE CONTEXT:**\n%s\n", context)

	b.WriteString(`
**YOUR REASONING PROCESS:**

Step 1: ANALYZE THE QUERY
- What is the caregiver really asking?
- What is their level of urgency?

Step 2: EVALUATE SOURCES
- Which sources are most relevant?
- Do community experiences align with medical guidance?
- Is India-specific information available?

Step 3: SYNTHESIZE ANSWER
- What is the core answer?
- What warnings or cautions should be included?
- Are there cost implications for India?
`)

	b.WriteString(responseTemplate(p))
	b.WriteString("\n**Now provide your complete response:**\n")
	return b.String()
}

func responseTemplate(p plan.QueryPlan) string {
	if p.QueryType == plan.Comparison {
		return `
Format:
### Comparison: [Topic A] vs [Topic B]

**Quick Answer:**
[One sentence recommendation based on community consensus]

**Detailed Comparison:**

| Aspect | Option A | Option B |
|--------|----------|----------|
| [aspect] | [details] | [details] |

**Community Consensus:**
[What families have found works best]

**Cost Comparison (India):**
- Option A: [amount]
- Option B: [amount]

**Recommendation:**
[Clear guidance based on context]
`
	}

	return `
Format:
### [Main Topic]

**Direct Answer:** [1-2 sentences]

**Key Points:**
1. [First point]
2. [Second point]
3. [Third point]

### For Indian Caregivers
[India-specific guidance including costs and availability]

**When to Seek Help:**
[Warning signs requiring medical attention]

*Consult healthcare professionals for personalized advice.*
`
}

// emergencyPrompt builds the fast-path user prompt from the emergency
// context block.
func emergencyPrompt(query, context string) string {
	return fmt.Sprintf(`EMERGENCY QUERY: %s

Relevant emergency cases from community:
%s

Provide IMMEDIATE actionable guidance:
1. What to do RIGHT NOW
2. When to call emergency services
3. What information to have ready

Be direct, clear, and prioritize safety.`, query, context)
}

// fallbackResponse is the technical-difficulty response for generation
// failures outside emergencies.
const fallbackResponse = `I apologize, but I'm experiencing technical difficulties.

**For immediate ALS caregiving support:**
- Contact your primary support group
- Reach out to your care team

Please try your question again, or contact healthcare professionals directly.`
