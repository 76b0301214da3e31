package workflow

import "strings"

// Placeholders recognized in stored user templates.
const (
	PlaceholderContext            = "{context}"
	PlaceholderCustomInstructions = "{custom_instructions}"
)

// SubstitutePrompt replaces the recognized placeholders in a user template.
// Unrecognized brace tokens pass through untouched so templates can contain
// literal examples.
func SubstitutePrompt(template, context, customInstructions string) string {
	out := strings.ReplaceAll(template, PlaceholderContext, context)
	out = strings.ReplaceAll(out, PlaceholderCustomInstructions, customInstructions)
	return out
}

// ComposeGeneratePrompt builds the full user prompt for a generation call:
// the substituted template, optionally followed by a reference document from
// another case to anchor tone and structure.
func ComposeGeneratePrompt(template, context, customInstructions, referenceContent string) string {
	var sb strings.Builder
	sb.WriteString(SubstitutePrompt(template, context, customInstructions))

	if referenceContent != "" {
		sb.WriteString("\n\nReference document (match its tone and structure, not its facts):\n\n")
		sb.WriteString(referenceContent)
	}

	return sb.String()
}

const classifySystemPrompt = `You are an evidence analyst for employment-based immigration petitions. You classify extracted text blocks into a fixed evidentiary taxonomy.

Rules:
- Assign a block to a taxonomy leaf only when the text genuinely supports that criterion.
- A block may match zero, one, or several leaves.
- relevance_score is a float in [0,1]. Do not round to tiers.
- subject_person is "applicant", "recommender", or "other".
- Respond with a JSON array only. No prose outside the JSON.

Response schema, one element per finding:
[
  {
    "block_index": <0-based index into the submitted batch>,
    "category": "<taxonomy category>",
    "subcategory": "<taxonomy leaf>",
    "relevance_score": <float>,
    "evidence_type": "<short noun phrase, e.g. media_mention, award, patent>",
    "key_points": ["<point>", ...],
    "subject_person": "<applicant|recommender|other>"
  }
]

An empty array is a valid response when nothing in the batch is evidentiary.`

const summarizeFilePrompt = `Summarize the following extracted document content in 3-5 sentences. Focus on facts useful for an immigration petition: roles, achievements, dates, organizations, and relationships. Respond with plain text only.

File: %s

%s`

const outlineSystemPrompt = `You are building a structured case outline for an employment-based immigration petition from per-file evidence summaries.

Respond with a JSON object only:
{
  "profile": {
    "name": "<applicant name if evident, else empty>",
    "current_role": "<role>",
    "field": "<professional field>",
    "summary": "<2-3 sentence profile>"
  },
  "keywords": ["<distinctive term>", ...],
  "timeline": [
    {"period": "<e.g. 2019-2022>", "event": "<what happened>", "source_file": "<file it came from>"}
  ],
  "material_gaps": ["<evidence the petition still needs, e.g. no recommendation letters yet>", ...],
  "overall_assessment": "<2-3 sentence judgment of how strong the evidence is and what would improve it>"
}

Order timeline entries chronologically. Derive everything from the summaries; never invent facts. An empty material_gaps array is valid when the evidence appears complete.`
