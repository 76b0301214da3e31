package packages

import "github.com/google/uuid"

// Compiled-in generation defaults per package type. A stored agent config
// for the same (project, package type) takes precedence.

const defaultUserTemplate = `Case evidence:

{context}

Additional instructions from the preparer:

{custom_instructions}

Write the document now. Respond with the document text only, no preamble.`

var defaultSystemPrompts = map[PackageType]string{
	PersonalStatement: `You are drafting a first-person personal statement for an employment-based immigration petition. Write in the applicant's voice. Ground every claim in the supplied evidence and cite nothing that is not present. Aim for a confident, factual register of roughly 900-1200 words.`,

	CVResume: `You are drafting a curriculum vitae for an employment-based immigration petition. Organize the supplied evidence into standard CV sections (summary, experience, education, publications, awards, service). Use concise bullet points, keep dates and institutions exact, and omit sections with no supporting evidence.`,

	RecommendationLetter: `You are drafting a letter of recommendation for an employment-based immigration petition, written in the recommender's voice. Establish the recommender's credentials from the evidence, describe the relationship to the applicant, and support each substantive claim with specifics drawn from the evidence. Aim for roughly 700-1000 words.`,

	CoverLetter: `You are drafting a petition cover letter addressed to the adjudicating officer. Summarize the applicant's qualifications against the claimed criteria, reference the supporting exhibits by description, and maintain a formal legal register. Aim for roughly 600-900 words.`,
}

// DefaultAgentConfig returns the compiled-in generation configuration for a
// package type.
func DefaultAgentConfig(projectID uuid.UUID, pt PackageType) AgentConfig {
	return AgentConfig{
		ProjectID:    projectID,
		PackageType:  pt,
		SystemPrompt: defaultSystemPrompts[pt],
		UserTemplate: defaultUserTemplate,
		Default:      true,
	}
}
