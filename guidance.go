package starprep

// NewGuidance returns the static coaching prompts attached to every newly
// generated story. The text is deterministic, keyed by section, and
// independent of anything the AI backend returned.
func NewGuidance() *Guidance {
	return &Guidance{
		ProbingQuestions: map[string][]string{
			SectionSituation: {
				"What was at stake if nothing changed?",
				"Who else was affected by this situation?",
				"How did you first become aware of the problem?",
			},
			SectionAction: {
				"What alternatives did you consider and reject?",
				"Which part of the work was yours alone?",
				"What was the hardest decision along the way?",
			},
			SectionResult: {
				"Can you quantify the outcome?",
				"What changed for the team after this?",
				"What would you do differently next time?",
			},
		},
		ChallengeQuestions: map[string][]string{
			SectionSituation: {
				"An interviewer may ask: why hadn't this been solved before?",
				"Be ready to explain the constraints you were under.",
			},
			SectionAction: {
				"Be ready to defend your approach against the obvious alternative.",
				"Expect a follow-up on how you brought others along.",
			},
			SectionResult: {
				"Expect pushback if the result can't be measured.",
				"Be ready to connect this outcome to the role you're applying for.",
			},
		},
	}
}
