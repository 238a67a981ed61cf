package hermes

const (
	StreamName   = "ARBITER_DECISIONS"
	StreamMaxAge = "720h" // 30 days

	subjectPrefix = "arbiter.decision."
	// SubjectDecisionsAll matches every decision event.
	SubjectDecisionsAll = subjectPrefix + ">"
)

func SubjectDecisionMade(decisionID string) string  { return subjectPrefix + decisionID + ".made" }
func SubjectDecisionEmpty(decisionID string) string { return subjectPrefix + decisionID + ".empty" }
