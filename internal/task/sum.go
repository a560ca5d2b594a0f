package task

import "fmt"

// sumSpec checks a summary against its source document
type sumSpec struct{}

func (sumSpec) Task() Task { return SUM }

func (sumSpec) RequiredFields() []string { return []string{"source_text", "summary"} }

func (sumSpec) AnswerField() string { return "summary" }

func (sumSpec) PlanPrompt(req Request) string {
	return fmt.Sprintf(`You are provided with a document and its corresponding summary.
Your task is to determine whether the summary contains hallucinated content.
Let's understand the task and devise a plan to solve the task.
Document:%s
Summary:%s
`, req.Field("source_text"), req.Field("summary"))
}

func (sumSpec) ReasonPrompt(req Request, plan string) string {
	return fmt.Sprintf(`You are provided with a document and its corresponding summary.
Your task is to determine whether the summary contains hallucinated content.
Document:%s
Summary:%s
Plan:%s
Let's carry out the plan and solve the task step by step. Show the reasoning process.
`, req.Field("source_text"), req.Field("summary"), plan)
}

func (sumSpec) JudgePrompt(req Request, plan, analysis string) string {
	return fmt.Sprintf(`You are provided with a document and its corresponding summary.
Your task is to determine whether the summary contains hallucinated content.
Document:%s
Summary:%s
Analysis:%s
Please conclude whether the summary contains hallucinated content with Yes or No.
`, req.Field("source_text"), req.Field("summary"), analysis)
}

func (sumSpec) RevisePrompt(req Request, analysis string) string {
	return fmt.Sprintf(`Given a document, its corresponding hallucinated summary, and an analysis explaining why the summary contains hallucinated content.
Your task is to regenerate the summary without introducing any hallucinations.
Document:%s
Hallucinated Summary:%s
Analysis:%s
Just output the summary, without including any additional explanation in the output.
`, req.Field("source_text"), req.Field("summary"), analysis)
}
