package task

import "fmt"

// tscSpec checks a text for self-contradictory claims
type tscSpec struct{}

func (tscSpec) Task() Task { return TSC }

func (tscSpec) RequiredFields() []string { return []string{"text"} }

func (tscSpec) AnswerField() string { return "text" }

func (tscSpec) PlanPrompt(req Request) string {
	return fmt.Sprintf(`You are provided with a text.
Your task is to determine whether the text contains self-contradictory claims.
Let's understand the task and devise a plan to solve the task.
Text:%s
`, req.Field("text"))
}

func (tscSpec) ReasonPrompt(req Request, plan string) string {
	return fmt.Sprintf(`You are provided with a text.
Your task is to determine whether the text contains self-contradictory claims.
Text:%s
Plan:%s
Let's carry out the plan and solve the task step by step. Show the reasoning process.
`, req.Field("text"), plan)
}

func (tscSpec) JudgePrompt(req Request, plan, analysis string) string {
	return fmt.Sprintf(`You are provided with a text.
Your task is to determine whether the text contains self-contradictory claims.
Text:%s
Analysis:%s
Please conclude whether the text contains self-contradictory claims with Yes or No.
`, req.Field("text"), analysis)
}

func (tscSpec) RevisePrompt(req Request, analysis string) string {
	return fmt.Sprintf(`Given a text containing self-contradictory claims and an analysis explaining where the text contradicts itself.
Your task is to revise the text to remove the contradictions while preserving its meaning.
Text:%s
Analysis:%s
Just output the revised text, without including any additional explanation in the output.
`, req.Field("text"), analysis)
}
