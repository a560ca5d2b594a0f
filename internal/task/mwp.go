package task

import "fmt"

// mwpSpec checks a math word problem's solution for numerical and
// logical consistency with the problem statement
type mwpSpec struct{}

func (mwpSpec) Task() Task { return MWP }

func (mwpSpec) RequiredFields() []string { return []string{"problem", "solution"} }

func (mwpSpec) AnswerField() string { return "solution" }

func (mwpSpec) PlanPrompt(req Request) string {
	return fmt.Sprintf(`You are provided with a math word problem and its corresponding solution.
Your task is to determine whether the solution contains numerical or logical errors.
Let's understand the task and devise a plan to solve the task.
Problem:%s
Solution:%s
`, req.Field("problem"), req.Field("solution"))
}

func (mwpSpec) ReasonPrompt(req Request, plan string) string {
	return fmt.Sprintf(`You are provided with a math word problem and its corresponding solution.
Your task is to determine whether the solution contains numerical or logical errors.
Problem:%s
Solution:%s
Plan:%s
Let's carry out the plan and solve the task step by step. Show the reasoning process.
`, req.Field("problem"), req.Field("solution"), plan)
}

func (mwpSpec) JudgePrompt(req Request, plan, analysis string) string {
	return fmt.Sprintf(`You are provided with a math word problem and its corresponding solution.
Your task is to determine whether the solution contains numerical or logical errors.
Problem:%s
Solution:%s
Analysis:%s
Please conclude whether the solution contains numerical or logical errors with Yes or No.
`, req.Field("problem"), req.Field("solution"), analysis)
}

func (mwpSpec) RevisePrompt(req Request, analysis string) string {
	return fmt.Sprintf(`Given a math word problem, its corresponding erroneous solution, and an analysis explaining why the solution is wrong.
Your task is to solve the problem correctly.
Problem:%s
Erroneous Solution:%s
Analysis:%s
Just output the solution, without including any additional explanation in the output.
`, req.Field("problem"), req.Field("solution"), analysis)
}
