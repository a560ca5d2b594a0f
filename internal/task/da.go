package task

import "fmt"

// daSpec checks a dialogue response against the dialogue history
type daSpec struct{}

func (daSpec) Task() Task { return DA }

func (daSpec) RequiredFields() []string { return []string{"context", "response"} }

func (daSpec) AnswerField() string { return "response" }

func (daSpec) PlanPrompt(req Request) string {
	return fmt.Sprintf(`You are provided with a dialogue history and its corresponding response.
Your task is to determine whether the response contains hallucinated content.
Let's understand the task and devise a plan to solve the task.
Dialogue History:%s
Response:%s
`, req.Field("context"), req.Field("response"))
}

func (daSpec) ReasonPrompt(req Request, plan string) string {
	return fmt.Sprintf(`You are provided with a dialogue history and its corresponding response.
Your task is to determine whether the response contains hallucinated content.
Dialogue History:%s
Response:%s
Plan:%s
Let's carry out the plan and solve the task step by step. Show the reasoning process.
`, req.Field("context"), req.Field("response"), plan)
}

func (daSpec) JudgePrompt(req Request, plan, analysis string) string {
	return fmt.Sprintf(`You are provided with a dialogue history and its corresponding response.
Your task is to determine whether the response contains hallucinated content.
Dialogue History:%s
Response:%s
Analysis:%s
Please conclude whether the response contains hallucinated content with Yes or No.
`, req.Field("context"), req.Field("response"), analysis)
}

func (daSpec) RevisePrompt(req Request, analysis string) string {
	return fmt.Sprintf(`Given a dialogue history, its corresponding hallucinated response, and an analysis explaining why the response contains hallucinated content.
Your task is to regenerate the response without introducing any hallucinations.
Dialogue History:%s
Hallucinated Response:%s
Analysis:%s
Just output the response, without including any additional explanation in the output.
`, req.Field("context"), req.Field("response"), analysis)
}
