package task

import "fmt"

// qaSpec checks a question's answer for hallucinated content
type qaSpec struct{}

func (qaSpec) Task() Task { return QA }

func (qaSpec) RequiredFields() []string { return []string{"question", "answer"} }

func (qaSpec) AnswerField() string { return "answer" }

func (qaSpec) PlanPrompt(req Request) string {
	return fmt.Sprintf(`You are provided with a question and its corresponding answer.
Your task is to determine whether the answer contains hallucinated content.
Let's understand the task and devise a plan to solve the task.
Question:%s
Answer:%s
`, req.Field("question"), req.Field("answer"))
}

func (qaSpec) ReasonPrompt(req Request, plan string) string {
	return fmt.Sprintf(`You are provided with a question and its corresponding answer.
Your task is to determine whether the answer contains hallucinated content.
Question:%s
Answer:%s
Plan:%s
Let's carry out the plan and solve the task step by step. Show the reasoning process.
`, req.Field("question"), req.Field("answer"), plan)
}

func (qaSpec) JudgePrompt(req Request, plan, analysis string) string {
	return fmt.Sprintf(`You are provided with a question and its corresponding answer.
Your task is to determine whether the answer contains hallucinated content.
Question:%s
Answer:%s
Analysis:%s
Please conclude whether the answer contains hallucinated content with Yes or No.
`, req.Field("question"), req.Field("answer"), analysis)
}

func (qaSpec) RevisePrompt(req Request, analysis string) string {
	return fmt.Sprintf(`Given a question, its corresponding hallucinated answer, and an analysis explaining why the answer contains hallucinated content.
Your task is to answer the question without introducing any hallucinations.
Question:%s
Hallucinated Answer:%s
Analysis:%s
Just output the answer, without including any additional explanation in the output.
`, req.Field("question"), req.Field("answer"), analysis)
}
