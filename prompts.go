package main

import "strings"

// AnalysisTemplate classifies a request as a command request or a
// question and extracts the command skeleton. Placeholders:
// {directory_structure}, {examples}, {prompt}.
const AnalysisTemplate = `Here's a summary of the current project directory structure (limited to maintain token count):

{directory_structure}
{examples}
Based on this structure summary, analyze the following request and determine if it requires user input to generate a proper command.
First, determine if this is a request for a command or just a general question.
Return a JSON object with the following structure:

{
  "is_command_request": true/false,
  "command": "shell command to execute (with placeholders if user input is needed)",
  "description": "brief description of what the command does (10 words or less)",
  "requires_input": true/false,
  "inputs": ["array of input prompts to ask the user"] (empty if no input required),
  "input_description": "A brief explanation of what inputs are needed and why (only if requires_input is true)",
  "is_question": true/false (true if this is a general question, not a command request),
  "answer": "brief answer to the question (max 50 words)" (only if is_question is true)
}

IMPORTANT: If the user's request is ambiguous but appears to be asking about information you can give based on the context you have about the directory or files, assume it's a question (is_question=true) rather than a command request.
IMPORTANT: "How" is a good indicator that the user is asking for commands most of the time.
IMPORTANT: Take a lot of input (ex: asking for commit message, repo link).
IMPORTANT: If you are not sure about the directory/files/folder the user wants to talk about, assume the one you are currently in.

VERY IMPORTANT: Use ONLY double quotes in your JSON, not single quotes. Escape any double quotes inside strings with a backslash (\").
ONLY return the JSON, nothing else.


Request: {prompt}
`

// FinalizationTemplate inserts collected user inputs into a command
// template. Placeholders: {directory_structure}, {command_template},
// {user_inputs}.
const FinalizationTemplate = `Here's a summary of the current project directory structure:

{directory_structure}

Based on this structure, I have a command that requires user input.
Command template: {command_template}
User provided inputs: {user_inputs}

Generate the final command with the user inputs properly inserted.
Return a JSON object with "command" and "description" fields.
ONLY return the JSON, nothing else.
`

// renderTemplate substitutes {name} placeholders. Unknown placeholders
// are left in place so a template typo is visible rather than silent.
func renderTemplate(tmpl string, vars map[string]string) string {
	for name, value := range vars {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", value)
	}
	return tmpl
}
