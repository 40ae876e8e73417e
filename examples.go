package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// FewShotExample pairs a natural-language request with the analysis
// response the generator should produce for it
type FewShotExample struct {
	Prompt   string
	Response string
}

// DefaultFewShots is the built-in example library. Responses are exact
// analysis-format JSON so the generator sees the shape it must emit.
var DefaultFewShots = []FewShotExample{
	{
		Prompt:   "show all files including hidden ones",
		Response: `{"is_command_request": true, "command": "ls -la", "description": "List all files in long format, including hidden files", "requires_input": false, "inputs": [], "input_description": "", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "find all python files modified in the last day",
		Response: `{"is_command_request": true, "command": "find . -name '*.py' -mtime -1", "description": "Find Python files modified within the last 24 hours", "requires_input": false, "inputs": [], "input_description": "", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "create a compressed archive of a folder",
		Response: `{"is_command_request": true, "command": "tar -czvf {archive_name}.tar.gz {folder_path}", "description": "Create a gzip-compressed tar archive of a folder", "requires_input": true, "inputs": ["archive_name", "folder_path"], "input_description": "Name for the archive and the folder to compress", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "how to create a python virtual environment",
		Response: `{"is_command_request": true, "command": "python3 -m venv {env_name}", "description": "Create a Python virtual environment in the named directory", "requires_input": true, "inputs": ["env_name"], "input_description": "Name for the virtual environment directory", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "push my branch to github",
		Response: `{"is_command_request": true, "command": "git push -u origin {branch_name}", "description": "Push the branch to origin and set it as upstream", "requires_input": true, "inputs": ["branch_name"], "input_description": "Name of the branch to push", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "how much disk space is left",
		Response: `{"is_command_request": true, "command": "df -h", "description": "Show disk usage for all mounted filesystems in human-readable units", "requires_input": false, "inputs": [], "input_description": "", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "what does the chmod command do",
		Response: `{"is_command_request": false, "command": "", "description": "", "requires_input": false, "inputs": [], "input_description": "", "is_question": true, "answer": "chmod changes the access permissions of files and directories. Permissions can be given in octal form (chmod 644 file) or symbolically (chmod u+x file)."}`,
	},
	{
		Prompt:   "kill whatever is using a port",
		Response: `{"is_command_request": true, "command": "lsof -ti :{port} | xargs kill", "description": "Find the process listening on a port and terminate it", "requires_input": true, "inputs": ["port"], "input_description": "Port number to free up", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "show the 20 largest files here",
		Response: `{"is_command_request": true, "command": "du -ah . | sort -rh | head -n 20", "description": "List the 20 largest files and directories under the current directory", "requires_input": false, "inputs": [], "input_description": "", "is_question": false, "answer": ""}`,
	},
	{
		Prompt:   "what is the difference between grep and egrep",
		Response: `{"is_command_request": false, "command": "", "description": "", "requires_input": false, "inputs": [], "input_description": "", "is_question": true, "answer": "grep matches basic regular expressions while egrep (grep -E) matches extended regular expressions, where +, ?, | and grouping work without backslashes."}`,
	},
}

// DefaultFewShotCount is how many examples are included per analysis call
const DefaultFewShotCount = 4

// ExampleRetriever selects the library examples most similar to a prompt
type ExampleRetriever struct {
	embedder *Embedder
	library  []FewShotExample
	vectors  [][]float32
}

// NewExampleRetriever creates a retriever over the given library
func NewExampleRetriever(embedder *Embedder, library []FewShotExample) *ExampleRetriever {
	return &ExampleRetriever{
		embedder: embedder,
		library:  library,
	}
}

// Retrieve returns the k examples closest to the prompt, best first
func (r *ExampleRetriever) Retrieve(ctx context.Context, prompt string, k int) ([]FewShotExample, error) {
	if len(r.library) == 0 || k <= 0 {
		return nil, nil
	}
	if k > len(r.library) {
		k = len(r.library)
	}

	if err := r.ensureVectors(ctx); err != nil {
		return nil, err
	}

	query, err := r.embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, err
	}

	type scored struct {
		index int
		score float32
	}
	scores := make([]scored, len(r.library))
	for i, vec := range r.vectors {
		scores[i] = scored{index: i, score: cosineSimilarity(query, vec)}
	}
	sort.Slice(scores, func(a, b int) bool { return scores[a].score > scores[b].score })

	selected := make([]FewShotExample, 0, k)
	for _, s := range scores[:k] {
		selected = append(selected, r.library[s.index])
	}
	return selected, nil
}

func (r *ExampleRetriever) ensureVectors(ctx context.Context) error {
	if r.vectors != nil {
		return nil
	}
	vectors := make([][]float32, len(r.library))
	for i, ex := range r.library {
		vec, err := r.embedder.Embed(ctx, ex.Prompt)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	r.vectors = vectors
	return nil
}

// FormatExamples renders retrieved examples for the analysis prompt
func FormatExamples(examples []FewShotExample) string {
	if len(examples) == 0 {
		return ""
	}

	var b strings.Builder
	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Request: %s\nResponse: %s", ex.Prompt, ex.Response)
	}
	return b.String()
}
