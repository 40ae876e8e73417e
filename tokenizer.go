package main

import (
	"encoding/json"
	"os"
	"strings"
	"unicode"
)

// BertTokenizer performs WordPiece tokenization for the embedding model
type BertTokenizer struct {
	vocab     map[string]int
	maxLength int
	clsID     int
	sepID     int
	padID     int
	unkID     int
}

// tokenizerFile maps the HuggingFace tokenizer.json layout
type tokenizerFile struct {
	Model struct {
		Vocab map[string]int `json:"vocab"`
	} `json:"model"`
	AddedTokens []struct {
		ID      int    `json:"id"`
		Content string `json:"content"`
	} `json:"added_tokens"`
}

// NewBertTokenizer loads a tokenizer from a HuggingFace tokenizer.json file
func NewBertTokenizer(path string, maxLength int) (*BertTokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf tokenizerFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}

	vocab := make(map[string]int, len(tf.Model.Vocab)+len(tf.AddedTokens))
	for token, id := range tf.Model.Vocab {
		vocab[token] = id
	}
	for _, at := range tf.AddedTokens {
		vocab[at.Content] = at.ID
	}

	return &BertTokenizer{
		vocab:     vocab,
		maxLength: maxLength,
		clsID:     vocab["[CLS]"],
		sepID:     vocab["[SEP]"],
		padID:     vocab["[PAD]"],
		unkID:     vocab["[UNK]"],
	}, nil
}

// Encode tokenizes text into fixed-length input_ids and attention_mask
func (t *BertTokenizer) Encode(text string) (inputIDs []int64, attentionMask []int64) {
	tokens := t.tokenize(strings.ToLower(strings.TrimSpace(text)))

	// Room for [CLS] and [SEP]
	if max := t.maxLength - 2; len(tokens) > max {
		tokens = tokens[:max]
	}

	inputIDs = make([]int64, t.maxLength)
	attentionMask = make([]int64, t.maxLength)

	inputIDs[0] = int64(t.clsID)
	attentionMask[0] = 1
	for i, token := range tokens {
		inputIDs[i+1] = int64(t.lookup(token))
		attentionMask[i+1] = 1
	}
	inputIDs[len(tokens)+1] = int64(t.sepID)
	attentionMask[len(tokens)+1] = 1

	for i := len(tokens) + 2; i < t.maxLength; i++ {
		inputIDs[i] = int64(t.padID)
	}

	return inputIDs, attentionMask
}

func (t *BertTokenizer) tokenize(text string) []string {
	var tokens []string
	for _, word := range splitWords(text) {
		if _, ok := t.vocab[word]; ok {
			tokens = append(tokens, word)
			continue
		}
		tokens = append(tokens, t.wordPiece(word)...)
	}
	return tokens
}

// splitWords splits on whitespace, treating punctuation as its own token
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// wordPiece greedily breaks a word into the longest known subwords
func (t *BertTokenizer) wordPiece(word string) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}

	var tokens []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := false
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if _, ok := t.vocab[sub]; ok {
				tokens = append(tokens, sub)
				found = true
				break
			}
			end--
		}
		if !found {
			return []string{"[UNK]"}
		}
		start = end
	}
	return tokens
}

func (t *BertTokenizer) lookup(token string) int {
	if id, ok := t.vocab[token]; ok {
		return id
	}
	return t.unkID
}
