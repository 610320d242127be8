/*
Package server implements msgpack IPC for tokenizing text with a discovered vocabulary.

Clients write msgpack maps to stdin and read one msgpack map per request from
stdout. Every request carries an ID and an op name; the response echoes the ID.

Tokenize splits text into vocabulary words and remainders:

	{"id": "req_001", "op": "tokenize", "text": "안녕하세요!"}
	{"id": "req_001", "tk": [{"t": "안녕", "k": true, "c": "hangul"}, ...], "n": 3, "us": 41}

Decompose returns the jamo triple of every character and the recomposed text:

	{"id": "req_002", "op": "decompose", "text": "닭"}
	{"id": "req_002", "j": [{"o": "ㄷ", "n": "ㅏ", "c": "ㄺ"}], "r": "닭"}

Complete lists vocabulary words extending a prefix, best cohesion score first:

	{"id": "req_003", "op": "complete", "p": "학", "l": 10}
	{"id": "req_003", "s": [{"w": "학교", "r": 1, "sc": 0.94}], "n": 1, "us": 12}

Dict resizes the loaded dictionary when the server runs on chunk files:

	{"id": "dict_001", "op": "dict", "action": "set_size", "chunk_count": 2}
	{"id": "dict_002", "op": "dict", "action": "get_options"}

Health reports readiness and the vocabulary size. Failures answer with an
Error carrying an HTTP-like status code.
*/
package server

// Request is the single inbound message shape. Fields unused by an op are omitted.
type Request struct {
	ID         string `msgpack:"id"`
	Op         string `msgpack:"op"`
	Text       string `msgpack:"text,omitempty"`
	Prefix     string `msgpack:"p,omitempty"`
	Limit      int    `msgpack:"l,omitempty"`
	Action     string `msgpack:"action,omitempty"`
	ChunkCount *int   `msgpack:"chunk_count,omitempty"`
}

// Token is one tokenized piece.
type Token struct {
	Text  string `msgpack:"t"`
	Known bool   `msgpack:"k"`
	Class string `msgpack:"c"`
}

// TokenizeResponse answers a tokenize request.
type TokenizeResponse struct {
	ID        string  `msgpack:"id"`
	Tokens    []Token `msgpack:"tk"`
	Count     int     `msgpack:"n"`
	TimeTaken int64   `msgpack:"us"`
}

// Triple is the jamo of one character. Missing parts are empty strings.
type Triple struct {
	Onset   string `msgpack:"o"`
	Nucleus string `msgpack:"n"`
	Coda    string `msgpack:"c"`
}

// DecomposeResponse answers a decompose request.
type DecomposeResponse struct {
	ID       string   `msgpack:"id"`
	Triples  []Triple `msgpack:"j"`
	Composed string   `msgpack:"r"`
}

// CompletionSuggestion is one completed word.
type CompletionSuggestion struct {
	Word  string  `msgpack:"w"`
	Rank  uint16  `msgpack:"r"`
	Score float64 `msgpack:"sc"`
}

// CompletionResponse answers a complete request.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"n"`
	TimeTaken   int64                  `msgpack:"us"`
}

// DictionarySizeOption - dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID              string                 `msgpack:"id"`
	Status          string                 `msgpack:"status"`
	CurrentChunks   int                    `msgpack:"current_chunks,omitempty"`
	AvailableChunks int                    `msgpack:"available_chunks,omitempty"`
	Words           int                    `msgpack:"words,omitempty"`
	Options         []DictionarySizeOption `msgpack:"options,omitempty"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Words  int    `msgpack:"words"`
}

// Error holds basic error information for a failed request
type Error struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
