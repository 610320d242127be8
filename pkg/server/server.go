package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/kokoa/pkg/config"
	"github.com/bastiangx/kokoa/pkg/dictionary"
	"github.com/bastiangx/kokoa/pkg/jamo"
	"github.com/bastiangx/kokoa/pkg/lexicon"
)

const defaultLimit = 10

// Server answers msgpack requests read from one stream on another.
type Server struct {
	lex     *lexicon.Lexicon
	cfg     config.ServerConfig
	loader  *dictionary.Loader
	resizer *dictionary.Resizer

	dec *msgpack.Decoder
	out *bufio.Writer
	enc *msgpack.Encoder
}

// NewServer creates a server over lex reading requests from r and writing responses to w.
func NewServer(lex *lexicon.Lexicon, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		lex: lex,
		cfg: cfg,
		dec: msgpack.NewDecoder(bufio.NewReader(r)),
		out: out,
		enc: msgpack.NewEncoder(out),
	}
}

// WithDictionary enables dict requests. After every resize the lexicon is
// rebuilt over the loader's trie.
func (s *Server) WithDictionary(loader *dictionary.Loader) *Server {
	s.loader = loader
	s.resizer = dictionary.NewResizer(loader)
	return s
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.sendResponse(StatusResponse{Status: "ready", Words: s.lex.Len()})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// The stream cannot be resynchronized after a bad frame.
			s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "tokenize":
		s.handleTokenize(req)
	case "decompose":
		s.handleDecompose(req)
	case "complete":
		s.handleComplete(req)
	case "dict":
		s.handleDictionary(req)
	case "health":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok", Words: s.lex.Len()})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %q", req.Op), 400)
	}
}

func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(Error{ID: id, Error: message, Code: code})
}

func (s *Server) checkText(req Request, text string) bool {
	if text == "" {
		s.sendError(req.ID, "Missing text", 400)
		return false
	}
	if s.cfg.MaxInput > 0 && len(text) > s.cfg.MaxInput {
		s.sendError(req.ID, fmt.Sprintf("Input exceeds maximum length of %d bytes", s.cfg.MaxInput), 413)
		return false
	}
	return true
}

func (s *Server) handleTokenize(req Request) {
	if !s.checkText(req, req.Text) {
		return
	}

	start := time.Now()
	toks := s.lex.Tokenize(req.Text)
	elapsed := time.Since(start)

	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Text: t.Text, Known: t.Known, Class: t.Class.String()}
	}
	s.sendResponse(TokenizeResponse{
		ID:        req.ID,
		Tokens:    out,
		Count:     len(out),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleDecompose(req Request) {
	if !s.checkText(req, req.Text) {
		return
	}

	triples := jamo.DecomposeAll(req.Text)
	out := make([]Triple, len(triples))
	for i, t := range triples {
		out[i] = Triple{Onset: part(t.Onset), Nucleus: part(t.Nucleus), Coda: part(t.Coda)}
	}
	s.sendResponse(DecomposeResponse{
		ID:       req.ID,
		Triples:  out,
		Composed: jamo.ComposeAll(triples),
	})
}

func part(r rune) string {
	if r == jamo.None {
		return ""
	}
	return string(r)
}

func (s *Server) handleComplete(req Request) {
	if !s.checkText(req, req.Prefix) {
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := time.Now()
	entries := s.lex.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	suggestions := make([]CompletionSuggestion, len(entries))
	for i, e := range entries {
		suggestions[i] = CompletionSuggestion{Word: e.Word, Rank: uint16(i + 1), Score: e.Score}
	}
	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleDictionary(req Request) {
	if s.resizer == nil {
		s.sendError(req.ID, "Dictionary operations need a chunk directory", 409)
		return
	}

	switch req.Action {
	case "get_info":
		s.sendDictionaryInfo(req.ID)
	case "get_options":
		opts, err := s.resizer.Options()
		if err != nil {
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		out := make([]DictionarySizeOption, len(opts))
		for i, o := range opts {
			out[i] = DictionarySizeOption{ChunkCount: o.ChunkCount, WordCount: o.WordCount, SizeLabel: o.SizeLabel}
		}
		s.sendResponse(DictionaryResponse{ID: req.ID, Status: "ok", Options: out})
	case "set_size":
		if req.ChunkCount == nil {
			s.sendError(req.ID, "Missing 'chunk_count' parameter", 400)
			return
		}
		if err := s.resizer.SetSize(*req.ChunkCount); err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		s.lex = lexicon.FromTrie(s.loader.Trie())
		s.sendDictionaryInfo(req.ID)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown dict action: %q", req.Action), 400)
	}
}

func (s *Server) sendDictionaryInfo(id string) {
	stats := s.loader.GetStats()
	s.sendResponse(DictionaryResponse{
		ID:              id,
		Status:          "ok",
		CurrentChunks:   stats.LoadedChunks,
		AvailableChunks: stats.AvailableChunks,
		Words:           stats.LoadedWords,
	})
}
