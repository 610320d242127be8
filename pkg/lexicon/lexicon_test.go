package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/kokoa/pkg/chunk"
	"github.com/bastiangx/kokoa/pkg/cohesion"
)

func testLexicon() *Lexicon {
	return FromEntries([]cohesion.Entry{
		{Word: "학교", Score: 0.9, Count: 4},
		{Word: "학생", Score: 0.8, Count: 3},
		{Word: "학교생활", Score: 0.95, Count: 2},
		{Word: "안녕", Score: 1, Count: 2},
		{Word: "공부", Score: 0.7, Count: 2},
	})
}

func words(entries []cohesion.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Word)
	}
	return out
}

func TestLexicon_AddNeverOverwrites(t *testing.T) {
	l := testLexicon()
	assert.Equal(t, 5, l.Len())
	assert.False(t, l.Add(cohesion.Entry{Word: "학교", Score: 0.1}))
	assert.False(t, l.Add(cohesion.Entry{}))

	e, ok := l.Get("학교")
	require.True(t, ok)
	assert.Equal(t, 0.9, e.Score)
	assert.False(t, l.Has("학"))
	assert.False(t, l.Has(""))
}

func TestLexicon_Complete(t *testing.T) {
	l := testLexicon()

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"학", 0, []string{"학교생활", "학교", "학생"}},
		{"학", 2, []string{"학교생활", "학교"}},
		{"학교", 0, []string{"학교생활"}},
		{"사과", 5, nil},
		{"", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, words(l.Complete(tt.prefix, tt.limit)))
		})
	}
}

func TestFromVocabulary(t *testing.T) {
	v := cohesion.NewVocabulary()
	v.Add(cohesion.Entry{Word: "안녕", Score: 1})
	v.Add(cohesion.Entry{Word: "사과", Score: 0.5})

	l := FromVocabulary(v)
	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Has("사과"))
}

func TestFromTrie(t *testing.T) {
	trie := patricia.NewTrie()
	trie.Insert(patricia.Prefix("나무"), cohesion.Entry{Word: "나무", Score: 0.4})
	trie.Insert(patricia.Prefix("나비"), cohesion.Entry{Word: "나비", Score: 0.6})

	l := FromTrie(trie)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"나비", "나무"}, words(l.Complete("나", 0)))
}

func TestTokenize(t *testing.T) {
	l := testLexicon()

	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "greeting",
			text: "안녕하세요!",
			want: []Token{
				{Text: "안녕", Class: chunk.Hangul, Known: true},
				{Text: "하세요", Class: chunk.Hangul},
				{Text: "!", Class: chunk.Other},
			},
		},
		{
			name: "longest prefix wins",
			text: "학교생활에서 공부",
			want: []Token{
				{Text: "학교생활", Class: chunk.Hangul, Known: true},
				{Text: "에서", Class: chunk.Hangul},
				{Text: " ", Class: chunk.Other},
				{Text: "공부", Class: chunk.Hangul, Known: true},
			},
		},
		{
			name: "recursive remainder",
			text: "학생학교",
			want: []Token{
				{Text: "학생", Class: chunk.Hangul, Known: true},
				{Text: "학교", Class: chunk.Hangul, Known: true},
			},
		},
		{
			name: "mixed script",
			text: "abc 123",
			want: []Token{
				{Text: "abc", Class: chunk.Latin},
				{Text: " ", Class: chunk.Other},
				{Text: "123", Class: chunk.Digit},
			},
		},
		{name: "empty", text: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Tokenize(tt.text))
		})
	}
}

func FuzzTokenize(f *testing.F) {
	for _, seed := range []string{"안녕하세요!", "학교생활에서 공부", "ㄱ학교", "", "a가1"} {
		f.Add(seed)
	}
	l := testLexicon()
	f.Fuzz(func(t *testing.T, text string) {
		var b strings.Builder
		for _, tok := range l.Tokenize(text) {
			if tok.Known {
				require.True(t, l.Has(tok.Text))
			}
			b.WriteString(tok.Text)
		}
		require.Equal(t, text, b.String())
	})
}
