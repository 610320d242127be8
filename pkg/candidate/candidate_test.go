package candidate

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/kokoa/pkg/jamo"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		want  []string
	}{
		{"single", "가", []string{"가"}},
		{"greeting", "안녕하세요", []string{"안", "안녕", "안녕하", "안녕하세", "안녕하세요"}},
		{"coda then vowel onset", "설현이", []string{"설", "설현", "설현이"}},
		{"compound coda", "닭고기", []string{"닭", "닭고", "닭고기"}},
		{"empty", "", nil},
		{"bare consonant", "ㄱ", nil},
		{"bare vowel", "ㅏ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for c := range Expand(tt.chunk) {
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_Lengths(t *testing.T) {
	cands := All("안녕하세요")
	require.Len(t, cands, 5)
	for i, c := range cands {
		assert.Equal(t, i+1, c.Syllables)
		assert.Equal(t, i+1, utf8.RuneCountInString(c.Text))
		assert.Equal(t, jamo.Count(c.Text), c.Jamo)
	}
	assert.Equal(t, 3, cands[0].Jamo)
	assert.Equal(t, 6, cands[1].Jamo)
}

func TestExpand_StopsAtIncompleteSyllable(t *testing.T) {
	got := All("가ㄱ나")
	require.Len(t, got, 1)
	assert.Equal(t, "가", got[0].Text)
}

func TestStream_Completable(t *testing.T) {
	s := NewStream("안녕")
	require.Len(t, s, 6)

	want := []bool{false, false, false, true, false, false, true}
	for n := range want {
		assert.Equal(t, want[n], s.Completable(n), "prefix %d", n)
	}
}

func TestStream_Triples(t *testing.T) {
	s := NewStream("값이")
	assert.Equal(t, []jamo.Triple{
		{Onset: 'ㄱ', Nucleus: 'ㅏ', Coda: 'ㅄ'},
		{Onset: 'ㅇ', Nucleus: 'ㅣ'},
	}, s.Triples())
}

func FuzzExpand(f *testing.F) {
	f.Add("안녕하세요")
	f.Add("가나다라마바사")

	f.Fuzz(func(t *testing.T, chunk string) {
		n := utf8.RuneCountInString(chunk)
		prev := 0
		for c := range Expand(chunk) {
			if c.Syllables <= prev {
				t.Fatalf("candidate %q not strictly longer than previous", c.Text)
			}
			prev = c.Syllables
			if c.Syllables > n {
				t.Fatalf("candidate %q longer than chunk %q", c.Text, chunk)
			}
			for _, r := range c.Text {
				if !jamo.IsSyllable(r) {
					t.Fatalf("candidate %q holds non-syllable %U", c.Text, r)
				}
			}
		}
	})
}
