package jamo

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		input rune
		want  Triple
	}{
		{"open syllable", '가', Triple{Onset: 'ㄱ', Nucleus: 'ㅏ'}},
		{"closed syllable", '안', Triple{Onset: 'ㅇ', Nucleus: 'ㅏ', Coda: 'ㄴ'}},
		{"compound nucleus", '왜', Triple{Onset: 'ㅇ', Nucleus: 'ㅙ'}},
		{"compound coda", '닭', Triple{Onset: 'ㄷ', Nucleus: 'ㅏ', Coda: 'ㄺ'}},
		{"block end", '힣', Triple{Onset: 'ㅎ', Nucleus: 'ㅣ', Coda: 'ㅎ'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecompose_NotApplicable(t *testing.T) {
	for _, r := range []rune{'!', 'a', ' ', '1', 'ㄱ', 'ㅏ', 0xABFF, 0xD7A4} {
		_, err := Decompose(r)
		assert.ErrorIs(t, err, ErrNotApplicable, "rune %U", r)
		assert.Equal(t, Triple{Onset: r}, DecomposeOrSelf(r))
	}
}

func TestCompose(t *testing.T) {
	r, err := Compose('ㄱ', 'ㅏ', None)
	require.NoError(t, err)
	assert.Equal(t, '가', r)

	r, err = Compose('ㅎ', 'ㅣ', 'ㅎ')
	require.NoError(t, err)
	assert.Equal(t, '힣', r)
}

func TestCompose_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		triple Triple
	}{
		{"missing nucleus", Triple{Onset: 'ㄱ'}},
		{"compound consonant onset", Triple{Onset: 'ㄳ', Nucleus: 'ㅏ'}},
		{"vowel as coda", Triple{Onset: 'ㄱ', Nucleus: 'ㅏ', Coda: 'ㅏ'}},
		{"punctuation", Triple{Onset: '!'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.triple.Onset, tt.triple.Nucleus, tt.triple.Coda)
			assert.ErrorIs(t, err, ErrNotApplicable)
			assert.Equal(t, tt.triple.Onset, ComposeOrOnset(tt.triple))
		})
	}
}

func TestRoundTrip_EverySyllable(t *testing.T) {
	for r := rune(syllableBase); r <= syllableLast; r++ {
		triple, err := Decompose(r)
		require.NoError(t, err)
		got, err := Compose(triple.Onset, triple.Nucleus, triple.Coda)
		require.NoError(t, err)
		if got != r {
			t.Fatalf("Compose(Decompose(%U)) = %U", r, got)
		}
	}
}

func TestRoundTrip_EveryTriple(t *testing.T) {
	for _, o := range onsets {
		for _, n := range nuclei {
			for _, c := range codas {
				r, err := Compose(o, n, c)
				require.NoError(t, err)
				got, err := Decompose(r)
				require.NoError(t, err)
				want := Triple{Onset: o, Nucleus: n, Coda: c}
				if got != want {
					t.Fatalf("Decompose(Compose(%v)) = %v", want, got)
				}
			}
		}
	}
}

func TestDecomposeAll_MixedScript(t *testing.T) {
	triples := DecomposeAll("안녕하세요!")
	require.Len(t, triples, 6)
	assert.Equal(t, Triple{Onset: 'ㄴ', Nucleus: 'ㅕ', Coda: 'ㅇ'}, triples[1])
	assert.Equal(t, Triple{Onset: '!'}, triples[5])
	assert.Equal(t, "안녕하세요!", ComposeAll(triples))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(""))
	assert.Equal(t, 2, Count("가"))
	assert.Equal(t, 6, Count("안녕"))
	assert.Equal(t, 5, Count("안녀"))
	assert.Equal(t, 1, Count("!"))
	assert.Equal(t, 3, Count("닭"))
}

func TestTriple_String(t *testing.T) {
	assert.Equal(t, "ㅇㅏㄴ", DecomposeOrSelf('안').String())
	assert.Equal(t, "ㄱㅏ", DecomposeOrSelf('가').String())
	assert.Equal(t, "!", DecomposeOrSelf('!').String())
}

func FuzzComposeAll(f *testing.F) {
	f.Add("안녕하세요!")
	f.Add("abc 123 가나다")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		if got := ComposeAll(DecomposeAll(s)); got != s {
			t.Fatalf("ComposeAll(DecomposeAll(%q)) = %q", s, got)
		}
	})
}
