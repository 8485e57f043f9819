package predict

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/tchap/go-patricia/v2/patricia"
)

const passage = "anybody can become angry that is easy but to be " +
	"angry with the right person and to the right degree " +
	"and at the right time and for the right purpose " +
	"and in the right way that is not within everybody's " +
	"power and is not easy"

func passageIndex(t *testing.T) *Index {
	t.Helper()
	tr := NewTrainer()
	tr.TrainString(passage)
	return tr.Finalize()
}

func countWord(text, word string) uint32 {
	var n uint32
	for _, w := range strings.Split(text, " ") {
		if w == word {
			n++
		}
	}
	return n
}

func TestFinalizeSortsEntries(t *testing.T) {
	ix := passageIndex(t)
	records := ix.Records()
	if len(records) == 0 {
		t.Fatal("expected entries after finalize")
	}
	if records[0].Word != "and" {
		t.Errorf("expected first entry 'and', got '%s'", records[0].Word)
	}
	if want := countWord(passage, "and"); records[0].Score != want {
		t.Errorf("expected 'and' score %d, got %d", want, records[0].Score)
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Word >= records[i].Word {
			t.Errorf("entries out of order at %d: '%s' >= '%s'", i, records[i-1].Word, records[i].Word)
		}
	}
}

func TestPredictPassage(t *testing.T) {
	ix := passageIndex(t)

	testCases := []struct {
		prefix   string
		expected []Entry
	}{
		{"a", []Entry{{"and", 5}, {"angry", 2}, {"anybody", 1}, {"at", 1}}},
		{"an", []Entry{{"and", 5}, {"angry", 2}, {"anybody", 1}}},
		{"t", []Entry{{"the", 5}, {"that", 2}, {"to", 2}, {"time", 1}}},
		{"ri", []Entry{{"right", 5}}},
		{"every", []Entry{{"everybody's", 1}}},
		{"righteous", []Entry{}},
		{"x", []Entry{}},
	}

	for _, tc := range testCases {
		t.Run(tc.prefix, func(t *testing.T) {
			got, err := ix.Predict(tc.prefix)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("prefix '%s': expected %d results, got %d (%v)", tc.prefix, len(tc.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("prefix '%s' [%d]: expected %v, got %v", tc.prefix, i, tc.expected[i], got[i])
				}
			}
		})
	}
}

func TestPredictTopResultIsAnd(t *testing.T) {
	ix := passageIndex(t)
	got, err := ix.Predict("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Word != "and" || got[0].Score != countWord(passage, "and") {
		t.Errorf("expected top result 'and' with score %d, got %v", countWord(passage, "and"), got[0])
	}
}

func TestPredictEmptyPrefix(t *testing.T) {
	ix := passageIndex(t)
	if _, err := ix.Predict(""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictTruncatesToMax(t *testing.T) {
	tr := NewTrainer()
	for i := 0; i < 25; i++ {
		word := fmt.Sprintf("word%02d", i)
		for j := 0; j <= i%4; j++ {
			tr.TrainWord(word)
		}
	}
	ix := tr.Finalize()

	got, err := ix.Predict("w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != MaxPredictions {
		t.Fatalf("expected %d results, got %d", MaxPredictions, len(got))
	}
	// score 4 belongs to word03, word07, ..., word23 (6 words), then score 3
	// starts with word02.
	expectedWords := []string{"word03", "word07", "word11", "word15", "word19", "word23", "word02", "word06", "word10", "word14"}
	for i, w := range expectedWords {
		if got[i].Word != w {
			t.Errorf("[%d]: expected '%s', got '%s'", i, w, got[i].Word)
		}
	}
}

func TestPredictStableTies(t *testing.T) {
	tr := NewTrainer()
	tr.Train([]string{"cherry", "banana", "bandana", "band", "bank", "banana", "band"})
	ix := tr.Finalize()

	got, err := ix.Predict("ban")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Entry{{"banana", 2}, {"band", 2}, {"bandana", 1}, {"bank", 1}}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("[%d]: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestPredictMultibyteLeadingCharacter(t *testing.T) {
	tr := NewTrainer()
	tr.Train([]string{"élan", "école", "école", "eagle", "zebra"})
	ix := tr.Finalize()

	got, err := ix.Predict("é")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Word != "école" || got[1].Word != "élan" {
		t.Errorf("unexpected results for 'é': %v", got)
	}

	got, _ = ix.Predict("e")
	if len(got) != 1 || got[0].Word != "eagle" {
		t.Errorf("unexpected results for 'e': %v", got)
	}
}

func TestBucketsAreContiguous(t *testing.T) {
	ix := passageIndex(t)
	for c, start := range ix.buckets {
		if leadingRune(ix.entries[start].Word) != c {
			t.Errorf("bucket %q points at '%s'", c, ix.entries[start].Word)
		}
		if start > 0 && leadingRune(ix.entries[start-1].Word) == c {
			t.Errorf("bucket %q does not start at the first matching entry", c)
		}
	}
}

func TestNewIndexValidation(t *testing.T) {
	testCases := []struct {
		description string
		records     []Entry
	}{
		{"empty word", []Entry{{"", 1}}},
		{"invalid utf8", []Entry{{"\xffoo", 1}}},
		{"inner space", []Entry{{"a b", 1}}},
		{"newline", []Entry{{"x\ny", 1}}},
		{"leading tab", []Entry{{"\tx", 1}}},
		{"zero score", []Entry{{"word", 0}}},
		{"duplicate word", []Entry{{"word", 1}, {"other", 2}, {"word", 3}}},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if _, err := NewIndex(tc.records); !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	ix := passageIndex(t)

	records := ix.Records()
	// reverse to prove NewIndex does not depend on input order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	rebuilt, err := NewIndex(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, word := range ix.Records() {
		for n := 1; n <= len(word.Word); n++ {
			prefix := word.Word[:n]
			want, _ := ix.Predict(prefix)
			got, _ := rebuilt.Predict(prefix)
			if fmt.Sprint(want) != fmt.Sprint(got) {
				t.Errorf("prefix '%s': expected %v, got %v", prefix, want, got)
			}
		}
	}
}

func TestIndexScore(t *testing.T) {
	ix := passageIndex(t)
	if score, ok := ix.Score("right"); !ok || score != 5 {
		t.Errorf("expected 'right' score 5, got %d (found=%v)", score, ok)
	}
	if _, ok := ix.Score("wrong"); ok {
		t.Error("did not expect 'wrong' to be found")
	}
}

// TestPredictMatchesTrie checks Predict against a patricia trie built from
// the same counts.
func TestPredictMatchesTrie(t *testing.T) {
	corpus := strings.Repeat(passage+" ", 3) + "and anyway another answer apparently arrived at an angle"
	tr := NewTrainer()
	tr.TrainString(corpus)
	counts := make(map[string]uint32)
	for _, w := range strings.Split(corpus, " ") {
		if w != "" {
			counts[w]++
		}
	}
	ix := tr.Finalize()

	trie := patricia.NewTrie()
	for w, n := range counts {
		trie.Insert(patricia.Prefix(w), n)
	}

	for _, prefix := range []string{"a", "an", "ang", "t", "th", "r", "e", "p", "w", "q"} {
		t.Run(prefix, func(t *testing.T) {
			var expected []Entry
			err := trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
				expected = append(expected, Entry{Word: string(p), Score: item.(uint32)})
				return nil
			})
			if err != nil {
				t.Fatalf("trie visit failed: %v", err)
			}
			sort.Slice(expected, func(i, j int) bool {
				if expected[i].Score != expected[j].Score {
					return expected[i].Score > expected[j].Score
				}
				return expected[i].Word < expected[j].Word
			})
			if len(expected) > MaxPredictions {
				expected = expected[:MaxPredictions]
			}

			got, err := ix.Predict(prefix)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(expected) {
				t.Fatalf("expected %v, got %v", expected, got)
			}
			for i := range got {
				if got[i] != expected[i] {
					t.Errorf("[%d]: expected %v, got %v", i, expected[i], got[i])
				}
				if !strings.HasPrefix(got[i].Word, prefix) {
					t.Errorf("'%s' does not start with '%s'", got[i].Word, prefix)
				}
			}
		})
	}
}

func BenchmarkPredict(b *testing.B) {
	tr := NewTrainer()
	for i := 0; i < 20000; i++ {
		tr.TrainWord(fmt.Sprintf("w%c%d", 'a'+rune(i%26), i%5000))
	}
	ix := tr.Finalize()
	prefixes := []string{"wa", "wb1", "wz49", "w", "wq"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Predict(prefixes[i%len(prefixes)])
	}
}

func TestPredictInvalidUTF8Tokens(t *testing.T) {
	tr := NewTrainer()
	tr.Train([]string{"\xc3", "\u00e9clair", "\xffoo", "\xc3\xff", "\ufffdmark", "echo"})
	ix := tr.Finalize()

	if ix.Len() != 3 {
		t.Fatalf("expected invalid UTF-8 tokens to be skipped, got %v", ix.Records())
	}

	testCases := []struct {
		prefix string
		want   []Entry
	}{
		{"\u00e9", []Entry{{"\u00e9clair", 1}}},
		{"\ufffd", []Entry{{"\ufffdmark", 1}}},
		{"\xff", []Entry{}},
		{"e", []Entry{{"echo", 1}}},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.prefix), func(t *testing.T) {
			got, err := ix.Predict(tc.prefix)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Errorf("Predict(%q) = %v, want %v", tc.prefix, got, tc.want)
			}
		})
	}
}
