package factor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkalytics/factorlink/pkg/index"
	"github.com/linkalytics/factorlink/pkg/types"
)

// fakeSearcher serves scripted results keyed on the query arguments and
// records every call for fallback assertions.
type fakeSearcher struct {
	phraseResults map[string]*index.Result // key: field + "=" + value
	matchResults  map[string]*index.Result
	idsResults    map[string]*index.Result // key: first id
	err           error
	phraseCalls   []string
}

func (f *fakeSearcher) MatchPhrase(ctx context.Context, field, value string) (*index.Result, error) {
	f.phraseCalls = append(f.phraseCalls, field+"="+value)
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.phraseResults[field+"="+value]; ok {
		return res, nil
	}
	return &index.Result{}, nil
}

func (f *fakeSearcher) Match(ctx context.Context, field, value string) (*index.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.matchResults[field+"="+value]; ok {
		return res, nil
	}
	return &index.Result{}, nil
}

func (f *fakeSearcher) IDs(ctx context.Context, ids []string) (*index.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(ids) > 0 {
		if res, ok := f.idsResults[ids[0]]; ok {
			return res, nil
		}
	}
	return &index.Result{}, nil
}

func doc(t *testing.T, raw string) types.Document {
	t.Helper()
	var d types.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func TestAvailable(t *testing.T) {
	searcher := &fakeSearcher{
		phraseResults: map[string]*index.Result{
			"_id=63166071": {
				Total: 2,
				Hits: []index.Hit{
					{ID: "63166071", Source: doc(t, `{"phone":"555-0100","title":"x"}`)},
					{ID: "63166071", Source: doc(t, `{"email":"a@x.com","phone":"555-0101"}`)},
				},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.Available(context.Background(), "63166071")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "phone", "title"}, got)
}

func TestAvailableIdempotent(t *testing.T) {
	searcher := &fakeSearcher{
		phraseResults: map[string]*index.Result{
			"_id=ad1": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad1", Source: doc(t, `{"b":"2","a":"1"}`)}},
			},
		},
	}
	c := NewClient(searcher)

	first, err := c.Available(context.Background(), "ad1")
	require.NoError(t, err)
	second, err := c.Available(context.Background(), "ad1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLookupFlattensNestedValues(t *testing.T) {
	searcher := &fakeSearcher{
		idsResults: map[string]*index.Result{
			"ad1": {
				Total: 2,
				Hits: []index.Hit{
					{ID: "ad1", Source: doc(t, `{"phone":["555-0100",["555-0101"]]}`)},
					{ID: "ad1", Source: doc(t, `{"title":"no phone here"}`)},
				},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.Lookup(context.Background(), "ad1", "phone")
	require.NoError(t, err)
	assert.Equal(t, []string{"555-0100", "555-0101"}, got)
}

func TestReverseLookupNoFallbackOnHits(t *testing.T) {
	searcher := &fakeSearcher{
		phraseResults: map[string]*index.Result{
			"phone=555-0100": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad1"}},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.ReverseLookup(context.Background(), "phone", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, []string{"ad1"}, got)
	assert.Equal(t, []string{"phone=555-0100"}, searcher.phraseCalls)
}

func TestReverseLookupFallsBackOnZeroHits(t *testing.T) {
	searcher := &fakeSearcher{
		phraseResults: map[string]*index.Result{
			index.AllFields + "=555-0100": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad2"}},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.ReverseLookup(context.Background(), "phone", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, []string{"ad2"}, got)
	// Exactly one fallback query, against all fields.
	assert.Equal(t, []string{"phone=555-0100", index.AllFields + "=555-0100"}, searcher.phraseCalls)
}

func TestSuggestAbsence(t *testing.T) {
	searcher := &fakeSearcher{
		idsResults: map[string]*index.Result{
			"ad1": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad1", Source: doc(t, `{"email":[]}`)}},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.Suggest(context.Background(), "ad1", "email")
	require.NoError(t, err)
	assert.Nil(t, got, "empty factor should be an absence, not an error")
}

func TestInitializeOmitsAbsentFactors(t *testing.T) {
	searcher := &fakeSearcher{
		idsResults: map[string]*index.Result{
			"ad1": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad1", Source: doc(t, `{"phone":"555-0100"}`)}},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.Initialize(context.Background(), "ad1", "phone", "email")
	require.NoError(t, err)
	require.Contains(t, got, "ad1")
	assert.Contains(t, got["ad1"].Branch, "phone")
	assert.NotContains(t, got["ad1"].Branch, "email")
}

func TestReduce(t *testing.T) {
	searcher := &fakeSearcher{
		idsResults: map[string]*index.Result{
			"ad1": {
				Total: 1,
				Hits: []index.Hit{
					{ID: "ad1", Source: doc(t, `{"phone":["1","2"],"email":["2","3"]}`)},
				},
			},
		},
	}
	c := NewClient(searcher)

	got, err := c.Reduce(context.Background(), "ad1", "phone", "email")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, got)
}

func TestStatus(t *testing.T) {
	state := &fakeSearcher{
		matchResults: map[string]*index.Result{
			"_id=ad1": {
				Total: 1,
				Hits:  []index.Hit{{ID: "ad1", Source: doc(t, `{"state":"reviewed"}`)}},
			},
		},
	}
	c := NewClient(&fakeSearcher{}, WithStateIndex(state))

	hit, err := c.Status(context.Background(), "ad1")
	require.NoError(t, err)
	assert.Equal(t, "ad1", hit.ID)

	_, err = c.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestStatusWithoutStateIndex(t *testing.T) {
	c := NewClient(&fakeSearcher{})
	_, err := c.Status(context.Background(), "ad1")
	assert.ErrorIs(t, err, ErrNoStateIndex)
}

func TestErrorsPropagate(t *testing.T) {
	wantErr := errors.New("boom")
	c := NewClient(&fakeSearcher{err: wantErr})

	_, err := c.Available(context.Background(), "ad1")
	assert.ErrorIs(t, err, wantErr)
}
