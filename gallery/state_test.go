package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arden-cole/portfoliobackend/models"
)

func slides(n int) []models.MediaSlide {
	out := make([]models.MediaSlide, n)
	for i := range out {
		out[i] = models.MediaSlide{Type: models.SlideTypeImage, Src: "slides/a.jpg", Position: i}
	}
	return out
}

func testMachine() *Machine {
	return NewMachine("ivan-petrov", []models.Project{
		{ID: 1, Slug: "aurora-landing", Title: "Aurora Landing", Slides: slides(3)},
		{ID: 2, Slug: "field-notes", Title: "Field Notes", Slides: slides(1)},
		{ID: 3, Title: "Untitled", Slides: slides(2)},
		{ID: 4, Slug: "empty-project", Title: "Empty"},
	})
}

// fakeLocation records Replace calls so tests can count URL writes.
type fakeLocation struct {
	path     string
	fragment string
	replaces int
}

func (f *fakeLocation) Current() (string, string) { return f.path, f.fragment }
func (f *fakeLocation) Replace(path, fragment string) {
	f.path, f.fragment = path, fragment
	f.replaces++
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path        string
		wantAuthor  string
		wantProject string
	}{
		{"/ivan-petrov/aurora-landing", "ivan-petrov", "aurora-landing"},
		{"/ivan-petrov", "ivan-petrov", ""},
		{"/ivan-petrov/", "ivan-petrov", ""},
		{"ivan-petrov/aurora-landing", "ivan-petrov", "aurora-landing"},
		{"/ivan-petrov/aurora-landing/extra/segments", "ivan-petrov", "aurora-landing"},
		{"/", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		author, project := ParsePath(tt.path)
		assert.Equal(t, tt.wantAuthor, author, "path %q", tt.path)
		assert.Equal(t, tt.wantProject, project, "path %q", tt.path)
	}
}

func TestParseFragment(t *testing.T) {
	assert.Equal(t, 2, ParseFragment("#2"))
	assert.Equal(t, 2, ParseFragment("2"))
	assert.Equal(t, 1, ParseFragment(""))
	assert.Equal(t, 1, ParseFragment("#"))
	assert.Equal(t, 1, ParseFragment("#0"))
	assert.Equal(t, 1, ParseFragment("#-4"))
	assert.Equal(t, 1, ParseFragment("#abc"))
}

func TestHandleNavigationDeepLink(t *testing.T) {
	m := testMachine()

	s := m.HandleNavigation(Closed(), "/ivan-petrov/aurora-landing", "#2")
	require.True(t, s.Open)
	require.NotNil(t, s.Active)
	assert.Equal(t, "aurora-landing", s.Active.Slug)
	assert.Equal(t, 1, s.SlideIndex)
}

func TestHandleNavigationClampsFragment(t *testing.T) {
	m := testMachine()

	s := m.HandleNavigation(Closed(), "/ivan-petrov/field-notes", "#9")
	require.True(t, s.Open)
	assert.Equal(t, 0, s.SlideIndex)

	s = m.HandleNavigation(Closed(), "/ivan-petrov/aurora-landing", "#0")
	require.True(t, s.Open)
	assert.Equal(t, 0, s.SlideIndex)
}

func TestHandleNavigationResolvesByID(t *testing.T) {
	m := testMachine()

	// a project without a slug is addressed by its numeric id
	s := m.HandleNavigation(Closed(), "/ivan-petrov/3", "#2")
	require.True(t, s.Open)
	assert.EqualValues(t, 3, s.Active.ID)
	assert.Equal(t, 1, s.SlideIndex)
}

func TestHandleNavigationCloses(t *testing.T) {
	m := testMachine()
	open := m.HandleNavigation(Closed(), "/ivan-petrov/aurora-landing", "#1")
	require.True(t, open.Open)

	t.Run("different author closes", func(t *testing.T) {
		s := m.HandleNavigation(open, "/mara-lind/aurora-landing", "#1")
		assert.Equal(t, Closed(), s)
	})

	t.Run("author page without project closes", func(t *testing.T) {
		s := m.HandleNavigation(open, "/ivan-petrov", "")
		assert.Equal(t, Closed(), s)
	})

	t.Run("unknown project closes", func(t *testing.T) {
		s := m.HandleNavigation(open, "/ivan-petrov/no-such-project", "#1")
		assert.Equal(t, Closed(), s)
	})

	t.Run("project with no slides closes", func(t *testing.T) {
		s := m.HandleNavigation(open, "/ivan-petrov/empty-project", "#1")
		assert.Equal(t, Closed(), s)
	})
}

func TestHandleNavigationIdempotent(t *testing.T) {
	m := testMachine()

	s1 := m.HandleNavigation(Closed(), "/ivan-petrov/aurora-landing", "#2")
	s2 := m.HandleNavigation(s1, "/ivan-petrov/aurora-landing", "#2")
	assert.Equal(t, s1, s2)
}

func TestOpenAt(t *testing.T) {
	m := testMachine()
	p := &m.projects[0]

	s := m.OpenAt(p, 2)
	require.True(t, s.Open)
	assert.Equal(t, 2, s.SlideIndex)

	assert.Equal(t, 0, m.OpenAt(p, -5).SlideIndex)
	assert.Equal(t, 2, m.OpenAt(p, 99).SlideIndex)

	assert.Equal(t, Closed(), m.OpenAt(nil, 0))
	assert.Equal(t, Closed(), m.OpenAt(&m.projects[3], 0))
}

func TestAdvanceWrapsCircularly(t *testing.T) {
	m := testMachine()
	s := m.OpenAt(&m.projects[0], 0)

	s = m.Advance(s, 1)
	assert.Equal(t, 1, s.SlideIndex)
	s = m.Advance(s, 1)
	assert.Equal(t, 2, s.SlideIndex)
	s = m.Advance(s, 1)
	assert.Equal(t, 0, s.SlideIndex, "advancing past the last slide wraps to the first")

	s = m.Advance(s, -1)
	assert.Equal(t, 2, s.SlideIndex, "stepping back from the first slide wraps to the last")

	closed := m.Advance(Closed(), 1)
	assert.Equal(t, Closed(), closed)
}

func TestHandleKey(t *testing.T) {
	m := testMachine()
	s := m.OpenAt(&m.projects[0], 1)

	assert.Equal(t, 2, m.HandleKey(s, KeyArrowRight).SlideIndex)
	assert.Equal(t, 0, m.HandleKey(s, KeyArrowLeft).SlideIndex)
	assert.Equal(t, 0, m.HandleKey(s, KeyHome).SlideIndex)
	assert.Equal(t, 2, m.HandleKey(s, KeyEnd).SlideIndex)
	assert.Equal(t, Closed(), m.HandleKey(s, KeyEscape))
	assert.Equal(t, s, m.HandleKey(s, "Enter"), "unknown keys leave the state untouched")
	assert.Equal(t, Closed(), m.HandleKey(Closed(), KeyArrowRight), "keys are ignored while closed")
}

func TestURLFor(t *testing.T) {
	m := testMachine()

	path, fragment := m.URLFor(Closed())
	assert.Equal(t, "/ivan-petrov", path)
	assert.Empty(t, fragment)

	s := m.OpenAt(&m.projects[0], 2)
	path, fragment = m.URLFor(s)
	assert.Equal(t, "/ivan-petrov/aurora-landing", path)
	assert.Equal(t, "#3", fragment)

	// slugless projects get their id in the URL
	s = m.OpenAt(&m.projects[2], 0)
	path, fragment = m.URLFor(s)
	assert.Equal(t, "/ivan-petrov/3", path)
	assert.Equal(t, "#1", fragment)
}

func TestSyncWritesOnlyOnDifference(t *testing.T) {
	m := testMachine()
	loc := &fakeLocation{path: "/ivan-petrov"}

	s := m.OpenAt(&m.projects[0], 1)
	m.Sync(s, loc)
	assert.Equal(t, 1, loc.replaces)
	assert.Equal(t, "/ivan-petrov/aurora-landing", loc.path)
	assert.Equal(t, "#2", loc.fragment)

	// the URL already matches; a second sync must not write again
	m.Sync(s, loc)
	assert.Equal(t, 1, loc.replaces)

	m.Sync(Closed(), loc)
	assert.Equal(t, 2, loc.replaces)
	assert.Equal(t, "/ivan-petrov", loc.path)
}

func TestRoundTripNavigation(t *testing.T) {
	m := testMachine()

	// state -> URL -> state lands back on the same slide
	s := m.OpenAt(&m.projects[0], 2)
	path, fragment := m.URLFor(s)
	back := m.HandleNavigation(Closed(), path, fragment)
	require.True(t, back.Open)
	assert.Equal(t, s.Active.Slug, back.Active.Slug)
	assert.Equal(t, s.SlideIndex, back.SlideIndex)
}
