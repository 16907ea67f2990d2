// Package gallery keeps a lightbox's open/closed state, active project,
// and slide index bidirectionally synchronized with a browser-style URL
// of the form /{authorSlug}/{projectSlugOrId}#{1-based slide}.
//
// Transitions are pure: URL changes and user actions map
// (state, event) -> state, and Sync applies the resulting URL as a
// separate step that compares desired against actual before writing, so
// a state-driven URL write can never re-trigger a URL-driven update.
package gallery

import (
	"strconv"
	"strings"

	"github.com/arden-cole/portfoliobackend/models"
)

// State is the lightbox state. Open implies Active != nil, and
// SlideIndex is always clamped into [0, len(Active.Slides)-1].
type State struct {
	Open       bool
	Active     *models.Project
	SlideIndex int
}

// Closed is the initial and reset state.
func Closed() State {
	return State{}
}

// Keyboard keys understood by HandleKey.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// URLWriter abstracts the browser location: reading the current
// path+fragment and replacing it without creating a history entry.
type URLWriter interface {
	Current() (path, fragment string)
	Replace(path, fragment string)
}

// Machine binds the reducer to one author's gallery and the project set
// currently loaded for it.
type Machine struct {
	authorSlug string
	projects   []models.Project
}

func NewMachine(authorSlug string, projects []models.Project) *Machine {
	return &Machine{authorSlug: authorSlug, projects: projects}
}

// resolve finds a loaded project by slug or numeric id reference.
func (m *Machine) resolve(ref string) *models.Project {
	for i := range m.projects {
		if m.projects[i].SlugOrID() == ref {
			return &m.projects[i]
		}
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for i := range m.projects {
			if m.projects[i].ID == id {
				return &m.projects[i]
			}
		}
	}
	return nil
}

// ParsePath splits a gallery path into its author and project parts.
// Anything beyond two segments is ignored.
func ParsePath(path string) (authorSlug, projectRef string) {
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		authorSlug = parts[0]
	}
	if len(parts) > 1 {
		projectRef = parts[1]
	}
	return authorSlug, projectRef
}

// ParseFragment returns the 1-based slide number addressed by a hash
// fragment; an absent or malformed fragment means slide 1.
func ParseFragment(fragment string) int {
	fragment = strings.TrimPrefix(fragment, "#")
	n, err := strconv.Atoi(fragment)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HandleNavigation reconciles an external path/fragment change into
// state. A path addressing a different author or an unknown project
// closes the gallery rather than erroring: the data set may simply not
// have loaded yet, or the link may be stale. When the resolved
// project+index equals the current state the input state is returned
// unchanged.
func (m *Machine) HandleNavigation(cur State, path, fragment string) State {
	authorSlug, projectRef := ParsePath(path)

	if authorSlug != m.authorSlug || projectRef == "" {
		return Closed()
	}

	found := m.resolve(projectRef)
	if found == nil || len(found.Slides) == 0 {
		return Closed()
	}

	desired := clamp(ParseFragment(fragment)-1, 0, len(found.Slides)-1)

	if cur.Open && cur.Active != nil && cur.Active.SlugOrID() == found.SlugOrID() && cur.SlideIndex == desired {
		return cur
	}

	return State{Open: true, Active: found, SlideIndex: desired}
}

// OpenAt opens the lightbox on the given project and slide index. A
// project with no slides can never be open; the index is clamped into
// range otherwise.
func (m *Machine) OpenAt(p *models.Project, index int) State {
	if p == nil || len(p.Slides) == 0 {
		return Closed()
	}
	return State{
		Open:       true,
		Active:     p,
		SlideIndex: clamp(index, 0, len(p.Slides)-1),
	}
}

// Advance moves the slide index by delta, wrapping circularly.
func (m *Machine) Advance(cur State, delta int) State {
	if !cur.Open || cur.Active == nil {
		return cur
	}
	count := len(cur.Active.Slides)
	if count == 0 {
		return Closed()
	}
	cur.SlideIndex = ((cur.SlideIndex+delta)%count + count) % count
	return cur
}

// First jumps to the first slide.
func (m *Machine) First(cur State) State {
	if !cur.Open || cur.Active == nil {
		return cur
	}
	cur.SlideIndex = 0
	return cur
}

// Last jumps to the last slide.
func (m *Machine) Last(cur State) State {
	if !cur.Open || cur.Active == nil {
		return cur
	}
	cur.SlideIndex = len(cur.Active.Slides) - 1
	return cur
}

// Close closes the lightbox.
func (m *Machine) Close(State) State {
	return Closed()
}

// HandleKey applies the keyboard contract: Escape closes,
// ArrowLeft/ArrowRight advance circularly, Home/End jump to the
// first/last slide. Unknown keys leave the state untouched.
func (m *Machine) HandleKey(cur State, key string) State {
	if !cur.Open {
		return cur
	}
	switch key {
	case KeyEscape:
		return m.Close(cur)
	case KeyArrowLeft:
		return m.Advance(cur, -1)
	case KeyArrowRight:
		return m.Advance(cur, +1)
	case KeyHome:
		return m.First(cur)
	case KeyEnd:
		return m.Last(cur)
	default:
		return cur
	}
}

// URLFor computes the URL a state should be rendered at: the project
// deep link with a 1-based slide fragment while open, the bare author
// page when closed.
func (m *Machine) URLFor(s State) (path, fragment string) {
	if !s.Open || s.Active == nil {
		return "/" + m.authorSlug, ""
	}
	return "/" + m.authorSlug + "/" + s.Active.SlugOrID(), "#" + strconv.Itoa(s.SlideIndex+1)
}

// Sync writes the state's URL through w, replacing rather than pushing,
// and only when it differs from the current location. The comparison is
// the loop-avoidance mechanism: an already-applied URL is never
// rewritten, so the write cannot echo back as a navigation event.
func (m *Machine) Sync(s State, w URLWriter) {
	desiredPath, desiredFragment := m.URLFor(s)
	curPath, curFragment := w.Current()
	if curPath == desiredPath && normalizeFragment(curFragment) == normalizeFragment(desiredFragment) {
		return
	}
	w.Replace(desiredPath, desiredFragment)
}

func normalizeFragment(fragment string) string {
	return strings.TrimPrefix(fragment, "#")
}
