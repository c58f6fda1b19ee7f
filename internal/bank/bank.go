package bank

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed data/*.json
var bankFS embed.FS

// ErrNotFound is returned by lookups for unknown subject, chapter, or
// question IDs. Callers surface it as a non-fatal "not found" state.
var ErrNotFound = errors.New("not found")

// subjectKey maps a top-level bank document key to a subject. Keys not
// listed here are ignored, preserving forward compatibility with bank
// exports that carry extra metadata blocks.
type subjectKey struct {
	Key   string
	ID    string
	Title string
}

var subjectKeys = []subjectKey{
	{Key: "JEE_ADV_PHY_MODULES", ID: "physics", Title: "Physics"},
	{Key: "JEE_ADV_CHEM_MODULES", ID: "chemistry", Title: "Chemistry"},
	{Key: "JEE_ADV_MATH_MODULES", ID: "mathematics", Title: "Mathematics"},
}

// Collection identifies a bundled question bank.
type Collection struct {
	ID    string
	Title string
	file  string
}

// Collections lists the bundled banks. Persistence is namespaced by
// Collection.ID, so the two never share progress records.
func Collections() []Collection {
	return []Collection{
		{ID: "dpp", Title: "Daily Practice Problems", file: "data/dpp.json"},
		{ID: "pyq", Title: "Previous Year Questions", file: "data/pyq.json"},
	}
}

// Bank is a loaded, immutable question bank with lookup indices.
type Bank struct {
	Collection string
	subjects   []Subject
	bySubject  map[string]*Subject
	byChapter  map[string]*Chapter // key: subjectID + "/" + chapterID
	byQuestion map[string]*Question
}

// LoadCollection loads one of the bundled banks by collection ID.
func LoadCollection(id string) (*Bank, error) {
	for _, c := range Collections() {
		if c.ID != id {
			continue
		}
		data, err := bankFS.ReadFile(c.file)
		if err != nil {
			return nil, fmt.Errorf("read bundled bank %s: %w", c.ID, err)
		}
		return Load(c.ID, data)
	}
	return nil, fmt.Errorf("collection %q: %w", id, ErrNotFound)
}

// Load parses and normalizes a bank document. Structural violations in
// any entry (see normalize.go) fail the load; missing text fields do
// not.
func Load(collection string, data []byte) (*Bank, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bank document: %w", err)
	}

	b := &Bank{
		Collection: collection,
		bySubject:  make(map[string]*Subject),
		byChapter:  make(map[string]*Chapter),
		byQuestion: make(map[string]*Question),
	}

	for _, sk := range subjectKeys {
		raw, ok := doc[sk.Key]
		if !ok {
			continue
		}
		var mod struct {
			Chapters []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Sections []struct {
					Title     string            `json:"title"`
					Questions []json.RawMessage `json:"questions"`
				} `json:"sections"`
			} `json:"chapters"`
		}
		if err := json.Unmarshal(raw, &mod); err != nil {
			return nil, fmt.Errorf("parse module %s: %w", sk.Key, err)
		}

		subject := Subject{ID: sk.ID, Title: sk.Title}
		for _, rc := range mod.Chapters {
			chapter := Chapter{ID: rc.ID, Title: rc.Title}
			for _, rs := range rc.Sections {
				section := Section{Title: rs.Title}
				for _, rq := range rs.Questions {
					var raw rawQuestion
					if err := json.Unmarshal(rq, &raw); err != nil {
						return nil, fmt.Errorf("chapter %s: parse question: %w", rc.ID, err)
					}
					q, err := normalizeQuestion(raw)
					if err != nil {
						return nil, fmt.Errorf("chapter %s: %w", rc.ID, err)
					}
					section.Questions = append(section.Questions, q)
				}
				chapter.Sections = append(chapter.Sections, section)
			}
			subject.Chapters = append(subject.Chapters, chapter)
		}
		b.subjects = append(b.subjects, subject)
	}

	b.buildIndices()
	return b, nil
}

func (b *Bank) buildIndices() {
	for i := range b.subjects {
		s := &b.subjects[i]
		b.bySubject[s.ID] = s
		for j := range s.Chapters {
			c := &s.Chapters[j]
			b.byChapter[s.ID+"/"+c.ID] = c
			for k := range c.Sections {
				sec := &c.Sections[k]
				for l := range sec.Questions {
					q := &sec.Questions[l]
					b.byQuestion[q.ID] = q
				}
			}
		}
	}
}

// Subjects returns the bank's subjects in document order.
func (b *Bank) Subjects() []Subject {
	return b.subjects
}

// Subject returns a subject by ID.
func (b *Bank) Subject(id string) (*Subject, error) {
	s, ok := b.bySubject[id]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return s, nil
}

// Chapter returns a chapter by subject and chapter ID.
func (b *Bank) Chapter(subjectID, chapterID string) (*Chapter, error) {
	c, ok := b.byChapter[subjectID+"/"+chapterID]
	if !ok {
		return nil, fmt.Errorf("chapter %s/%s: %w", subjectID, chapterID, ErrNotFound)
	}
	return c, nil
}

// Questions returns a chapter's questions with sections flattened.
func (b *Bank) Questions(subjectID, chapterID string) ([]Question, error) {
	c, err := b.Chapter(subjectID, chapterID)
	if err != nil {
		return nil, err
	}
	return c.Questions(), nil
}

// Question returns a question by its bank-wide ID.
func (b *Bank) Question(id string) (*Question, error) {
	q, ok := b.byQuestion[id]
	if !ok {
		return nil, fmt.Errorf("question %q: %w", id, ErrNotFound)
	}
	return q, nil
}

// QuestionCount returns the total number of questions in the bank.
func (b *Bank) QuestionCount() int {
	return len(b.byQuestion)
}
