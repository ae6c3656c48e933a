package main

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

//go:embed data/quiz.json
var defaultCatalog []byte

// graded questions on the page, one per chart category
const questionCount = 5

var ErrCatalogIncomplete = errors.New("catalog must define exactly five graded questions")

type ControlSpec struct {
	ID        string
	Label     string
	Prompt    string
	Kind      string
	OptionSet string // empty for free-text inputs
}

// Catalog is the quiz content read once at startup. It is not modified afterwards.
type Catalog struct {
	key      AnswerKey
	sets     map[string]OptionSet
	controls []ControlSpec
}

func (c *Catalog) Key() AnswerKey { return c.key }

func (c *Catalog) Controls() []ControlSpec {
	return append([]ControlSpec(nil), c.controls...)
}

func (c *Catalog) OptionSet(name string) (OptionSet, bool) {
	s, ok := c.sets[name]
	if !ok {
		return OptionSet{}, false
	}
	return OptionSet{Name: s.Name, Labels: append([]string(nil), s.Labels...)}, true
}

// OptionSets returns the sets in first-use order.
func (c *Catalog) OptionSets() []OptionSet {
	var out []OptionSet
	seen := map[string]bool{}
	for _, ctl := range c.controls {
		if ctl.OptionSet == "" || seen[ctl.OptionSet] {
			continue
		}
		seen[ctl.OptionSet] = true
		if s, ok := c.OptionSet(ctl.OptionSet); ok {
			out = append(out, s)
		}
	}
	return out
}

func answerFromRow(row Control) (Answer, error) {
	if !row.AnswerNumeric {
		return StringAnswer(row.AnswerText), nil
	}
	n, err := strconv.Atoi(row.AnswerText)
	if err != nil {
		return nil, fmt.Errorf("control %s: numeric answer %q: %w", row.ID, row.AnswerText, err)
	}
	return NumberAnswer(n), nil
}

// LoadCatalog reads controls and option sets from the store into immutable values.
func LoadCatalog(db *gorm.DB) (*Catalog, error) {
	var rows []Control
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load controls: %w", err)
	}
	var opts []Option
	if err := db.Order("set_name, position").Find(&opts).Error; err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}

	c := &Catalog{sets: map[string]OptionSet{}}
	for _, o := range opts {
		s := c.sets[o.SetName]
		s.Name = o.SetName
		s.Labels = append(s.Labels, o.Label)
		c.sets[o.SetName] = s
	}

	var entries []KeyEntry
	for _, row := range rows {
		spec := ControlSpec{
			ID:     row.ID,
			Label:  row.Label,
			Prompt: row.Prompt,
			Kind:   row.Kind,
		}
		if row.OptionSetName != nil {
			spec.OptionSet = *row.OptionSetName
		}
		c.controls = append(c.controls, spec)

		if !row.Graded {
			continue
		}
		ans, err := answerFromRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, KeyEntry{QuestionID: row.ID, Label: row.Label, Expected: ans})
	}
	if len(entries) != questionCount {
		return nil, fmt.Errorf("%w: got %d", ErrCatalogIncomplete, len(entries))
	}
	c.key = NewAnswerKey(entries...)
	return c, nil
}

// OpenCatalog builds the in-memory store, seeds it and loads the catalog.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := OpenDB(memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if empty, err := IsControlTableEmpty(db); err != nil {
		return nil, fmt.Errorf("count controls: %w", err)
	} else if empty {
		raw, err := readCatalogSource(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if err := SeedFromJSON(db, raw); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return LoadCatalog(db)
}
